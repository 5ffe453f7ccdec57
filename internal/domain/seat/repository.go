package seat

import (
	"context"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

// Repository は座席リポジトリのインターフェース
type Repository interface {
	// Create は新しい座席を作成する
	Create(ctx context.Context, seat *Seat) error

	// CreateBulk は複数の座席を一括作成する（トランザクション必須）
	CreateBulk(ctx context.Context, tx transaction.Tx, seats []*Seat) error

	// GetByID はIDから座席を取得する
	GetByID(ctx context.Context, id int64) (*Seat, error)

	// List は全座席をID順に取得する
	List(ctx context.Context) ([]*Seat, error)

	// Count は座席数を取得する
	Count(ctx context.Context) (int, error)

	// UpdateStatus は座席の状態を更新する（トランザクション必須）
	UpdateStatus(ctx context.Context, tx transaction.Tx, id int64, status Status) error
}
