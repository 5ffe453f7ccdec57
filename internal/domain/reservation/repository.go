package reservation

import (
	"context"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成し、採番したIDを設定する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id int64) (*Reservation, error)

	// GetByIDForUpdate はトランザクション内でIDから予約を取得する
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id int64) (*Reservation, error)

	// Update は状態と料金を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// Find は条件に一致する予約をストア順で取得する
	Find(ctx context.Context, filter Filter) ([]*Reservation, error)

	// CountConflicting は座席の保留中・利用中の予約のうち slot と衝突する件数を取得する
	CountConflicting(ctx context.Context, tx transaction.Tx, seatID int64, slot TimeSlot, policy ConflictPolicy) (int, error)
}
