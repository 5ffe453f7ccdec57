package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/domainerr"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

const seatColumns = `id, type, status, hardware_spec`

type seatRow struct {
	ID           int64  `db:"id"`
	Type         int    `db:"type"`
	Status       int    `db:"status"`
	HardwareSpec string `db:"hardware_spec"`
}

func (r *seatRow) toEntity() *seat.Seat {
	return &seat.Seat{
		ID: r.ID, Type: seat.Type(r.Type), Status: seat.Status(r.Status),
		HardwareSpec: r.HardwareSpec,
	}
}

type SeatRepository struct{ db *sqlx.DB }

func NewSeatRepository(db *sqlx.DB) *SeatRepository { return &SeatRepository{db: db} }

func (r *SeatRepository) Create(ctx context.Context, s *seat.Seat) error {
	query := `INSERT INTO seats (type, status, hardware_spec) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, int(s.Type), int(s.Status), s.HardwareSpec).Scan(&s.ID); err != nil {
		return domainerr.Storage("座席作成", err)
	}
	return nil
}

func (r *SeatRepository) CreateBulk(ctx context.Context, tx transaction.Tx, seats []*seat.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	sqlTx := UnwrapTx(tx)
	if sqlTx == nil {
		return ErrForeignTx
	}

	// バッチサイズごとに分割してマルチバリューINSERTを実行
	const batchSize = 1000
	for i := 0; i < len(seats); i += batchSize {
		end := i + batchSize
		if end > len(seats) {
			end = len(seats)
		}
		if err := r.createBulkBatch(ctx, sqlTx, seats[i:end]); err != nil {
			return err
		}
	}
	return nil
}

// createBulkBatch はバッチ単位でマルチバリューINSERTを実行し、採番されたIDを設定する
func (r *SeatRepository) createBulkBatch(ctx context.Context, tx *sqlx.Tx, seats []*seat.Seat) error {
	query := `INSERT INTO seats (type, status, hardware_spec) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	placeholders := make([]string, 0, len(seats))

	for i, s := range seats {
		base := i * 3
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, int(s.Type), int(s.Status), s.HardwareSpec)
	}

	query += strings.Join(placeholders, ", ") + ` RETURNING id`
	var ids []int64
	if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
		return domainerr.Storage("座席一括作成", err)
	}
	// 複数行 INSERT の RETURNING は VALUES の順で返る
	for i := range ids {
		seats[i].ID = ids[i]
	}
	return nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = $1`
	var row seatRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seat.ErrSeatNotFound
		}
		return nil, domainerr.Storage("座席取得", err)
	}
	return row.toEntity(), nil
}

func (r *SeatRepository) List(ctx context.Context) ([]*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats ORDER BY id`
	var rows []seatRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, domainerr.Storage("座席一覧取得", err)
	}
	seats := make([]*seat.Seat, len(rows))
	for i, row := range rows {
		seats[i] = row.toEntity()
	}
	return seats, nil
}

func (r *SeatRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM seats`); err != nil {
		return 0, domainerr.Storage("座席数取得", err)
	}
	return count, nil
}

func (r *SeatRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, id int64, status seat.Status) error {
	sqlTx := UnwrapTx(tx)
	if sqlTx == nil {
		return ErrForeignTx
	}
	result, err := sqlTx.ExecContext(ctx, `UPDATE seats SET status = $1 WHERE id = $2`, int(status), id)
	if err != nil {
		return domainerr.Storage("座席状態更新", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return seat.ErrSeatNotFound
	}
	return nil
}

var _ seat.Repository = (*SeatRepository)(nil)
