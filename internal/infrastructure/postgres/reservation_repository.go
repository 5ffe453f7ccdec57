package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/domainerr"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

const reservationColumns = `id, client_id, seat_id, start_time, end_time, status, total_cost`

// 保留中・利用中の予約のみ時間帯を占有する
var blockingStatuses = pq.Array([]int64{int64(reservation.StatusPending), int64(reservation.StatusActive)})

const (
	// 既存予約の開始または終了が [start, end] に含まれるか
	boundaryConflictQuery = `SELECT COUNT(*) FROM reservations
		WHERE seat_id = $1 AND status = ANY($4)
		AND ((start_time BETWEEN $2 AND $3) OR (end_time BETWEEN $2 AND $3))`

	intervalConflictQuery = `SELECT COUNT(*) FROM reservations
		WHERE seat_id = $1 AND status = ANY($4)
		AND start_time < $3 AND end_time > $2`
)

type reservationRow struct {
	ID        int64   `db:"id"`
	ClientID  int64   `db:"client_id"`
	SeatID    int64   `db:"seat_id"`
	StartTime int64   `db:"start_time"`
	EndTime   int64   `db:"end_time"`
	Status    int     `db:"status"`
	TotalCost float64 `db:"total_cost"`
}

func (r *reservationRow) toEntity() *reservation.Reservation {
	return &reservation.Reservation{
		ID: r.ID, ClientID: r.ClientID, SeatID: r.SeatID,
		Start: time.Unix(r.StartTime, 0).UTC(), End: time.Unix(r.EndTime, 0).UTC(),
		Status: reservation.Status(r.Status), TotalCost: r.TotalCost,
	}
}

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlTx := UnwrapTx(tx)
	if sqlTx == nil {
		return ErrForeignTx
	}
	query := `INSERT INTO reservations (client_id, seat_id, start_time, end_time, status, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := sqlTx.QueryRowContext(ctx, query,
		res.ClientID, res.SeatID, res.Start.Unix(), res.End.Unix(), int(res.Status), res.TotalCost,
	).Scan(&res.ID)
	if err != nil {
		return mapCreateReservationError(err)
	}
	return nil
}

// mapCreateReservationError は外部キー違反を参照先の NotFound に読み替える
func mapCreateReservationError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		switch pqErr.Constraint {
		case "reservations_seat_id_fkey":
			return seat.ErrSeatNotFound
		case "reservations_client_id_fkey":
			return client.ErrClientNotFound
		}
	}
	return domainerr.Storage("予約作成", err)
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return r.get(ctx, r.db, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
}

func (r *ReservationRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id int64) (*reservation.Reservation, error) {
	sqlTx := UnwrapTx(tx)
	if sqlTx == nil {
		return nil, ErrForeignTx
	}
	return r.get(ctx, sqlTx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)
}

func (r *ReservationRepository) get(ctx context.Context, q sqlx.QueryerContext, query string, id int64) (*reservation.Reservation, error) {
	var row reservationRow
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, domainerr.Storage("予約取得", err)
	}
	return row.toEntity(), nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlTx := UnwrapTx(tx)
	if sqlTx == nil {
		return ErrForeignTx
	}
	result, err := sqlTx.ExecContext(ctx,
		`UPDATE reservations SET status = $1, total_cost = $2 WHERE id = $3`,
		int(res.Status), res.TotalCost, res.ID,
	)
	if err != nil {
		return domainerr.Storage("予約更新", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

// Find は指定された条件のみを AND で結合して検索する
func (r *ReservationRepository) Find(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(column string, v interface{}) {
		args = append(args, v)
		conds = append(conds, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.ClientID != nil {
		add("client_id", *filter.ClientID)
	}
	if filter.SeatID != nil {
		add("seat_id", *filter.SeatID)
	}
	if filter.Status != reservation.StatusAny {
		add("status", int(filter.Status))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	var rows []reservationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domainerr.Storage("予約検索", err)
	}
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		result[i] = row.toEntity()
	}
	return result, nil
}

func (r *ReservationRepository) CountConflicting(
	ctx context.Context,
	tx transaction.Tx,
	seatID int64,
	slot reservation.TimeSlot,
	policy reservation.ConflictPolicy,
) (int, error) {
	q, err := ext(r.db, tx)
	if err != nil {
		return 0, err
	}
	query := boundaryConflictQuery
	if policy == reservation.PolicyInterval {
		query = intervalConflictQuery
	}
	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, seatID, slot.Start.Unix(), slot.End.Unix(), blockingStatuses); err != nil {
		return 0, domainerr.Storage("予約重複確認", err)
	}
	return count, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
