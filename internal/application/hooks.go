package application

import (
	"context"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

// SeatOccupancySync は予約の状態に合わせて座席状態を変更する
// Active で Occupied、Completed で Free にする。それ以外の状態では何もしない
type SeatOccupancySync struct {
	seats SeatRegistry
}

func NewSeatOccupancySync(seats SeatRegistry) *SeatOccupancySync {
	return &SeatOccupancySync{seats: seats}
}

func (h *SeatOccupancySync) AfterTransition(ctx context.Context, tx transaction.Tx, r *reservation.Reservation) error {
	switch r.Status {
	case reservation.StatusActive:
		return h.seats.SetStatus(ctx, tx, r.SeatID, seat.StatusOccupied)
	case reservation.StatusCompleted:
		return h.seats.SetStatus(ctx, tx, r.SeatID, seat.StatusFree)
	}
	return nil
}

var _ TransitionHook = (*SeatOccupancySync)(nil)
