package handler

import (
	"context"
	"time"

	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
)

// SeatServiceInterface は座席サービスのインターフェース
type SeatServiceInterface interface {
	GetSeat(ctx context.Context, id int64) (*seat.Seat, error)
	ListSeats(ctx context.Context, status *seat.Status) []*seat.Seat
	AddSeat(ctx context.Context, seatType seat.Type, hardwareSpec string) (*seat.Seat, error)
	UpdateSeatStatus(ctx context.Context, id int64, status seat.Status) (*seat.Seat, error)
	CountFree(ctx context.Context) int
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*reservation.Reservation, error)
	FindReservations(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error)
	ActivateReservation(ctx context.Context, id int64) (*reservation.Reservation, error)
	CompleteReservation(ctx context.Context, id int64) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (*reservation.Reservation, error)
	QuotePrices(ctx context.Context, seatID int64, start, end time.Time) (*application.Quote, error)
}

// ClientServiceInterface は顧客サービスのインターフェース
type ClientServiceInterface interface {
	CreateClient(ctx context.Context, name, contact string) (*client.Client, error)
	GetClient(ctx context.Context, id int64) (*client.Client, error)
	FindClients(ctx context.Context, query string) ([]*client.Client, error)
	UpdateContact(ctx context.Context, id int64, contact string) (*client.Client, error)
}
