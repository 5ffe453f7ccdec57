package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
)

// MockSeatService はSeatServiceInterfaceのモック
type MockSeatService struct {
	mock.Mock
}

func (m *MockSeatService) GetSeat(ctx context.Context, id int64) (*seat.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seat.Seat), args.Error(1)
}

func (m *MockSeatService) ListSeats(ctx context.Context, status *seat.Status) []*seat.Seat {
	args := m.Called(ctx, status)
	return args.Get(0).([]*seat.Seat)
}

func (m *MockSeatService) AddSeat(ctx context.Context, seatType seat.Type, hardwareSpec string) (*seat.Seat, error) {
	args := m.Called(ctx, seatType, hardwareSpec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seat.Seat), args.Error(1)
}

func (m *MockSeatService) UpdateSeatStatus(ctx context.Context, id int64, status seat.Status) (*seat.Seat, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seat.Seat), args.Error(1)
}

func (m *MockSeatService) CountFree(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

// MockReservationService はReservationServiceInterfaceのモック
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockReservationService) FindReservations(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) ActivateReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockReservationService) CompleteReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockReservationService) CancelReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockReservationService) QuotePrices(ctx context.Context, seatID int64, start, end time.Time) (*application.Quote, error) {
	args := m.Called(ctx, seatID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Quote), args.Error(1)
}

func (m *MockReservationService) result(args mock.Arguments) (*reservation.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

// MockClientService はClientServiceInterfaceのモック
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, name, contact string) (*client.Client, error) {
	args := m.Called(ctx, name, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientService) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientService) FindClients(ctx context.Context, query string) ([]*client.Client, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*client.Client), args.Error(1)
}

func (m *MockClientService) UpdateContact(ctx context.Context, id int64, contact string) (*client.Client, error) {
	args := m.Called(ctx, id, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}
