package memory

import (
	"context"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

type SeatRepository struct{ store *Store }

func NewSeatRepository(store *Store) *SeatRepository { return &SeatRepository{store: store} }

func (r *SeatRepository) Create(ctx context.Context, s *seat.Seat) error {
	return r.store.write(ctx, nil, func(st *state) error {
		insertSeat(st, s)
		return nil
	})
}

func (r *SeatRepository) CreateBulk(ctx context.Context, tx transaction.Tx, seats []*seat.Seat) error {
	return r.store.write(ctx, tx, func(st *state) error {
		for _, s := range seats {
			insertSeat(st, s)
		}
		return nil
	})
}

func insertSeat(st *state, s *seat.Seat) {
	st.nextSeatID++
	s.ID = st.nextSeatID
	st.seats[s.ID] = s.Clone()
}

func (r *SeatRepository) GetByID(_ context.Context, id int64) (*seat.Seat, error) {
	s, ok := r.store.snapshot().seats[id]
	if !ok {
		return nil, seat.ErrSeatNotFound
	}
	return s.Clone(), nil
}

func (r *SeatRepository) List(_ context.Context) ([]*seat.Seat, error) {
	st := r.store.snapshot()
	seats := make([]*seat.Seat, 0, len(st.seats))
	for _, id := range sortedIDs(st.seats) {
		seats = append(seats, st.seats[id].Clone())
	}
	return seats, nil
}

func (r *SeatRepository) Count(_ context.Context) (int, error) {
	return len(r.store.snapshot().seats), nil
}

func (r *SeatRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, id int64, status seat.Status) error {
	return r.store.write(ctx, tx, func(st *state) error {
		s, ok := st.seats[id]
		if !ok {
			return seat.ErrSeatNotFound
		}
		s.Status = status
		return nil
	})
}

var _ seat.Repository = (*SeatRepository)(nil)
