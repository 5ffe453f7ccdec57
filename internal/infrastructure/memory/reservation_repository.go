package memory

import (
	"context"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

type ReservationRepository struct{ store *Store }

func NewReservationRepository(store *Store) *ReservationRepository {
	return &ReservationRepository{store: store}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	return r.store.write(ctx, tx, func(st *state) error {
		// 外部キー制約の代わり
		if _, ok := st.seats[res.SeatID]; !ok {
			return seat.ErrSeatNotFound
		}
		if _, ok := st.clients[res.ClientID]; !ok {
			return client.ErrClientNotFound
		}
		st.nextResvID++
		res.ID = st.nextResvID
		cp := *res
		st.reservations[res.ID] = &cp
		return nil
	})
}

func (r *ReservationRepository) GetByID(_ context.Context, id int64) (*reservation.Reservation, error) {
	return getReservation(r.store.snapshot(), id)
}

func (r *ReservationRepository) GetByIDForUpdate(_ context.Context, tx transaction.Tx, id int64) (*reservation.Reservation, error) {
	st, err := r.store.unwrap(tx)
	if err != nil {
		return nil, err
	}
	return getReservation(st, id)
}

func getReservation(st *state, id int64) (*reservation.Reservation, error) {
	res, ok := st.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	return r.store.write(ctx, tx, func(st *state) error {
		stored, ok := st.reservations[res.ID]
		if !ok {
			return reservation.ErrReservationNotFound
		}
		stored.Status = res.Status
		stored.TotalCost = res.TotalCost
		return nil
	})
}

func (r *ReservationRepository) Find(_ context.Context, filter reservation.Filter) ([]*reservation.Reservation, error) {
	st := r.store.snapshot()
	result := make([]*reservation.Reservation, 0)
	for _, id := range sortedIDs(st.reservations) {
		res := st.reservations[id]
		if filter.Match(res) {
			cp := *res
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *ReservationRepository) CountConflicting(
	_ context.Context,
	tx transaction.Tx,
	seatID int64,
	slot reservation.TimeSlot,
	policy reservation.ConflictPolicy,
) (int, error) {
	st, err := r.store.read(tx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, res := range st.reservations {
		if res.SeatID == seatID && policy.Conflicts(res, slot) {
			count++
		}
	}
	return count, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
