package reservation

import "time"

// EventType は予約ライフサイクルイベントの種類
type EventType string

const (
	EventCreated   EventType = "reservation.created"
	EventActivated EventType = "reservation.activated"
	EventCompleted EventType = "reservation.completed"
	EventCancelled EventType = "reservation.cancelled"
)

// Event は予約の状態変化を外部へ通知するためのメッセージ
type Event struct {
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	ClientID      int64     `json:"client_id"`
	SeatID        int64     `json:"seat_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
	TotalCost     float64   `json:"total_cost"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent は予約の現在の状態からイベントを作成する
func NewEvent(t EventType, r *Reservation, at time.Time) Event {
	return Event{
		Type:          t,
		ReservationID: r.ID,
		ClientID:      r.ClientID,
		SeatID:        r.SeatID,
		Start:         r.Start,
		End:           r.End,
		Status:        r.Status.String(),
		TotalCost:     r.TotalCost,
		OccurredAt:    at.UTC(),
	}
}
