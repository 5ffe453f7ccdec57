package reservation

import (
	"fmt"
	"strings"
	"time"
)

// Status は予約の状態を表す（値は永続化されるため変更しないこと）
type Status int

const (
	StatusPending   Status = 0
	StatusActive    Status = 1
	StatusCompleted Status = 2
	StatusCancelled Status = 3

	// StatusAny は検索用のワイルドカード。永続化されることはない
	StatusAny Status = -1
)

var statusNames = map[Status]string{
	StatusPending:   "pending",
	StatusActive:    "active",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
	StatusAny:       "any",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// IsStored は永続化可能な状態かを返す
func (s Status) IsStored() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// Blocking は座席の時間帯を占有する状態かを返す
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusActive
}

// ParseStatus は名前から状態を取得する（"any" と空文字は StatusAny）
func ParseStatus(name string) (Status, error) {
	if name == "" {
		return StatusAny, nil
	}
	for st, n := range statusNames {
		if strings.EqualFold(n, name) {
			return st, nil
		}
	}
	return StatusAny, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

// Reservation は予約エンティティを表す
// ClientID, SeatID, Start, End は作成後に変更されない
type Reservation struct {
	ID        int64
	ClientID  int64
	SeatID    int64
	Start     time.Time
	End       time.Time
	Status    Status
	TotalCost float64
}

// NewReservation は保留状態の新しい予約を作成する
func NewReservation(clientID, seatID int64, slot TimeSlot, totalCost float64) *Reservation {
	return &Reservation{
		ClientID:  clientID,
		SeatID:    seatID,
		Start:     slot.Start,
		End:       slot.End,
		Status:    StatusPending,
		TotalCost: totalCost,
	}
}

// Slot は予約の時間帯を返す
func (r *Reservation) Slot() TimeSlot {
	return TimeSlot{Start: r.Start, End: r.End}
}

// Activate は保留中の予約を利用中にする
func (r *Reservation) Activate() error {
	if r.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, StatusActive)
	}
	r.Status = StatusActive
	return nil
}

// Complete は利用中の予約を完了にする
func (r *Reservation) Complete() error {
	if r.Status != StatusActive {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, StatusCompleted)
	}
	r.Status = StatusCompleted
	return nil
}

// Cancel は予約をキャンセルする
// 現在の状態は検査しない（完了済みの予約もキャンセルできる）
func (r *Reservation) Cancel() {
	r.Status = StatusCancelled
}

// SetTotalCost は料金を更新する（負の値は無視）
func (r *Reservation) SetTotalCost(cost float64) {
	if cost >= 0 {
		r.TotalCost = cost
	}
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if !r.Start.Before(r.End) {
		return ErrInvalidInterval
	}
	if r.TotalCost < 0 {
		return ErrNegativeCost
	}
	if !r.Status.IsStored() {
		return ErrInvalidStatus
	}
	return nil
}
