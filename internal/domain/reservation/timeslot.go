package reservation

import "time"

// MaxDuration は1件の予約で確保できる最大時間
const MaxDuration = 24 * time.Hour

// TimeSlot は予約の時間帯を表す
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// NewTimeSlot は秒単位に丸めた時間帯を作成する（ストアは epoch 秒で保持する）
func NewTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{Start: start.Truncate(time.Second), End: end.Truncate(time.Second)}
}

// Duration は時間帯の長さを返す
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Validate は時間帯の構造を検証する（副作用なし）
func (s TimeSlot) Validate() error {
	if !s.Start.Before(s.End) {
		return ErrInvalidInterval
	}
	if s.Duration() > MaxDuration {
		return ErrDurationExceeded
	}
	return nil
}
