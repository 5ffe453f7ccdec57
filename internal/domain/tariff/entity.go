package tariff

import (
	"fmt"
	"strings"
	"time"
)

// Period は料金区分
type Period int

const (
	PeriodPeak    Period = 0
	PeriodOffPeak Period = 1
	PeriodHoliday Period = 2
)

var periodNames = map[Period]string{
	PeriodPeak:    "peak",
	PeriodOffPeak: "off_peak",
	PeriodHoliday: "holiday",
}

func (p Period) String() string {
	if name, ok := periodNames[p]; ok {
		return name
	}
	return fmt.Sprintf("period(%d)", int(p))
}

// ParsePeriod は名前から料金区分を取得する
func ParsePeriod(name string) (Period, error) {
	for p, n := range periodNames {
		if strings.EqualFold(n, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, name)
}

// Discount は期間限定の割引
// 期間は開始・終了とも含む
type Discount struct {
	Percent float64
	Start   time.Time
	End     time.Time
}

// ActiveAt は時刻 t に割引が有効かを返す
func (d Discount) ActiveAt(t time.Time) bool {
	return !t.Before(d.Start) && !t.After(d.End)
}

// Tariff は料金プラン（1時間あたりの基本料金と割引）
type Tariff struct {
	ID        int64
	Name      string
	BaseRate  float64
	Period    Period
	Discounts []Discount
}

// NewTariff は新しい料金プランを作成する
func NewTariff(id int64, name string, baseRate float64, period Period) (*Tariff, error) {
	if name == "" {
		return nil, ErrTariffNameMissing
	}
	if baseRate < 0 {
		return nil, ErrNegativeRate
	}
	return &Tariff{ID: id, Name: name, BaseRate: baseRate, Period: period}, nil
}

// SetBaseRate は基本料金を変更する
func (t *Tariff) SetBaseRate(rate float64) error {
	if rate < 0 {
		return ErrNegativeRate
	}
	t.BaseRate = rate
	return nil
}

// AddDiscount は割引を追加する
func (t *Tariff) AddDiscount(percent float64, start, end time.Time) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidDiscount
	}
	if !start.Before(end) {
		return ErrInvalidWindow
	}
	t.Discounts = append(t.Discounts, Discount{Percent: percent, Start: start, End: end})
	return nil
}

// IsDiscountActive は時刻 at に有効な割引があるかを返す
func (t *Tariff) IsDiscountActive(at time.Time) bool {
	for _, d := range t.Discounts {
		if d.ActiveAt(at) {
			return true
		}
	}
	return false
}

// CurrentDiscount は時刻 at に有効な割引率の最大値を返す（割引は重複適用しない）
func (t *Tariff) CurrentDiscount(at time.Time) float64 {
	var max float64
	for _, d := range t.Discounts {
		if d.ActiveAt(at) && d.Percent > max {
			max = d.Percent
		}
	}
	return max
}

// CurrentRate は時刻 at における1時間あたりの料金を返す
func (t *Tariff) CurrentRate(at time.Time) float64 {
	return t.BaseRate * (1 - t.CurrentDiscount(at)/100)
}

// CalculateCost は時刻 at の料金で duration 分の料金を計算する
func (t *Tariff) CalculateCost(duration time.Duration, at time.Time) float64 {
	return t.CurrentRate(at) * duration.Hours()
}

// CalculateCostBetween は start から end までの料金を計算する
func (t *Tariff) CalculateCostBetween(start, end, at time.Time) (float64, error) {
	if !start.Before(end) {
		return 0, ErrInvalidInterval
	}
	return t.CalculateCost(end.Sub(start), at), nil
}
