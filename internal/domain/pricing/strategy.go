// Package pricing は予約料金の計算方法を提供する
//
// 予約作成時の料金（1分あたり固定額）と料金プランによる料金は独立した計算方法であり、
// 呼び出し側が名前で明示的に選択する。
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/tariff"
)

const (
	NamePerMinute = "per_minute"
	NameTariff    = "tariff"

	// DefaultRatePerMinute は予約作成時の1分あたりの料金
	DefaultRatePerMinute = 2.0
)

var (
	ErrUnknownPricing = errors.New("不明な料金計算方法です")
	ErrNoTariff       = errors.New("座席に適用する料金プランがありません")
)

// Strategy は料金計算方法
type Strategy interface {
	Name() string
	Price(s *seat.Seat, slot reservation.TimeSlot) (float64, error)
}

// PerMinute は座席種別や料金プランに関係なく、分単位の固定料金で計算する
type PerMinute struct {
	Rate float64
}

func NewPerMinute(rate float64) *PerMinute {
	return &PerMinute{Rate: rate}
}

func (p *PerMinute) Name() string { return NamePerMinute }

func (p *PerMinute) Price(_ *seat.Seat, slot reservation.TimeSlot) (float64, error) {
	return slot.Duration().Minutes() * p.Rate, nil
}

// TariffResolver は座席と時刻から適用する料金プランを決める
type TariffResolver interface {
	Resolve(s *seat.Seat, at time.Time) (*tariff.Tariff, error)
}

// StaticTariffResolver は全座席に同じ料金プランを適用する
type StaticTariffResolver struct {
	Tariff *tariff.Tariff
}

func (r StaticTariffResolver) Resolve(_ *seat.Seat, _ time.Time) (*tariff.Tariff, error) {
	if r.Tariff == nil {
		return nil, ErrNoTariff
	}
	return r.Tariff, nil
}

// SeatTypeTariffResolver は座席種別ごとに明示的に登録された料金プランを適用する
type SeatTypeTariffResolver map[seat.Type]*tariff.Tariff

func (r SeatTypeTariffResolver) Resolve(s *seat.Seat, _ time.Time) (*tariff.Tariff, error) {
	t, ok := r[s.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTariff, s.Type)
	}
	return t, nil
}

// TariffBased は料金プランの現在料金（有効な最大割引を適用）で計算する
type TariffBased struct {
	resolver TariffResolver
	now      func() time.Time
}

func NewTariffBased(resolver TariffResolver, now func() time.Time) *TariffBased {
	if now == nil {
		now = time.Now
	}
	return &TariffBased{resolver: resolver, now: now}
}

func (p *TariffBased) Name() string { return NameTariff }

func (p *TariffBased) Price(s *seat.Seat, slot reservation.TimeSlot) (float64, error) {
	at := p.now()
	t, err := p.resolver.Resolve(s, at)
	if err != nil {
		return 0, err
	}
	return t.CalculateCost(slot.Duration(), at), nil
}

// Registry は名前で料金計算方法を選択する
type Registry struct {
	strategies map[string]Strategy
	fallback   string
}

// NewRegistry は fallback を既定とするレジストリを作成する
func NewRegistry(fallback string, strategies ...Strategy) (*Registry, error) {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies)), fallback: fallback}
	for _, s := range strategies {
		r.strategies[s.Name()] = s
	}
	if _, ok := r.strategies[fallback]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPricing, fallback)
	}
	return r, nil
}

// Get は名前から計算方法を取得する（空文字は既定）
func (r *Registry) Get(name string) (Strategy, error) {
	if name == "" {
		name = r.fallback
	}
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPricing, name)
	}
	return s, nil
}

// Default は既定の計算方法名を返す
func (r *Registry) Default() string {
	return r.fallback
}

// Names は登録済みの計算方法名を返す
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for n := range r.strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
