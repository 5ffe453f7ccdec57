package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/pricing"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/metrics"
)

const (
	seatLockTTL        = 10 * time.Second
	seatLockRetries    = 3
	seatLockRetryDelay = 100 * time.Millisecond
	publishTimeout     = 3 * time.Second
)

// SeatRegistry は予約処理が利用する座席の参照・状態変更の窓口
type SeatRegistry interface {
	GetSeat(ctx context.Context, id int64) (*seat.Seat, error)
	SetStatus(ctx context.Context, tx transaction.Tx, id int64, status seat.Status) error
	// Settle は tx で行った SetStatus を、コミットされたかどうかに応じて確定または破棄する
	Settle(tx transaction.Tx, committed bool)
	Refresh(ctx context.Context, id int64) error
}

// EventPublisher は予約ライフサイクルイベントの配信先
type EventPublisher interface {
	Publish(ctx context.Context, event reservation.Event) error
}

// TransitionHook は activate/complete のトランザクション内で、状態更新の直後に呼ばれる
type TransitionHook interface {
	AfterTransition(ctx context.Context, tx transaction.Tx, r *reservation.Reservation) error
}

// ReservationOption は ReservationService の任意設定
type ReservationOption func(*ReservationService)

// WithConflictPolicy は空き判定の方法を指定する（既定は boundary）
func WithConflictPolicy(p reservation.ConflictPolicy) ReservationOption {
	return func(s *ReservationService) { s.policy = p }
}

func WithPublisher(p EventPublisher) ReservationOption {
	return func(s *ReservationService) { s.publisher = p }
}

func WithTransitionHooks(hooks ...TransitionHook) ReservationOption {
	return func(s *ReservationService) { s.hooks = append(s.hooks, hooks...) }
}

func WithMetrics(m *metrics.Metrics) ReservationOption {
	return func(s *ReservationService) { s.metrics = m }
}

// WithLockTTL は座席ロックの有効期限を指定する（既定は10秒）
func WithLockTTL(ttl time.Duration) ReservationOption {
	return func(s *ReservationService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func WithClock(now func() time.Time) ReservationOption {
	return func(s *ReservationService) { s.now = now }
}

// ReservationService は予約のライフサイクルを管理する
//
// 変更系の操作はプロセス内で直列化され、ロックマネージャーがあれば
// 座席単位の分散ロックでインスタンス間でも直列化される。
// イベント配信はロックを解放してから行う。
type ReservationService struct {
	txm         transaction.Manager
	repo        reservation.Repository
	seats       SeatRegistry
	prices      *pricing.Registry
	lockManager redisinfra.LockManagerInterface
	publisher   EventPublisher
	hooks       []TransitionHook
	metrics     *metrics.Metrics
	policy      reservation.ConflictPolicy
	lockTTL     time.Duration
	now         func() time.Time

	mu sync.Mutex
}

func NewReservationService(
	txm transaction.Manager,
	rr reservation.Repository,
	seats SeatRegistry,
	prices *pricing.Registry,
	lm redisinfra.LockManagerInterface,
	opts ...ReservationOption,
) *ReservationService {
	s := &ReservationService{
		txm:         txm,
		repo:        rr,
		seats:       seats,
		prices:      prices,
		lockManager: lm,
		policy:      reservation.PolicyBoundary,
		lockTTL:     seatLockTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateReservationInput struct {
	ClientID int64
	SeatID   int64
	Start    time.Time
	End      time.Time
	// Pricing は料金計算方法の名前（空文字は既定）
	Pricing string
}

// CreateReservation は時間帯を検証し、空きを確認してから保留中の予約を作成する
// 予約の作成と座席の Reserved への変更は1トランザクションで行う
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	slot := reservation.NewTimeSlot(input.Start, input.End)
	if err := slot.Validate(); err != nil {
		s.countResult(metrics.ResultInvalid)
		return nil, err
	}
	strategy, err := s.prices.Get(input.Pricing)
	if err != nil {
		s.countResult(metrics.ResultInvalid)
		return nil, err
	}

	created, err := s.create(ctx, input, slot, strategy)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, reservation.EventCreated, created)
	return created, nil
}

// create はロックを保持したまま空きを確認して予約を作成する
func (s *ReservationService) create(
	ctx context.Context,
	input CreateReservationInput,
	slot reservation.TimeSlot,
	strategy pricing.Strategy,
) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lockSeat(ctx, input.SeatID)
	if err != nil {
		s.countResult(metrics.ResultLockFailed)
		return nil, err
	}
	defer unlock()

	st, err := s.seats.GetSeat(ctx, input.SeatID)
	if err != nil {
		s.countResult(metrics.ResultInvalid)
		return nil, err
	}
	cost, err := strategy.Price(st, slot)
	if err != nil {
		s.countResult(metrics.ResultInvalid)
		return nil, err
	}

	res := reservation.NewReservation(input.ClientID, input.SeatID, slot, cost)
	if err := res.Validate(); err != nil {
		s.countResult(metrics.ResultInvalid)
		return nil, err
	}

	err = s.runTx(ctx, func(tx transaction.Tx) error {
		n, err := s.repo.CountConflicting(ctx, tx, input.SeatID, slot, s.policy)
		if err != nil {
			return err
		}
		if n > 0 {
			return reservation.ErrSeatUnavailable
		}
		if err := s.repo.Create(ctx, tx, res); err != nil {
			return err
		}
		return s.seats.SetStatus(ctx, tx, input.SeatID, seat.StatusReserved)
	})
	if err != nil {
		if errors.Is(err, reservation.ErrSeatUnavailable) {
			s.countResult(metrics.ResultConflict)
		} else {
			s.countResult(metrics.ResultError)
		}
		return nil, err
	}
	s.countResult(metrics.ResultCreated)
	s.refreshSeat(ctx, input.SeatID)

	created, err := s.repo.GetByID(ctx, res.ID)
	if err != nil {
		return nil, fmt.Errorf("作成した予約の取得に失敗: %w", err)
	}

	logger.Info("予約を作成",
		zap.Int64("reservation_id", created.ID),
		zap.Int64("client_id", created.ClientID),
		zap.Int64("seat_id", created.SeatID),
		zap.Float64("total_cost", created.TotalCost),
		zap.String("pricing", strategy.Name()),
	)
	return created, nil
}

// CancelReservation は予約を取り消し、座席を Free に戻す
// 予約の状態に関わらず取り消せる
func (s *ReservationService) CancelReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	res, err := s.cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, reservation.EventCancelled, res)
	return res, nil
}

func (s *ReservationService) cancel(ctx context.Context, id int64) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lockSeat(ctx, current.SeatID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var res *reservation.Reservation
	err = s.runTx(ctx, func(tx transaction.Tx) error {
		var err error
		res, err = s.repo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		res.Cancel()
		if err := s.repo.Update(ctx, tx, res); err != nil {
			return err
		}
		return s.seats.SetStatus(ctx, tx, res.SeatID, seat.StatusFree)
	})
	if err != nil {
		return nil, err
	}
	s.refreshSeat(ctx, res.SeatID)
	s.countTransition(res.Status)

	logger.Info("予約を取り消し", zap.Int64("reservation_id", res.ID), zap.Int64("seat_id", res.SeatID))
	return res, nil
}

// ActivateReservation は保留中の予約を利用中にする
func (s *ReservationService) ActivateReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return s.transition(ctx, id, (*reservation.Reservation).Activate, reservation.EventActivated)
}

// CompleteReservation は利用中の予約を完了にする
func (s *ReservationService) CompleteReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return s.transition(ctx, id, (*reservation.Reservation).Complete, reservation.EventCompleted)
}

func (s *ReservationService) transition(
	ctx context.Context,
	id int64,
	apply func(*reservation.Reservation) error,
	eventType reservation.EventType,
) (*reservation.Reservation, error) {
	res, err := s.applyTransition(ctx, id, apply)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventType, res)
	return res, nil
}

func (s *ReservationService) applyTransition(
	ctx context.Context,
	id int64,
	apply func(*reservation.Reservation) error,
) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res *reservation.Reservation
	err := s.runTx(ctx, func(tx transaction.Tx) error {
		var err error
		res, err = s.repo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := apply(res); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, tx, res); err != nil {
			return err
		}
		for _, h := range s.hooks {
			if err := h.AfterTransition(ctx, tx, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(s.hooks) > 0 {
		s.refreshSeat(ctx, res.SeatID)
	}
	s.countTransition(res.Status)

	logger.Info("予約の状態を変更", zap.Int64("reservation_id", res.ID), zap.Stringer("status", res.Status))
	return res, nil
}

// GetReservation はIDから予約を取得する
func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

// FindReservations は条件に一致する予約をストア順で返す
func (s *ReservationService) FindReservations(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error) {
	return s.repo.Find(ctx, filter)
}

// Quote は予約せずに、登録されているすべての料金計算方法で料金を計算する
type Quote struct {
	SeatID  int64
	Slot    reservation.TimeSlot
	Default string
	Prices  map[string]float64
	// Unavailable は計算できなかった方法とその理由
	Unavailable map[string]string
}

func (s *ReservationService) QuotePrices(ctx context.Context, seatID int64, start, end time.Time) (*Quote, error) {
	slot := reservation.NewTimeSlot(start, end)
	if err := slot.Validate(); err != nil {
		return nil, err
	}
	st, err := s.seats.GetSeat(ctx, seatID)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		SeatID:      seatID,
		Slot:        slot,
		Default:     s.prices.Default(),
		Prices:      make(map[string]float64),
		Unavailable: make(map[string]string),
	}
	for _, name := range s.prices.Names() {
		strategy, err := s.prices.Get(name)
		if err != nil {
			return nil, err
		}
		price, err := strategy.Price(st, slot)
		if err != nil {
			q.Unavailable[name] = err.Error()
			continue
		}
		q.Prices[name] = price
	}
	return q, nil
}

// lockSeat は座席の分散ロックを取得し、解放関数を返す
func (s *ReservationService) lockSeat(ctx context.Context, seatID int64) (func(), error) {
	if s.lockManager == nil {
		return func() {}, nil
	}

	start := time.Now()
	lock, err := s.lockManager.AcquireLockWithRetry(ctx, redisinfra.SeatLockKey(seatID), s.lockTTL, seatLockRetries, seatLockRetryDelay)
	s.observeLock("acquire", err, start)
	if err != nil {
		if errors.Is(err, redisinfra.ErrLockNotAcquired) {
			return nil, ErrSeatBusy
		}
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}

	return func() {
		start := time.Now()
		err := lock.Release(context.WithoutCancel(ctx))
		s.observeLock("release", err, start)
		if err != nil {
			logger.Warn("ロック解放に失敗", zap.Int64("seat_id", seatID), zap.Error(err))
		}
	}, nil
}

// runTx は fn をトランザクション内で実行し、座席状態の変更を結果に合わせて確定させる
func (s *ReservationService) runTx(ctx context.Context, fn func(tx transaction.Tx) error) error {
	var current transaction.Tx
	err := transaction.Run(ctx, s.txm, func(tx transaction.Tx) error {
		current = tx
		return fn(tx)
	})
	if current != nil {
		s.seats.Settle(current, err == nil)
	}
	return err
}

// refreshSeat はコミット後に座席スナップショットを更新する
// 失敗しても予約自体は確定しているため、ログのみ出す（定期リフレッシュで回復する）
func (s *ReservationService) refreshSeat(ctx context.Context, seatID int64) {
	if err := s.seats.Refresh(ctx, seatID); err != nil {
		logger.Warn("座席スナップショットの更新に失敗", zap.Int64("seat_id", seatID), zap.Error(err))
	}
}

// publish はイベントを配信する。失敗はログとメトリクスにのみ残す
func (s *ReservationService) publish(ctx context.Context, eventType reservation.EventType, r *reservation.Reservation) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, reservation.NewEvent(eventType, r, s.now())); err != nil {
		logger.Warn("予約イベントの配信に失敗",
			zap.String("type", string(eventType)),
			zap.Int64("reservation_id", r.ID),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.EventPublishFailuresTotal.Inc()
		}
	}
}

func (s *ReservationService) countResult(result string) {
	if s.metrics != nil {
		s.metrics.ReservationsTotal.WithLabelValues(result).Inc()
	}
}

func (s *ReservationService) countTransition(to reservation.Status) {
	if s.metrics != nil {
		s.metrics.ReservationTransitionsTotal.WithLabelValues(to.String()).Inc()
	}
}

func (s *ReservationService) observeLock(op string, err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.DistributedLockDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}
