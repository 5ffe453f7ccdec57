package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/metrics"
)

// SeatCache は空席数キャッシュ
type SeatCache interface {
	GetFreeCount(ctx context.Context) (int, error)
	SetFreeCount(ctx context.Context, count int) error
	Invalidate(ctx context.Context) error
}

// SeatService は座席の登録・状態管理と、メモリ上の座席スナップショットを扱う
//
// 座席状態の変更はすべて SetStatus で永続化し、トランザクションの結果を Settle で
// 確定させてから、コミット後に Refresh で該当座席のスナップショットだけを読み直す。
type SeatService struct {
	txm     transaction.Manager
	repo    seat.Repository
	cache   SeatCache
	metrics *metrics.Metrics

	// syncMu はストアの読み込みからスナップショットへの反映までを直列化する
	syncMu sync.Mutex

	mu    sync.RWMutex
	seats map[int64]*seat.Seat

	pendingMu sync.Mutex
	pending   map[transaction.Tx][]seat.Status
}

func NewSeatService(txm transaction.Manager, sr seat.Repository, cache SeatCache, m *metrics.Metrics) *SeatService {
	return &SeatService{
		txm:     txm,
		repo:    sr,
		cache:   cache,
		metrics: m,
		seats:   make(map[int64]*seat.Seat),
		pending: make(map[transaction.Tx][]seat.Status),
	}
}

// Load はストアから全座席を読み込み、スナップショットを置き換える
func (s *SeatService) Load(ctx context.Context) error {
	if err := s.load(ctx); err != nil {
		return err
	}
	s.afterChange(ctx)
	return nil
}

func (s *SeatService) load(ctx context.Context) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	seats, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("座席一覧の読み込みに失敗: %w", err)
	}
	snapshot := make(map[int64]*seat.Seat, len(seats))
	for _, se := range seats {
		snapshot[se.ID] = se
	}

	s.mu.Lock()
	s.seats = snapshot
	s.mu.Unlock()
	return nil
}

// Refresh は1座席だけをストアから読み直す。ストアに存在しなければスナップショットから除く
// 実行中の Load があれば、その反映が終わってから読み直す
func (s *SeatService) Refresh(ctx context.Context, id int64) error {
	if err := s.refresh(ctx, id); err != nil {
		return err
	}
	s.afterChange(ctx)
	return nil
}

func (s *SeatService) refresh(ctx context.Context, id int64) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	se, err := s.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, seat.ErrSeatNotFound):
		s.mu.Lock()
		delete(s.seats, id)
		s.mu.Unlock()
	case err != nil:
		return fmt.Errorf("座席の再読み込みに失敗: %w", err)
	default:
		s.mu.Lock()
		s.seats[id] = se
		s.mu.Unlock()
	}
	return nil
}

// GetSeat はスナップショットから座席を取得する
func (s *SeatService) GetSeat(_ context.Context, id int64) (*seat.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	se, ok := s.seats[id]
	if !ok {
		return nil, seat.ErrSeatNotFound
	}
	return se.Clone(), nil
}

// ListSeats はID順に座席を返す。status が nil でなければその状態の座席のみ
func (s *SeatService) ListSeats(_ context.Context, status *seat.Status) []*seat.Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*seat.Seat, 0, len(s.seats))
	for _, se := range s.seats {
		if status == nil || se.Status == *status {
			result = append(result, se.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// AddSeat は座席を1つ追加する
func (s *SeatService) AddSeat(ctx context.Context, seatType seat.Type, hardwareSpec string) (*seat.Seat, error) {
	se := seat.NewSeat(seatType, hardwareSpec)
	if err := se.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, se); err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx, se.ID); err != nil {
		return nil, err
	}
	logger.Info("座席を追加", zap.Int64("seat_id", se.ID), zap.Stringer("type", se.Type))
	return se, nil
}

// SetStatus は座席状態をトランザクション内で永続化する
// 呼び出し側はトランザクション終了後に Settle を呼び、コミット後に Refresh でスナップショットを更新する
func (s *SeatService) SetStatus(ctx context.Context, tx transaction.Tx, id int64, status seat.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %d", seat.ErrInvalidStatus, int(status))
	}
	if err := s.repo.UpdateStatus(ctx, tx, id, status); err != nil {
		return err
	}
	s.pendingMu.Lock()
	s.pending[tx] = append(s.pending[tx], status)
	s.pendingMu.Unlock()
	return nil
}

// Settle は tx 内の状態変更を、コミットされていればメトリクスに計上する
// ロールバックされた変更は計上せずに捨てる
func (s *SeatService) Settle(tx transaction.Tx, committed bool) {
	s.pendingMu.Lock()
	changes := s.pending[tx]
	delete(s.pending, tx)
	s.pendingMu.Unlock()

	if !committed || s.metrics == nil {
		return
	}
	for _, status := range changes {
		s.metrics.SeatStatusChangesTotal.WithLabelValues(status.String()).Inc()
	}
}

// UpdateSeatStatus は管理者による座席状態の変更
func (s *SeatService) UpdateSeatStatus(ctx context.Context, id int64, status seat.Status) (*seat.Seat, error) {
	if _, err := s.GetSeat(ctx, id); err != nil {
		return nil, err
	}
	var current transaction.Tx
	err := transaction.Run(ctx, s.txm, func(tx transaction.Tx) error {
		current = tx
		return s.SetStatus(ctx, tx, id, status)
	})
	if current != nil {
		s.Settle(current, err == nil)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx, id); err != nil {
		return nil, err
	}
	logger.Info("座席状態を変更", zap.Int64("seat_id", id), zap.Stringer("status", status))
	return s.GetSeat(ctx, id)
}

// InitializeDefaultSeats は座席が1つもない場合に限り count 席の標準座席を作成する
// 作成は1トランザクションで行い、失敗した場合はすべて取り消す
func (s *SeatService) InitializeDefaultSeats(ctx context.Context, count int, hardwareSpec string) (int, error) {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 || count <= 0 {
		return 0, nil
	}

	seats := make([]*seat.Seat, 0, count)
	for i := 0; i < count; i++ {
		seats = append(seats, seat.NewSeat(seat.TypeStandard, hardwareSpec))
	}
	err = transaction.Run(ctx, s.txm, func(tx transaction.Tx) error {
		return s.repo.CreateBulk(ctx, tx, seats)
	})
	if err != nil {
		return 0, fmt.Errorf("座席の初期化に失敗: %w", err)
	}

	if err := s.Load(ctx); err != nil {
		return 0, err
	}
	logger.Info("座席を初期化", zap.Int("count", count))
	return count, nil
}

// CountFree は空席数を返す（キャッシュがあれば優先）
func (s *SeatService) CountFree(ctx context.Context) int {
	// キャッシュから取得を試みる
	if s.cache != nil {
		count, err := s.cache.GetFreeCount(ctx)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.Int("count", count))
			return count
		}
		if !redisinfra.IsCacheMiss(err) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	count := s.countByStatus()[seat.StatusFree]

	// キャッシュに保存
	if s.cache != nil {
		if cacheErr := s.cache.SetFreeCount(ctx, count); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}
	return count
}

func (s *SeatService) countByStatus() map[seat.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[seat.Status]int, 4)
	for _, se := range s.seats {
		counts[se.Status]++
	}
	return counts
}

// afterChange はスナップショット更新後にキャッシュとメトリクスを追従させる
func (s *SeatService) afterChange(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Error(err))
		}
	}
	if s.metrics != nil {
		counts := s.countByStatus()
		for _, st := range []seat.Status{seat.StatusFree, seat.StatusReserved, seat.StatusOccupied, seat.StatusMaintenance} {
			s.metrics.SeatsByStatus.WithLabelValues(st.String()).Set(float64(counts[st]))
		}
	}
}
