package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
)

// SnapshotLoader はストアから座席スナップショットを読み直すインターフェース
type SnapshotLoader interface {
	Load(ctx context.Context) error
}

// SeatSnapshotRefresher は座席スナップショットを定期的にストアと突き合わせるワーカー
//
// 管理者がDBを直接更新した場合でも interval 以内にメモリ上の状態へ反映される。
type SeatSnapshotRefresher struct {
	loader   SnapshotLoader
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSeatSnapshotRefresher は新しいリフレッシャーを作成
func NewSeatSnapshotRefresher(loader SnapshotLoader, interval time.Duration) *SeatSnapshotRefresher {
	return &SeatSnapshotRefresher{
		loader:   loader,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はリフレッシャーを開始する。ctx のキャンセルか Stop まで戻らない
func (r *SeatSnapshotRefresher) Start(ctx context.Context) {
	logger.Info("座席スナップショット同期開始", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("座席スナップショット同期停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("座席スナップショット同期停止（シグナル受信）")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Stop はリフレッシャーを停止し、ループの終了を待つ
func (r *SeatSnapshotRefresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

func (r *SeatSnapshotRefresher) refresh(ctx context.Context) {
	log := logger.Get()
	started := time.Now()

	if err := r.loader.Load(ctx); err != nil {
		log.Error("座席スナップショットの同期失敗", zap.Error(err))
		return
	}
	log.Debug("座席スナップショットを同期", zap.Duration("elapsed", time.Since(started)))
}
