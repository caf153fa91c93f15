// Package worker はバックグラウンドの定期処理を提供する
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tickget/go-seatmap-engine/internal/pkg/logger"
)

// ExpiredHoldReleaser は期限切れホールドを解放するインターフェース
type ExpiredHoldReleaser interface {
	ReleaseExpired(ctx context.Context) (int, error)
}

// HoldSweeper は期限切れホールドを定期的に回収するワーカー
type HoldSweeper struct {
	store    ExpiredHoldReleaser
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewHoldSweeper は新しいスイーパーを作成
func NewHoldSweeper(store ExpiredHoldReleaser, interval time.Duration) *HoldSweeper {
	return &HoldSweeper{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はスイーパーを開始
func (s *HoldSweeper) Start(ctx context.Context) {
	logger.Info("期限切れホールドスイーパー開始",
		zap.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れホールドスイーパー停止（コンテキストキャンセル）")
			return
		case <-s.stopCh:
			logger.Info("期限切れホールドスイーパー停止（シグナル受信）")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop はスイーパーを停止
func (s *HoldSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// sweep は期限切れホールドを解放
func (s *HoldSweeper) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("期限切れホールドの回収開始")

	count, err := s.store.ReleaseExpired(ctx)
	if err != nil {
		log.Error("期限切れホールドの回収失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("期限切れホールドを解放", zap.Int("count", count))
	} else {
		log.Debug("期限切れホールドなし")
	}
}
