package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tickget/go-seatmap-engine/internal/domain/booking"
	"github.com/tickget/go-seatmap-engine/internal/domain/session"
	"github.com/tickget/go-seatmap-engine/internal/pkg/logger"
	"github.com/tickget/go-seatmap-engine/internal/pkg/metrics"
)

// AvailabilityService は区域単位の座席状況同期を司る。
// 同じ区域への同期は同時に1つしか走らない。
type AvailabilityService struct {
	client  booking.Client
	sess    *session.Session
	metrics *metrics.Metrics
	notify  func(string)

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewAvailabilityService は同期サービスを作る。m と notify は nil でもよい。
func NewAvailabilityService(client booking.Client, sess *session.Session, m *metrics.Metrics, notify func(string)) *AvailabilityService {
	if notify == nil {
		notify = func(string) {}
	}
	return &AvailabilityService{
		client:   client,
		sess:     sess,
		metrics:  m,
		notify:   notify,
		inflight: make(map[string]struct{}),
	}
}

// SyncSection は区域の座席状況を取得して取り込む。
// 既に同じ区域の同期が進行中なら何もしない。
// 取得に失敗しても直前の把握内容は保持される。
func (s *AvailabilityService) SyncSection(ctx context.Context, sectionID string) error {
	s.mu.Lock()
	if _, busy := s.inflight[sectionID]; busy {
		s.mu.Unlock()
		s.count("skipped")
		return nil
	}
	s.inflight[sectionID] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, sectionID)
		s.mu.Unlock()
	}()

	start := time.Now()
	entries, err := s.client.SectionStatus(ctx, s.sess.MatchID, sectionID, s.sess.UserID)
	if err != nil {
		s.observeFetch("failed", start)
		s.count("failed")
		logger.Warn("座席状況の取得に失敗。直前の内容で表示を継続",
			zap.String("match_id", s.sess.MatchID),
			zap.String("section_id", sectionID),
			zap.Error(err))
		return err
	}
	s.observeFetch("success", start)

	removed, err := s.sess.ApplyStatuses(sectionID, entries)
	if err != nil {
		s.count("failed")
		return err
	}
	s.sess.ClearCorrective(sectionID)
	s.count("success")

	for _, st := range removed {
		s.notify(st.Label() + " は他のお客様が確保したため選択を解除しました")
		logger.Info("確保済みになった座席の選択を解除",
			zap.String("seat_id", st.ID()),
			zap.String("section_id", sectionID))
	}
	return nil
}

// SyncAll は全区域を順に同期する。コンパクト会場の初期表示用。
// 失敗した区域は読み飛ばして続行する。
func (s *AvailabilityService) SyncAll(ctx context.Context) {
	for _, sec := range s.sess.Venue().Sections {
		if err := s.SyncSection(ctx, sec.ID); err != nil {
			continue
		}
	}
}

func (s *AvailabilityService) count(status string) {
	if s.metrics != nil {
		s.metrics.SectionSyncsTotal.WithLabelValues(status).Inc()
	}
}

func (s *AvailabilityService) observeFetch(status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.SeatStatusFetchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}
}
