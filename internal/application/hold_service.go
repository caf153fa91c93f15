package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tickget/go-seatmap-engine/internal/domain/booking"
	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/session"
	"github.com/tickget/go-seatmap-engine/internal/pkg/logger"
	"github.com/tickget/go-seatmap-engine/internal/pkg/metrics"
)

// HoldService は選択座席の一括確保から確定・解放までの
// 手順を進める。操作は状態機械で直列化され、進行中の
// 重複要求は落とされる。
type HoldService struct {
	client  booking.Client
	sess    *session.Session
	avail   *AvailabilityService
	metrics *metrics.Metrics
	notify  func(string)

	mu          sync.Mutex
	phase       booking.Phase
	lastConfirm *booking.ConfirmResult
}

// NewHoldService はホールドサービスを作る。m と notify は nil でもよい。
func NewHoldService(client booking.Client, sess *session.Session, avail *AvailabilityService, m *metrics.Metrics, notify func(string)) *HoldService {
	if notify == nil {
		notify = func(string) {}
	}
	return &HoldService{
		client:  client,
		sess:    sess,
		avail:   avail,
		metrics: m,
		notify:  notify,
		phase:   booking.PhaseIdle,
	}
}

// Phase は現在の進行状態を返す
func (h *HoldService) Phase() booking.Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.phase
}

// LastConfirm は直近の確定結果を返す。未確定なら nil。
func (h *HoldService) LastConfirm() *booking.ConfirmResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastConfirm
}

func (h *HoldService) transition(next booking.Phase) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, err := h.phase.Transition(next)
	if err != nil {
		return err
	}
	h.phase = p
	return nil
}

func (h *HoldService) force(next booking.Phase) {
	h.mu.Lock()
	h.phase = next
	h.mu.Unlock()
}

// Hold は選択中の座席を一括で確保する。
// 1席でも確保できなければ全体が失敗し、選択は解除され、
// 関係する区域の座席状況を1回だけ取り直す。
func (h *HoldService) Hold(ctx context.Context) error {
	h.mu.Lock()
	if h.phase == booking.PhaseHolding {
		h.mu.Unlock()
		return booking.ErrRequestInFlight
	}
	p, err := h.phase.Transition(booking.PhaseHolding)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	h.phase = p
	h.mu.Unlock()

	seats := h.sess.Selection()
	if len(seats) == 0 {
		h.force(booking.PhaseIdle)
		return booking.ErrNothingSelected
	}

	refs := make([]seat.WireRef, len(seats))
	for i, st := range seats {
		refs[i] = st.WireRef()
	}
	// totalSeats は要求席数ではなく試合全体の座席容量を送る
	res, err := h.client.Hold(ctx, booking.HoldRequest{
		MatchID:    h.sess.MatchID,
		UserID:     h.sess.UserID,
		Seats:      refs,
		TotalSeats: h.sess.Venue().TotalSeats(),
	})
	if err != nil {
		h.force(booking.PhaseIdle)
		h.holdOutcome("error")
		return fmt.Errorf("ホールド要求に失敗: %w", err)
	}
	if res.Rejected() {
		h.force(booking.PhaseIdle)
		h.holdOutcome("rejected")
		h.rejected(ctx, seats, res.Message)
		return fmt.Errorf("%w: %s", booking.ErrHoldRejected, res.Message)
	}

	h.force(booking.PhaseHeld)
	h.holdOutcome("held")
	h.gauge("holding", +1)
	logger.Info("座席を確保",
		zap.String("match_id", h.sess.MatchID),
		zap.Int("seats", len(seats)))
	return nil
}

// rejected はホールド拒否の後始末を行う。
// 関係区域を是正待ちにし、選択を解除してから、
// 各区域の状況を1回だけ取り直す。
func (h *HoldService) rejected(ctx context.Context, seats []seat.Seat, message string) {
	sections := make([]string, 0, 2)
	seen := make(map[string]struct{})
	for _, st := range seats {
		if _, ok := seen[st.SectionID]; ok {
			continue
		}
		seen[st.SectionID] = struct{}{}
		sections = append(sections, st.SectionID)
	}

	h.sess.MarkCorrective(sections...)
	h.sess.ClearSelection()
	h.notify("座席を確保できませんでした。座席状況を更新します")
	logger.Info("ホールド拒否",
		zap.String("match_id", h.sess.MatchID),
		zap.String("message", message),
		zap.Strings("sections", sections))

	for _, sectionID := range sections {
		// 失敗しても再試行しない。区域は是正待ちのまま残り、
		// 次の同期成功まで再選択できない。
		_ = h.avail.SyncSection(ctx, sectionID)
	}
}

// Confirm はホールド済み座席の購入を確定する
func (h *HoldService) Confirm(ctx context.Context) (booking.ConfirmResult, error) {
	if err := h.transition(booking.PhaseConfirming); err != nil {
		return booking.ConfirmResult{}, err
	}

	res, err := h.client.Confirm(ctx, h.sess.MatchID, h.sess.UserID)
	if err != nil {
		h.force(booking.PhaseHeld)
		return booking.ConfirmResult{}, fmt.Errorf("購入確定に失敗: %w", err)
	}

	h.mu.Lock()
	h.phase = booking.PhaseConfirmed
	h.lastConfirm = &res
	h.mu.Unlock()
	h.gauge("holding", -1)
	h.gauge("confirmed", +1)
	logger.Info("購入確定",
		zap.String("match_id", res.MatchID),
		zap.Int("user_rank", res.UserRank),
		zap.Int("total_rank", res.TotalRank))
	return res, nil
}

// Cancel はホールドを解放する。成功すると選択も解除される。
// 待機中でも呼べる。座席ステップから戻るとき、サーバー側に
// 残っているかもしれないホールドを確実に解放するため。
func (h *HoldService) Cancel(ctx context.Context) error {
	h.mu.Lock()
	prev := h.phase
	p, err := h.phase.Transition(booking.PhaseCancelling)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	h.phase = p
	h.mu.Unlock()

	if err := h.client.Cancel(ctx, h.sess.MatchID, h.sess.UserID); err != nil {
		h.force(prev)
		return fmt.Errorf("ホールド解放に失敗: %w", err)
	}

	h.force(booking.PhaseIdle)
	h.sess.ClearSelection()
	if prev == booking.PhaseHeld {
		h.gauge("holding", -1)
	}
	logger.Info("ホールド解放", zap.String("match_id", h.sess.MatchID))
	return nil
}

func (h *HoldService) holdOutcome(outcome string) {
	if h.metrics != nil {
		h.metrics.HoldAttemptsTotal.WithLabelValues(outcome).Inc()
	}
}

func (h *HoldService) gauge(status string, delta float64) {
	if h.metrics != nil {
		h.metrics.ActiveHolds.WithLabelValues(status).Add(delta)
	}
}
