// Package bots は対話利用者とホールドを奪い合う模擬購入者を提供する。
// 各ボットは実際のプロトコルクライアントでシミュレータを叩くため、
// エンジン側から見ると本物の競合利用者と区別がつかない。
package bots

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tickget/go-seatmap-engine/internal/domain/booking"
	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
	"github.com/tickget/go-seatmap-engine/internal/pkg/logger"
)

// ClientFactory はボットごとのプロトコルクライアントを作る。
// ボット単位のベアラートークンを付けるために利用者IDを受け取る。
type ClientFactory func(userID string) booking.Client

// Config はボット隊の設定
type Config struct {
	MatchID   string
	Venue     *venue.Venue
	Count     int
	NewClient ClientFactory

	// 間隔が短いほど難易度が上がる
	MinInterval time.Duration
	MaxInterval time.Duration

	// 1ボットが1回のホールドで狙う最大席数
	SeatsPerHold int

	// Seed が0以外なら決定的な乱数列を使う
	Seed int64
}

// Squad はボット購入者の一団を管理する
type Squad struct {
	cfg    Config
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewSquad はボット隊を作る
func NewSquad(cfg Config) *Squad {
	if cfg.SeatsPerHold <= 0 {
		cfg.SeatsPerHold = 2
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 200 * time.Millisecond
	}
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}
	return &Squad{cfg: cfg}
}

// Start は全ボットを起動する
func (s *Squad) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("ボット隊起動",
		zap.String("match_id", s.cfg.MatchID),
		zap.Int("count", s.cfg.Count),
		zap.Duration("min_interval", s.cfg.MinInterval),
		zap.Duration("max_interval", s.cfg.MaxInterval),
	)

	for i := 0; i < s.cfg.Count; i++ {
		userID := fmt.Sprintf("bot-%03d", i+1)
		r := newRacer(userID, s.cfg, rand.New(rand.NewSource(seed+int64(i))))
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			r.run(ctx)
		}()
	}
}

// Stop は全ボットを停止して終了を待つ
func (s *Squad) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// racer は1体の模擬購入者
type racer struct {
	userID  string
	matchID string
	venue   *venue.Venue
	client  booking.Client
	rng     *rand.Rand
	min     time.Duration
	max     time.Duration
	perHold int
	grids   map[string]*venue.Grid
	log     *zap.Logger
}

func newRacer(userID string, cfg Config, rng *rand.Rand) *racer {
	return &racer{
		userID:  userID,
		matchID: cfg.MatchID,
		venue:   cfg.Venue,
		client:  cfg.NewClient(userID),
		rng:     rng,
		min:     cfg.MinInterval,
		max:     cfg.MaxInterval,
		perHold: cfg.SeatsPerHold,
		grids:   make(map[string]*venue.Grid),
		log:     logger.Component("bots").With(zap.String("user_id", userID)),
	}
}

// run は確定に成功するまでホールドを試み続ける
func (r *racer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(r.interval()):
		}

		done, err := r.raceOnce(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			r.log.Warn("ホールド試行失敗", zap.Error(err))
			continue
		}
		if done {
			return
		}
	}
}

// raceOnce は区域を1つ選んで空席のホールドを1回試みる。
// 確定まで進めたら true を返す。
func (r *racer) raceOnce(ctx context.Context) (bool, error) {
	sec := &r.venue.Sections[r.rng.Intn(len(r.venue.Sections))]

	grid, err := r.grid(sec)
	if err != nil {
		return false, err
	}

	statuses, err := r.client.SectionStatus(ctx, r.matchID, sec.ID, r.userID)
	if err != nil {
		return false, err
	}
	taken := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		if st.Status.Occupied() {
			taken[st.SeatID] = true
		}
	}

	free := make([]seat.Seat, 0, grid.OccupiableCount())
	for _, s := range grid.Seats() {
		if !taken[s.WireID()] {
			free = append(free, s)
		}
	}
	if len(free) == 0 {
		return false, nil
	}

	want := r.perHold
	if want > len(free) {
		want = len(free)
	}
	start := r.rng.Intn(len(free) - want + 1)
	picked := free[start : start+want]

	refs := make([]seat.WireRef, len(picked))
	for i, s := range picked {
		refs[i] = s.WireRef()
	}

	res, err := r.client.Hold(ctx, booking.HoldRequest{
		MatchID:    r.matchID,
		UserID:     r.userID,
		Seats:      refs,
		TotalSeats: r.venue.TotalSeats(),
	})
	if err != nil {
		return false, err
	}
	if res.Rejected() {
		r.log.Debug("ホールド拒否", zap.Strings("failed_seats", res.FailedSeats))
		return false, nil
	}

	confirm, err := r.client.Confirm(ctx, r.matchID, r.userID)
	if err != nil {
		// 確定に失敗したホールドは解放して次の周回に回す
		_ = r.client.Cancel(ctx, r.matchID, r.userID)
		return false, err
	}

	r.log.Info("購入確定",
		zap.String("section_id", sec.ID),
		zap.Int("seats", len(refs)),
		zap.Int("user_rank", confirm.UserRank),
	)
	return true, nil
}

func (r *racer) grid(sec *venue.Section) (*venue.Grid, error) {
	if g, ok := r.grids[sec.ID]; ok {
		return g, nil
	}
	g, err := venue.Materialize(r.venue, sec)
	if err != nil {
		return nil, err
	}
	r.grids[sec.ID] = g
	return g, nil
}

func (r *racer) interval() time.Duration {
	if r.max == r.min {
		return r.min
	}
	return r.min + time.Duration(r.rng.Int63n(int64(r.max-r.min)))
}
