package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tickget/go-seatmap-engine/internal/bots"
	"github.com/tickget/go-seatmap-engine/internal/config"
	"github.com/tickget/go-seatmap-engine/internal/domain/booking"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue/catalog"
	"github.com/tickget/go-seatmap-engine/internal/infrastructure/layoutsrc"
	"github.com/tickget/go-seatmap-engine/internal/infrastructure/postgres"
	redisinfra "github.com/tickget/go-seatmap-engine/internal/infrastructure/redis"
	"github.com/tickget/go-seatmap-engine/internal/infrastructure/ticketing"
	"github.com/tickget/go-seatmap-engine/internal/pkg/logger"
	"github.com/tickget/go-seatmap-engine/internal/pkg/metrics"
	"github.com/tickget/go-seatmap-engine/internal/server"
	"github.com/tickget/go-seatmap-engine/internal/server/auth"
	"github.com/tickget/go-seatmap-engine/internal/server/store"
	"github.com/tickget/go-seatmap-engine/internal/worker"
)

func main() {
	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.Env))
	defer func() { _ = logger.Sync() }()

	m := metrics.Init()

	st := buildStore(cfg)

	issuer := auth.NewIssuer(cfg.Server.JWTSecret, time.Hour)

	e := server.New(server.Deps{
		Store:        st,
		HoldTTL:      cfg.Simulation.HoldTTL,
		Issuer:       issuer,
		Metrics:      m,
		MetricsToken: cfg.Server.MetricsToken,
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := worker.NewHoldSweeper(st, cfg.Simulation.SweepInterval)
	go sweeper.Start(ctx)

	squad := startBots(ctx, cfg, issuer)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("シミュレータ起動", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("シャットダウン開始")
	cancel()
	if squad != nil {
		squad.Stop()
	}
	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}
	logger.Info("シャットダウン完了")
}

// buildStore は設定に応じた占有ストアを組み立てる
func buildStore(cfg *config.Config) store.Store {
	var st store.Store = store.NewMemoryStore()

	if cfg.Server.StoreBackend == "postgres" {
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			logger.Fatal("データベース接続失敗", zap.Error(err))
		}
		if err := postgres.RunMigrations(db.DB, "migrations"); err != nil {
			logger.Fatal("マイグレーション失敗", zap.Error(err))
		}
		st = postgres.NewOccupancyStore(db)
		logger.Info("Postgres占有ストアを使用")
	}

	if cfg.Redis.Enabled {
		client := redisinfra.NewClient(&cfg.Redis)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer pingCancel()
		if err := redisinfra.Ping(pingCtx, client); err != nil {
			logger.Fatal("Redis接続失敗", zap.Error(err))
		}
		st = redisinfra.NewLockingStore(st, redisinfra.NewSeatLockManager(client, cfg.Simulation.HoldTTL))
		logger.Info("座席ロックによるホールド調停を有効化")
	}

	return st
}

// loadVenue は会場定義を解決する。URL（または LAYOUT_BASE_URL から
// 組み立てた場所）が指定された場合はレイアウトソースから取得し、
// それ以外はカタログから引く。
func loadVenue(ctx context.Context, cfg *config.Config) *venue.Venue {
	venueID := cfg.Simulation.VenueID
	layoutURL := ""
	switch {
	case strings.HasPrefix(venueID, "http://"), strings.HasPrefix(venueID, "https://"):
		layoutURL = venueID
	case cfg.Ticketing.LayoutBaseURL != "":
		layoutURL = strings.TrimSuffix(cfg.Ticketing.LayoutBaseURL, "/") + "/" + venueID
	}

	if layoutURL != "" {
		loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Ticketing.Timeout)
		defer loadCancel()
		loader := layoutsrc.NewLoader(layoutsrc.WithMaxSize(cfg.Ticketing.LayoutMaxSize))
		v, err := loader.Load(loadCtx, layoutURL)
		if err != nil {
			logger.Fatal("レイアウト取得失敗", zap.String("url", layoutURL), zap.Error(err))
		}
		return v
	}

	v, err := catalog.MustNew().Lookup(venueID)
	if err != nil {
		logger.Fatal("会場の取得失敗", zap.String("venue_id", venueID), zap.Error(err))
	}
	return v
}

// startBots はボット隊を起動する。BotCount が0の場合は起動しない
func startBots(ctx context.Context, cfg *config.Config, issuer *auth.Issuer) *bots.Squad {
	if cfg.Simulation.BotCount <= 0 {
		return nil
	}

	v := loadVenue(ctx, cfg)

	httpClient := &http.Client{Timeout: cfg.Ticketing.Timeout}
	squad := bots.NewSquad(bots.Config{
		MatchID: cfg.Simulation.MatchID,
		Venue:   v,
		Count:   cfg.Simulation.BotCount,
		NewClient: func(userID string) booking.Client {
			token, err := issuer.Issue(userID)
			if err != nil {
				logger.Fatal("ボットトークン発行失敗", zap.Error(err))
			}
			return ticketing.New(cfg.Ticketing.BaseURL,
				ticketing.WithBearerToken(token),
				ticketing.WithHTTPClient(httpClient))
		},
		MinInterval:  cfg.Simulation.BotMinInterval,
		MaxInterval:  cfg.Simulation.BotMaxInterval,
		SeatsPerHold: cfg.Simulation.SelectionCap,
	})
	squad.Start(ctx)
	return squad
}
