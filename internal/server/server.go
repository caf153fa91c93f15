package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tickget/go-seatmap-engine/internal/pkg/metrics"
	"github.com/tickget/go-seatmap-engine/internal/server/auth"
	"github.com/tickget/go-seatmap-engine/internal/server/middleware"
	"github.com/tickget/go-seatmap-engine/internal/server/store"
)

// Deps はサーバー構築に必要な依存
type Deps struct {
	Store   store.Store
	HoldTTL time.Duration

	// Issuer が nil の場合、ticketing 配下は認証なしで動く
	Issuer *auth.Issuer

	// Metrics が nil の場合、HTTPメトリクスは収集しない
	Metrics *metrics.Metrics

	// Gatherer が nil の場合、デフォルトレジストリを公開する
	Gatherer     prometheus.Gatherer
	MetricsToken string
}

// New はルーティング済みのEchoインスタンスを作る
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = NewValidator()

	middleware.Setup(e)
	if deps.Metrics != nil {
		e.Use(middleware.Prometheus(deps.Metrics))
	}

	e.GET("/healthz", Health)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics",
		echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		middleware.MetricsTokenAuth(deps.MetricsToken),
	)

	th := NewTicketingHandler(deps.Store, deps.HoldTTL)
	g := e.Group("/ticketing")
	if deps.Issuer != nil {
		e.POST("/auth/token", NewAuthHandler(deps.Issuer).Token)
		g.Use(deps.Issuer.Middleware())
	}
	g.GET("/matches/:match_id/sections/:section_id/seats", th.SectionSeats)
	g.POST("/matches/:match_id/hold", th.Hold)
	g.POST("/matches/:match_id/confirm", th.Confirm)
	g.DELETE("/matches/:match_id/seats/cancel", th.Cancel)

	return e
}
