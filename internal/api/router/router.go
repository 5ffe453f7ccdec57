// Package router はHTTPサーバーのルーティングを組み立てる
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-club-seat-reservation/internal/api"
	"github.com/sanosuguru/go-club-seat-reservation/internal/api/handler"
	"github.com/sanosuguru/go-club-seat-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/metrics"
)

// Deps はルーティングに必要なサービス群
type Deps struct {
	Seats        handler.SeatServiceInterface
	Reservations handler.ReservationServiceInterface
	Clients      handler.ClientServiceInterface
	HealthChecks []handler.HealthCheck

	// Metrics が nil の場合は /metrics を公開しない
	Metrics *metrics.Metrics
	// Gatherer は /metrics で公開するレジストリ（nil なら既定のレジストリ）
	Gatherer prometheus.Gatherer
}

// New は /api/v1 配下のルートを登録した echo インスタンスを返す
func New(cfg *config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.SetupMiddleware(e, cfg, deps.Metrics)

	if deps.Metrics != nil {
		gatherer := deps.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
			middleware.MetricsBasicAuth(cfg.Metrics))
	}

	seatHandler := handler.NewSeatHandler(deps.Seats)
	reservationHandler := handler.NewReservationHandler(deps.Reservations)
	clientHandler := handler.NewClientHandler(deps.Clients)
	pricingHandler := handler.NewPricingHandler(deps.Reservations)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks...)

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	seats := v1.Group("/seats")
	seats.GET("", seatHandler.List)
	seats.POST("", seatHandler.Create)
	seats.GET("/free-count", seatHandler.FreeCount)
	seats.GET("/:id", seatHandler.GetByID)
	seats.PUT("/:id/status", seatHandler.UpdateStatus)

	reservations := v1.Group("/reservations")
	reservations.POST("", reservationHandler.Create)
	reservations.GET("", reservationHandler.List)
	reservations.GET("/:id", reservationHandler.GetByID)
	reservations.POST("/:id/activate", reservationHandler.Activate)
	reservations.POST("/:id/complete", reservationHandler.Complete)
	reservations.POST("/:id/cancel", reservationHandler.Cancel)

	clients := v1.Group("/clients")
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.Search)
	clients.GET("/:id", clientHandler.GetByID)
	clients.PUT("/:id/contact", clientHandler.UpdateContact)

	v1.GET("/pricing/quote", pricingHandler.Quote)

	return e
}
