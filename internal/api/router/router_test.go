package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/pricing"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/memory"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/metrics"
)

func newTestRouter(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	seats := application.NewSeatService(store, memory.NewSeatRepository(store), nil, m)
	_, err := seats.InitializeDefaultSeats(context.Background(), 3, seat.DefaultHardwareSpec)
	require.NoError(t, err)

	prices, err := pricing.NewRegistry(pricing.NamePerMinute, pricing.NewPerMinute(pricing.DefaultRatePerMinute))
	require.NoError(t, err)
	reservations := application.NewReservationService(store, memory.NewReservationRepository(store), seats, prices, nil,
		application.WithMetrics(m))

	return New(cfg, Deps{
		Seats:        seats,
		Reservations: reservations,
		Clients:      application.NewClientService(memory.NewClientRepository(store)),
		Metrics:      m,
		Gatherer:     reg,
	})
}

func TestNew_Routes(t *testing.T) {
	e := newTestRouter(t, &config.Config{})

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/health",
		"GET /api/v1/seats",
		"POST /api/v1/seats",
		"GET /api/v1/seats/free-count",
		"GET /api/v1/seats/:id",
		"PUT /api/v1/seats/:id/status",
		"POST /api/v1/reservations",
		"GET /api/v1/reservations",
		"GET /api/v1/reservations/:id",
		"POST /api/v1/reservations/:id/activate",
		"POST /api/v1/reservations/:id/complete",
		"POST /api/v1/reservations/:id/cancel",
		"POST /api/v1/clients",
		"GET /api/v1/clients",
		"GET /api/v1/clients/:id",
		"PUT /api/v1/clients/:id/contact",
		"GET /api/v1/pricing/quote",
		"GET /metrics",
	} {
		assert.True(t, routes[want], "ルートが登録されていない: %s", want)
	}
}

func TestNew_ServesRequests(t *testing.T) {
	e := newTestRouter(t, &config.Config{})

	t.Run("空席数", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seats/free-count", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"free":3}`, rec.Body.String())
	})

	t.Run("ドメインのエラーはJSONで返る", func(t *testing.T) {
		body := `{"client_id":1,"seat_id":1,"start":"2026-05-01T11:00:00Z","end":"2026-05-01T10:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":400`)
	})

	t.Run("メトリクス", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "club_seats")
		assert.Contains(t, rec.Body.String(), "http_requests_total")
	})
}

func TestNew_MetricsBasicAuth(t *testing.T) {
	e := newTestRouter(t, &config.Config{Metrics: config.MetricsConfig{User: "prom", Password: "secret"}})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("prom", "secret")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// API は認証なしで利用できる
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
