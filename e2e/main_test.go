package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-club-seat-reservation/internal/api/router"
	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/pricing"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/tariff"
	"github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/memory"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/metrics"
)

const testSeatCount = 5

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo *echo.Echo
}

// NewTestServer はメモリストア上に全サービスを組み立てたサーバーを作成する
// 着席・退席時の座席同期フックを有効にしている
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	seats := application.NewSeatService(store, memory.NewSeatRepository(store), nil, m)
	_, err := seats.InitializeDefaultSeats(ctx, testSeatCount, seat.DefaultHardwareSpec)
	require.NoError(t, err)

	tr, err := tariff.NewTariff(1, "standard", 100, tariff.PeriodPeak)
	require.NoError(t, err)
	prices, err := pricing.NewRegistry(pricing.NamePerMinute,
		pricing.NewPerMinute(pricing.DefaultRatePerMinute),
		pricing.NewTariffBased(pricing.StaticTariffResolver{Tariff: tr}, nil),
	)
	require.NoError(t, err)

	reservations := application.NewReservationService(
		store, memory.NewReservationRepository(store), seats, prices, nil,
		application.WithMetrics(m),
		application.WithTransitionHooks(application.NewSeatOccupancySync(seats)),
	)

	e := router.New(&config.Config{}, router.Deps{
		Seats:        seats,
		Reservations: reservations,
		Clients:      application.NewClientService(memory.NewClientRepository(store)),
		Metrics:      m,
		Gatherer:     reg,
	})
	return &TestServer{Echo: e}
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

// decode はレスポンスボディを map に展開する
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
