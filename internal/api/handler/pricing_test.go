package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
)

func TestPricingHandler_Quote(t *testing.T) {
	e := NewTestEcho()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("すべての料金計算方法の見積もりを返す", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("QuotePrices", mock.Anything, int64(5), start, end).Return(&application.Quote{
			SeatID:      5,
			Slot:        reservation.NewTimeSlot(start, end),
			Default:     "per_minute",
			Prices:      map[string]float64{"per_minute": 120, "tariff": 100},
			Unavailable: map[string]string{},
		}, nil)
		handler := NewPricingHandler(mockService)

		rec := httptest.NewRecorder()
		target := "/pricing/quote?seat_id=5&start=2026-05-01T10:00:00Z&end=2026-05-01T11:00:00Z"
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)

		require.NoError(t, handler.Quote(c))
		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "per_minute", resp.Default)
		assert.Equal(t, 120.0, resp.Prices["per_minute"])
		assert.Equal(t, 100.0, resp.Prices["tariff"])
		assert.NotContains(t, rec.Body.String(), "unavailable")
	})

	tests := []struct {
		name   string
		target string
	}{
		{"座席IDなし", "/pricing/quote?start=2026-05-01T10:00:00Z&end=2026-05-01T11:00:00Z"},
		{"開始時刻の形式が不正", "/pricing/quote?seat_id=5&start=10:00&end=2026-05-01T11:00:00Z"},
		{"終了時刻なし", "/pricing/quote?seat_id=5&start=2026-05-01T10:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReservationService)
			handler := NewPricingHandler(mockService)
			c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.target, nil), httptest.NewRecorder())

			assertHTTPError(t, handler.Quote(c), http.StatusBadRequest)
			mockService.AssertNotCalled(t, "QuotePrices", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("存在しない座席は404", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("QuotePrices", mock.Anything, int64(99), start, end).Return(nil, seat.ErrSeatNotFound)
		handler := NewPricingHandler(mockService)

		target := "/pricing/quote?seat_id=99&start=2026-05-01T10:00:00Z&end=2026-05-01T11:00:00Z"
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())

		assertHTTPError(t, handler.Quote(c), http.StatusNotFound)
	})
}
