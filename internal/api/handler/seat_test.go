package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
)

func TestSeatHandler_List(t *testing.T) {
	e := NewTestEcho()
	seats := []*seat.Seat{
		{ID: 1, Type: seat.TypeStandard, Status: seat.StatusFree, HardwareSpec: seat.DefaultHardwareSpec},
		{ID: 2, Type: seat.TypeVIP, Status: seat.StatusFree},
	}

	t.Run("全座席", func(t *testing.T) {
		mockService := new(MockSeatService)
		mockService.On("ListSeats", mock.Anything, (*seat.Status)(nil)).Return(seats)
		handler := NewSeatHandler(mockService)

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/seats", nil), rec)

		require.NoError(t, handler.List(c))
		var resp []SeatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "standard", resp[0].Type)
		assert.Equal(t, "vip", resp[1].Type)
		assert.Equal(t, "free", resp[1].Status)
	})

	t.Run("状態で絞り込む", func(t *testing.T) {
		mockService := new(MockSeatService)
		mockService.On("ListSeats", mock.Anything, mock.MatchedBy(func(st *seat.Status) bool {
			return st != nil && *st == seat.StatusFree
		})).Return(seats)
		handler := NewSeatHandler(mockService)

		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/seats?status=FREE", nil), httptest.NewRecorder())

		require.NoError(t, handler.List(c))
		mockService.AssertExpectations(t)
	})

	t.Run("不正な状態は400", func(t *testing.T) {
		handler := NewSeatHandler(new(MockSeatService))
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/seats?status=broken", nil), httptest.NewRecorder())

		assertHTTPError(t, handler.List(c), http.StatusBadRequest)
	})
}

func TestSeatHandler_FreeCount(t *testing.T) {
	e := NewTestEcho()
	mockService := new(MockSeatService)
	mockService.On("CountFree", mock.Anything).Return(59)
	handler := NewSeatHandler(mockService)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/seats/free-count", nil), rec)

	require.NoError(t, handler.FreeCount(c))
	assert.JSONEq(t, `{"free":59}`, rec.Body.String())
}

func TestSeatHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に取得できる", func(t *testing.T) {
		mockService := new(MockSeatService)
		mockService.On("GetSeat", mock.Anything, int64(5)).Return(&seat.Seat{ID: 5, Status: seat.StatusReserved}, nil)
		handler := NewSeatHandler(mockService)

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.SetParamNames("id")
		c.SetParamValues("5")

		require.NoError(t, handler.GetByID(c))
		assert.Contains(t, rec.Body.String(), `"status":"reserved"`)
	})

	t.Run("存在しない座席は404", func(t *testing.T) {
		mockService := new(MockSeatService)
		mockService.On("GetSeat", mock.Anything, int64(99)).Return(nil, seat.ErrSeatNotFound)
		handler := NewSeatHandler(mockService)

		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("99")

		assertHTTPError(t, handler.GetByID(c), http.StatusNotFound)
	})
}

func TestSeatHandler_Create(t *testing.T) {
	e := NewTestEcho()

	tests := []struct {
		name       string
		body       string
		setupMocks func(m *MockSeatService)
		wantCode   int
		wantErr    bool
	}{
		{
			name: "正常に座席を追加できる",
			body: `{"type":"gaming","hardware_spec":"RTX 4090"}`,
			setupMocks: func(m *MockSeatService) {
				m.On("AddSeat", mock.Anything, seat.TypeGaming, "RTX 4090").
					Return(&seat.Seat{ID: 61, Type: seat.TypeGaming, Status: seat.StatusFree, HardwareSpec: "RTX 4090"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:       "種別がない",
			body:       `{"hardware_spec":"x"}`,
			setupMocks: func(m *MockSeatService) {},
			wantCode:   http.StatusBadRequest,
			wantErr:    true,
		},
		{
			name:       "不明な種別",
			body:       `{"type":"sofa"}`,
			setupMocks: func(m *MockSeatService) {},
			wantCode:   http.StatusBadRequest,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSeatService)
			tt.setupMocks(mockService)
			handler := NewSeatHandler(mockService)

			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/seats", tt.body), rec)

			err := handler.Create(c)

			if tt.wantErr {
				assertHTTPError(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestSeatHandler_UpdateStatus(t *testing.T) {
	e := NewTestEcho()

	t.Run("状態を変更できる", func(t *testing.T) {
		mockService := new(MockSeatService)
		mockService.On("UpdateSeatStatus", mock.Anything, int64(3), seat.StatusMaintenance).
			Return(&seat.Seat{ID: 3, Status: seat.StatusMaintenance}, nil)
		handler := NewSeatHandler(mockService)

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"status":"maintenance"}`), rec)
		c.SetParamNames("id")
		c.SetParamValues("3")

		require.NoError(t, handler.UpdateStatus(c))
		assert.Contains(t, rec.Body.String(), `"status":"maintenance"`)
	})

	t.Run("不正な状態は400", func(t *testing.T) {
		handler := NewSeatHandler(new(MockSeatService))
		c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"status":"sleeping"}`), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("3")

		assertHTTPError(t, handler.UpdateStatus(c), http.StatusBadRequest)
	})
}
