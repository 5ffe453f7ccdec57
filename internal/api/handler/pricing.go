package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type PricingHandler struct {
	service ReservationServiceInterface
}

func NewPricingHandler(s ReservationServiceInterface) *PricingHandler {
	return &PricingHandler{service: s}
}

type QuoteResponse struct {
	SeatID      int64              `json:"seat_id"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	Default     string             `json:"default"`
	Prices      map[string]float64 `json:"prices"`
	Unavailable map[string]string  `json:"unavailable,omitempty"`
}

// Quote godoc
// @Summary 料金を見積もる
// @Description 予約を作成せずに、登録されているすべての料金計算方法で料金を計算します
// @Tags pricing
// @Produce json
// @Param seat_id query int true "座席ID"
// @Param start query string true "開始時刻（RFC3339）"
// @Param end query string true "終了時刻（RFC3339）"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /pricing/quote [get]
func (h *PricingHandler) Quote(c echo.Context) error {
	seatID, err := queryID(c, "seat_id")
	if err != nil {
		return err
	}
	if seatID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "seat_id は必須です")
	}
	start, err := queryTime(c, "start")
	if err != nil {
		return err
	}
	end, err := queryTime(c, "end")
	if err != nil {
		return err
	}

	q, err := h.service.QuotePrices(c.Request().Context(), seatID, start, end)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, QuoteResponse{
		SeatID:      q.SeatID,
		Start:       q.Slot.Start.UTC(),
		End:         q.Slot.End.UTC(),
		Default:     q.Default,
		Prices:      q.Prices,
		Unavailable: q.Unavailable,
	})
}
