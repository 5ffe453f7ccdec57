package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	ClientID int64     `json:"client_id" validate:"required,gt=0" example:"1"`
	SeatID   int64     `json:"seat_id" validate:"required,gt=0" example:"5"`
	Start    time.Time `json:"start" example:"2026-05-01T10:00:00Z"`
	End      time.Time `json:"end" example:"2026-05-01T11:00:00Z"`
	// Pricing は料金計算方法（per_minute, tariff）。省略時は既定
	Pricing string `json:"pricing,omitempty" example:"per_minute"`
}

type ReservationResponse struct {
	ID        int64     `json:"id" example:"1"`
	ClientID  int64     `json:"client_id" example:"1"`
	SeatID    int64     `json:"seat_id" example:"5"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status" example:"pending"`
	TotalCost float64   `json:"total_cost" example:"120"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID: r.ID, ClientID: r.ClientID, SeatID: r.SeatID,
		Start: r.Start.UTC(), End: r.End.UTC(),
		Status: r.Status.String(), TotalCost: r.TotalCost,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description 座席の空きを確認して保留中の予約を作成し、座席を予約済みにします
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "座席が存在しない"
// @Failure 409 {object} api.ErrorResponse "座席が指定の時間帯に予約済み"
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req CreateReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		ClientID: req.ClientID, SeatID: req.SeatID, Start: req.Start, End: req.End, Pricing: req.Pricing,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// GetByID godoc
// @Summary 予約を取得
// @Tags reservations
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	r, err := h.service.GetReservation(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// List godoc
// @Summary 予約を検索
// @Tags reservations
// @Produce json
// @Param client_id query int false "顧客ID"
// @Param seat_id query int false "座席ID"
// @Param status query string false "予約状態（pending, active, completed, cancelled）"
// @Success 200 {array} ReservationResponse
// @Router /reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	filter := reservation.NewFilter()
	clientID, err := queryID(c, "client_id")
	if err != nil {
		return err
	}
	if clientID > 0 {
		filter = filter.WithClient(clientID)
	}
	seatID, err := queryID(c, "seat_id")
	if err != nil {
		return err
	}
	if seatID > 0 {
		filter = filter.WithSeat(seatID)
	}
	status, err := reservation.ParseStatus(c.QueryParam("status"))
	if err != nil {
		return fail(err)
	}
	filter = filter.WithStatus(status)

	reservations, err := h.service.FindReservations(c.Request().Context(), filter)
	if err != nil {
		return fail(err)
	}
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// Activate godoc
// @Summary 予約を利用開始にする
// @Tags reservations
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "保留中でない"
// @Router /reservations/{id}/activate [post]
func (h *ReservationHandler) Activate(c echo.Context) error {
	return h.apply(c, h.service.ActivateReservation)
}

// Complete godoc
// @Summary 予約を完了にする
// @Tags reservations
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "利用中でない"
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c echo.Context) error {
	return h.apply(c, h.service.CompleteReservation)
}

// Cancel godoc
// @Summary 予約を取り消す
// @Description 予約を取り消し、座席を空席に戻します
// @Tags reservations
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.apply(c, h.service.CancelReservation)
}

func (h *ReservationHandler) apply(c echo.Context, op func(ctx context.Context, id int64) (*reservation.Reservation, error)) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	r, err := op(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}
