package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
)

type SeatHandler struct {
	service SeatServiceInterface
}

func NewSeatHandler(s SeatServiceInterface) *SeatHandler {
	return &SeatHandler{service: s}
}

type CreateSeatRequest struct {
	Type         string `json:"type" validate:"required" example:"vip"`
	HardwareSpec string `json:"hardware_spec" validate:"max=255" example:"CPU: Intel i7, RAM: 32GB, GPU: RTX 4070"`
}

type UpdateSeatStatusRequest struct {
	Status string `json:"status" validate:"required" example:"maintenance"`
}

type SeatResponse struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	HardwareSpec string `json:"hardware_spec"`
}

type FreeCountResponse struct {
	Free int `json:"free"`
}

func toSeatResponse(s *seat.Seat) SeatResponse {
	return SeatResponse{
		ID: s.ID, Type: s.Type.String(), Status: s.Status.String(), HardwareSpec: s.HardwareSpec,
	}
}

// List godoc
// @Summary 座席一覧を取得
// @Tags seats
// @Produce json
// @Param status query string false "座席状態（free, reserved, occupied, maintenance）"
// @Success 200 {array} SeatResponse
// @Router /seats [get]
func (h *SeatHandler) List(c echo.Context) error {
	var filter *seat.Status
	if v := c.QueryParam("status"); v != "" {
		st, err := seat.ParseStatus(v)
		if err != nil {
			return fail(err)
		}
		filter = &st
	}
	seats := h.service.ListSeats(c.Request().Context(), filter)
	resp := make([]SeatResponse, len(seats))
	for i, s := range seats {
		resp[i] = toSeatResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SeatHandler) FreeCount(c echo.Context) error {
	return c.JSON(http.StatusOK, FreeCountResponse{Free: h.service.CountFree(c.Request().Context())})
}

func (h *SeatHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s, err := h.service.GetSeat(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toSeatResponse(s))
}

// Create godoc
// @Summary 座席を追加
// @Tags seats
// @Accept json
// @Produce json
// @Param request body CreateSeatRequest true "座席情報"
// @Success 201 {object} SeatResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /seats [post]
func (h *SeatHandler) Create(c echo.Context) error {
	var req CreateSeatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	seatType, err := seat.ParseType(req.Type)
	if err != nil {
		return fail(err)
	}
	s, err := h.service.AddSeat(c.Request().Context(), seatType, req.HardwareSpec)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toSeatResponse(s))
}

// UpdateStatus godoc
// @Summary 座席状態を変更（管理者用）
// @Tags seats
// @Accept json
// @Produce json
// @Param id path int true "座席ID"
// @Param request body UpdateSeatStatusRequest true "変更後の状態"
// @Success 200 {object} SeatResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /seats/{id}/status [put]
func (h *SeatHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateSeatStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := seat.ParseStatus(req.Status)
	if err != nil {
		return fail(err)
	}
	s, err := h.service.UpdateSeatStatus(c.Request().Context(), id, status)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toSeatResponse(s))
}
