package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
)

type ClientHandler struct {
	service ClientServiceInterface
}

func NewClientHandler(s ClientServiceInterface) *ClientHandler {
	return &ClientHandler{service: s}
}

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=255" example:"Ivan Petrov"`
	Contact string `json:"contact" validate:"required,max=255" example:"+79991234567"`
}

type UpdateContactRequest struct {
	Contact string `json:"contact" validate:"required,max=255" example:"ivan@example.com"`
}

type ClientResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{ID: c.ID, Name: c.Name, Contact: c.Contact, RegisteredAt: c.RegisteredAt.UTC()}
}

// Create godoc
// @Summary 顧客を登録
// @Tags clients
// @Accept json
// @Produce json
// @Param request body CreateClientRequest true "顧客情報"
// @Success 201 {object} ClientResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "連絡先が登録済み"
// @Router /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cl, err := h.service.CreateClient(c.Request().Context(), req.Name, req.Contact)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toClientResponse(cl))
}

func (h *ClientHandler) Search(c echo.Context) error {
	clients, err := h.service.FindClients(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(err)
	}
	resp := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		resp[i] = toClientResponse(cl)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ClientHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cl, err := h.service.GetClient(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toClientResponse(cl))
}

func (h *ClientHandler) UpdateContact(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cl, err := h.service.UpdateContact(c.Request().Context(), id, req.Contact)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toClientResponse(cl))
}
