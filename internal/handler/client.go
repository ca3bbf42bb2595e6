package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sergiorey/hotel-reservation/internal/model"
	"github.com/sergiorey/hotel-reservation/internal/service"
)

// ClientHandler exposes client management endpoints.
type ClientHandler struct {
	Clients *service.ClientService
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(clients *service.ClientService) *ClientHandler {
	if clients == nil {
		panic("nil service passed to NewClientHandler")
	}
	return &ClientHandler{Clients: clients}
}

type clientReq struct {
	FirstName string `json:"nom"`
	LastName  string `json:"cognoms"`
	BirthDate string `json:"data_naixement"` // YYYY-MM-DD
	Email     string `json:"email"`
	Phone     string `json:"telefon"`
}

func (r clientReq) toModel(id int64) (model.Client, error) {
	birth, err := parseDate(r.BirthDate)
	if err != nil {
		return model.Client{}, err
	}
	return model.Client{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: birth,
		Email:     r.Email,
		Phone:     r.Phone,
	}, nil
}

func clientIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List handles GET /v1/clients.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.Clients.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": clients})
}

// Get handles GET /v1/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client id"})
	}
	client, err := h.Clients.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": client})
}

// Create handles POST /v1/clients.
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, err := req.toModel(0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid birth date, want YYYY-MM-DD"})
	}
	client, err := h.Clients.Add(c.Request().Context(), m)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": client})
}

// Update handles PUT /v1/clients/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	id, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client id"})
	}
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, err := req.toModel(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid birth date, want YYYY-MM-DD"})
	}
	client, err := h.Clients.Update(c.Request().Context(), m)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": client})
}

// Delete handles DELETE /v1/clients/:id.  Clients referenced by
// reservations are refused with 409.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client id"})
	}
	if err := h.Clients.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
