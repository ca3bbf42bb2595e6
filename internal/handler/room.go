package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sergiorey/hotel-reservation/internal/service"
)

// RoomHandler exposes room management endpoints.
type RoomHandler struct {
	Rooms *service.RoomService
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	if rooms == nil {
		panic("nil service passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	Number        int     `json:"numero_habitacio"`
	Type          string  `json:"tipus"`
	PricePerNight float64 `json:"preu_per_nit"`
}

func roomNumberParam(c echo.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("numero"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// List handles GET /v1/rooms.  With ?available=true only rooms whose
// availability flag is set are returned.
func (h *RoomHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if c.QueryParam("available") == "true" {
		rooms, err := h.Rooms.ListAvailable(ctx)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": rooms})
	}
	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// Get handles GET /v1/rooms/:numero.
func (h *RoomHandler) Get(c echo.Context) error {
	numero, ok := roomNumberParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room number"})
	}
	room, err := h.Rooms.Get(c.Request().Context(), numero)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// Create handles POST /v1/rooms.  The room number comes from the
// caller; duplicates are answered with 409.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Number <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room number"})
	}
	room, err := h.Rooms.Add(c.Request().Context(), req.Number, req.Type, req.PricePerNight)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": room})
}

// Update handles PUT /v1/rooms/:numero.  Only type and price can
// change; availability is owned by the reservation workflow.
func (h *RoomHandler) Update(c echo.Context) error {
	numero, ok := roomNumberParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room number"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	room, err := h.Rooms.Update(c.Request().Context(), numero, req.Type, req.PricePerNight)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// Delete handles DELETE /v1/rooms/:numero.  Rooms referenced by
// reservations are refused with 409.
func (h *RoomHandler) Delete(c echo.Context) error {
	numero, ok := roomNumberParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room number"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), numero); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
