package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sergiorey/hotel-reservation/internal/queue"
	"github.com/sergiorey/hotel-reservation/internal/service"
)

// ReservationHandler exposes the booking workflow.  After a booking
// or cancellation commits, the corresponding event is published to
// the broker; publish failures are logged and never fail the request.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	if reservations == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations}
}

type bookReq struct {
	RoomNumber int    `json:"numero_habitacio"`
	ClientID   int64  `json:"id_client"`
	CheckIn    string `json:"data_entrada"` // YYYY-MM-DD
	CheckOut   string `json:"data_sortida"` // YYYY-MM-DD
}

func reservationIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Book handles POST /v1/reservations.  It runs the booking protocol
// and returns the new reservation with its computed total.
func (h *ReservationHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-in date, want YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-out date, want YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	id, err := h.Reservations.BookRoom(ctx, req.RoomNumber, req.ClientID, checkIn, checkOut)
	if err != nil {
		return writeServiceError(c, err)
	}
	res, err := h.Reservations.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}

	if err := queue.Publish(ctx, queue.ReservationConfirmedQueue, queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		RoomNumber:    res.Room.Number,
		RoomType:      res.Room.Type,
		ClientID:      res.Client.ID,
		ClientName:    res.Client.FirstName + " " + res.Client.LastName,
		CheckIn:       res.CheckIn.Format(dateLayout),
		CheckOut:      res.CheckOut.Format(dateLayout),
		Total:         res.Total,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("reservation: publish confirm event failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"item": res})
}

// Cancel handles DELETE /v1/reservations/:id.  Cancelling an unknown
// or already cancelled reservation answers 404.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := reservationIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()

	// Load first so the cancellation event can name the room and client.
	res, err := h.Reservations.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.Reservations.CancelReservation(ctx, id); err != nil {
		return writeServiceError(c, err)
	}

	if err := queue.Publish(ctx, queue.ReservationCancelledQueue, queue.ReservationCancelledEvent{
		ReservationID: res.ID,
		RoomNumber:    res.Room.Number,
		ClientID:      res.Client.ID,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("reservation: publish cancel event failed: %v", err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListActive handles GET /v1/reservations: every reservation whose
// check-out date is today or later, ordered by check-in.
func (h *ReservationHandler) ListActive(c echo.Context) error {
	items, err := h.Reservations.ListActive(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := reservationIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// ListForClient handles GET /v1/clients/:id/reservations.  Unknown
// clients answer 404 rather than an empty list.
func (h *ReservationHandler) ListForClient(c echo.Context) error {
	id, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client id"})
	}
	items, err := h.Reservations.ListForClient(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
