// Package handler contains the Echo HTTP handlers for the hotel API.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sergiorey/hotel-reservation/internal/repository"
	"github.com/sergiorey/hotel-reservation/internal/service"
)

// dateLayout is the wire format for all dates in the API.
const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD string into a UTC date.  An empty
// string yields the zero time so services can report the missing
// field themselves.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// writeServiceError translates the sentinel errors of the service and
// repository layers into HTTP responses: 404 for absent entities, 400
// for validation failures, 409 for availability gates, date conflicts
// and restricted deletes, 500 for everything else.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrClientNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidDateRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomUnavailable),
		errors.Is(err, repository.ErrDateConflict),
		errors.Is(err, repository.ErrRoomExists),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrHasReservations):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
