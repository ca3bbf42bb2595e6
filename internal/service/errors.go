// Package service implements the business operations over the
// repositories: the reservation booking protocol and the room and
// client management services with their validation rules.
package service

import "errors"

// ErrValidation wraps every field-level validation failure (empty
// required field, non-positive price, malformed email).  Callers
// branch with errors.Is(err, ErrValidation); the wrapped message
// names the offending field.
var ErrValidation = errors.New("validation failed")

// ErrInvalidDateRange is returned when a booking request carries a
// missing date, a check-in on or after the check-out, or a check-in
// in the past.  Every stored reservation satisfies checkIn < checkOut.
var ErrInvalidDateRange = errors.New("invalid date range")
