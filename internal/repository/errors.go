// Package repository defines sentinel error values shared across the
// repositories. Services and handlers branch on these with errors.Is
// to distinguish failure causes instead of inspecting negative return
// sentinels. ErrDateConflict in particular signals that a candidate
// stay intersects an existing reservation for the same room.
package repository

import "errors"

// ErrRoomNotFound indicates that no room with the given number exists.
var ErrRoomNotFound = errors.New("room not found")

// ErrClientNotFound indicates that no client with the given ID exists.
var ErrClientNotFound = errors.New("client not found")

// ErrReservationNotFound indicates that no reservation with the given
// ID exists.  Cancelling twice surfaces this on the second call.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRoomExists is returned when adding a room whose number is
// already taken.  Room numbers are caller-assigned.
var ErrRoomExists = errors.New("room number already exists")

// ErrEmailExists is returned on inserts that would violate the unique
// email constraint on clients or staff.
var ErrEmailExists = errors.New("email already exists")

// ErrRoomUnavailable is returned when booking a room whose
// availability flag is false.  The flag is a single global gate, not
// per date range.
var ErrRoomUnavailable = errors.New("room unavailable")

// ErrDateConflict is returned when the requested stay overlaps an
// existing reservation for the same room under half-open interval
// semantics.
var ErrDateConflict = errors.New("date range conflicts with an existing reservation")

// ErrHasReservations blocks deleting a room or client that is still
// referenced by reservations.  Handlers should translate this into an
// HTTP 409 response.
var ErrHasReservations = errors.New("reservations reference this record")
