// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer
// that records them.
package queue

// ReservationConfirmedQueue and ReservationCancelledQueue name the
// durable queues the events travel on.
const (
	ReservationConfirmedQueue = "reservation.confirmed"
	ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationConfirmedEvent is published after a booking commits.  It
// carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID int64   `json:"reservation_id"`
	RoomNumber    int     `json:"room_number"`
	RoomType      string  `json:"room_type"`
	ClientID      int64   `json:"client_id"`
	ClientName    string  `json:"client_name"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Total         float64 `json:"total"`
	ConfirmedAt   string  `json:"confirmed_at"`
}

// ReservationCancelledEvent is published after a cancellation commits.
type ReservationCancelledEvent struct {
	ReservationID int64  `json:"reservation_id"`
	RoomNumber    int    `json:"room_number"`
	ClientID      int64  `json:"client_id"`
	CancelledAt   string `json:"cancelled_at"`
}
