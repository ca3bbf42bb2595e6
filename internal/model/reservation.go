package model

import (
	"encoding/json"
	"time"
)

// dateWire is the JSON format for all DATE-typed fields, matching the
// format requests are parsed with.
const dateWire = "2006-01-02"

// Reservation records a client's stay in a room between two dates.
// The interval is half-open: [CheckIn, CheckOut), so the check-out
// date itself is not part of the stay and a stay of one night has
// CheckOut = CheckIn + 1 day.  Room and Client are read-derived
// snapshots resolved at query time, not live links.
//
// Fields:
//  ID       – reserves.id_reserva (auto-increment PK).
//  Room     – snapshot of the referenced habitacions row.
//  Client   – snapshot of the referenced clients row.
//  CheckIn  – reserves.data_entrada (DATE).
//  CheckOut – reserves.data_sortida (DATE).
//  Total    – reserves.total_a_pagar, always Nights(CheckIn, CheckOut) * Room.PricePerNight.
type Reservation struct {
	ID       int64     `json:"id_reserva"`   // reserves.id_reserva
	Room     Room      `json:"habitacio"`    // reserves.numero_habitacio (resolved)
	Client   Client    `json:"client"`       // reserves.id_client (resolved)
	CheckIn  time.Time `json:"data_entrada"` // reserves.data_entrada
	CheckOut time.Time `json:"data_sortida"` // reserves.data_sortida
	Total    float64   `json:"total_a_pagar"`
}

// MarshalJSON emits the check-in and check-out dates as YYYY-MM-DD
// strings so responses carry the same date format requests accept.
func (r Reservation) MarshalJSON() ([]byte, error) {
	type plain Reservation
	return json.Marshal(struct {
		plain
		CheckIn  string `json:"data_entrada"`
		CheckOut string `json:"data_sortida"`
	}{plain(r), r.CheckIn.Format(dateWire), r.CheckOut.Format(dateWire)})
}

// NewReservation builds a reservation with its total computed once at
// construction.  Total is never settable afterwards; reconstruction
// from a database row goes through the same function so the derived
// value cannot drift from the dates and price that produced it.
func NewReservation(room Room, client Client, checkIn, checkOut time.Time) Reservation {
	return Reservation{
		Room:     room,
		Client:   client,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Total:    ComputeTotal(room.PricePerNight, checkIn, checkOut),
	}
}

// Nights returns the number of whole days between check-in and
// check-out.  The check-out day is excluded, so a one-night stay
// yields 1.  Inverted or equal dates yield 0.
func Nights(checkIn, checkOut time.Time) int {
	n := int(dateOnly(checkOut).Sub(dateOnly(checkIn)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// ComputeTotal is the pure pricing function: nights times the room's
// price per night.
func ComputeTotal(pricePerNight float64, checkIn, checkOut time.Time) float64 {
	return float64(Nights(checkIn, checkOut)) * pricePerNight
}

// Overlaps reports whether two half-open date intervals [a1,a2) and
// [b1,b2) intersect.  Touching endpoints do not overlap: a checkout
// on day N and a new check-in on day N are compatible.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return dateOnly(a1).Before(dateOnly(b2)) && dateOnly(b1).Before(dateOnly(a2))
}

// dateOnly truncates a timestamp to midnight UTC so DATE columns and
// parsed request dates compare on the calendar day alone.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
