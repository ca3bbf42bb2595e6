package model

// Room represents a hotel room as stored in the `habitacions` table.
// The room number is assigned by the hotel, not generated by the
// database, so it doubles as the primary key.  Available is a coarse
// gate: a room currently serving any active reservation is blocked
// from new bookings regardless of date range.  The flag is driven
// exclusively by the reservation workflow; room management never
// touches it.
//
// Fields:
//  Number        – habitacions.numero_habitacio (caller-assigned PK).
//  Type          – habitacions.tipus (free-text category: single, double, suite…).
//  PricePerNight – habitacions.preu_per_nit (must be > 0).
//  Available     – habitacions.disponible.
type Room struct {
	Number        int     `json:"numero_habitacio"` // habitacions.numero_habitacio
	Type          string  `json:"tipus"`            // habitacions.tipus
	PricePerNight float64 `json:"preu_per_nit"`     // habitacions.preu_per_nit
	Available     bool    `json:"disponible"`       // habitacions.disponible
}
