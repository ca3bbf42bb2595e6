package model

import (
	"encoding/json"
	"time"
)

// Client represents a hotel customer as stored in the `clients`
// table.  The ID is assigned by the database on insert.  Email must
// be unique across clients.
//
// Fields:
//  ID        – clients.id_client (auto-increment PK).
//  FirstName – clients.nom.
//  LastName  – clients.cognoms.
//  BirthDate – clients.data_naixement (DATE).
//  Email     – clients.email (unique, must contain "@").
//  Phone     – clients.telefon.
type Client struct {
	ID        int64     `json:"id_client"`      // clients.id_client
	FirstName string    `json:"nom"`            // clients.nom
	LastName  string    `json:"cognoms"`        // clients.cognoms
	BirthDate time.Time `json:"data_naixement"` // clients.data_naixement
	Email     string    `json:"email"`          // clients.email
	Phone     string    `json:"telefon"`        // clients.telefon
}

// MarshalJSON emits the birth date as a YYYY-MM-DD string, the same
// format requests use.
func (c Client) MarshalJSON() ([]byte, error) {
	type plain Client
	return json.Marshal(struct {
		plain
		BirthDate string `json:"data_naixement"`
	}{plain(c), c.BirthDate.Format(dateWire)})
}
