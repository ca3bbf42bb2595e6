package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sergiorey/hotel-reservation/internal/model"
)

// ClientRepo manages persistence for clients (the `clients` table).
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo constructs a ClientRepo with the given DB handle.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

// GetByID retrieves a client by ID.  It returns ErrClientNotFound if
// there is no matching row.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	const q = `SELECT id_client, nom, cognoms, data_naixement, email, telefon FROM clients WHERE id_client = ?`
	var c model.Client
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.BirthDate, &c.Email, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients ordered by ID.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT id_client, nom, cognoms, data_naixement, email, telefon FROM clients ORDER BY id_client`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	clients := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.BirthDate, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

// Create inserts a new client and assigns the generated ID back to
// the struct.  The email is normalized to lower case; duplicates map
// to ErrEmailExists (MySQL error 1062 on the unique index).
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	const q = `INSERT INTO clients (nom, cognoms, data_naixement, email, telefon) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.BirthDate, c.Email, c.Phone)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// Update rewrites all mutable fields of a client.  ErrClientNotFound
// is returned when the row does not exist; duplicate emails map to
// ErrEmailExists.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	const q = `UPDATE clients SET nom = ?, cognoms = ?, data_naixement = ?, email = ?, telefon = ? WHERE id_client = ?`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.BirthDate, c.Email, c.Phone, c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrEmailExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a client by ID.  It returns ErrClientNotFound when
// no row was deleted.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM clients WHERE id_client = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrClientNotFound
	}
	return nil
}
