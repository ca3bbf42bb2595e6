package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sergiorey/hotel-reservation/internal/utils"
)

// Staff mirrors the `staff` table.  Staff accounts authenticate
// against the management API; hotel clients never log in.
type Staff struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// StaffRepo manages persistence for staff accounts.
type StaffRepo struct{ db *sql.DB }

// NewStaffRepo constructs a StaffRepo with the given DB handle.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

// Create inserts a staff account with a bcrypt password hash and
// returns its ID.  Duplicate emails map to ErrEmailExists.
func (r *StaffRepo) Create(ctx context.Context, email, password string, cost int) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO staff (email, password_hash) VALUES (?, ?)`, email, hash)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByEmail fetches a staff account by normalized email.  The raw
// sql.ErrNoRows is returned for absent accounts so the login handler
// can answer with a uniform "invalid credentials".
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var s Staff
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM staff WHERE email = ? LIMIT 1`,
		email).Scan(&s.ID, &s.Email, &s.PasswordHash, &s.CreatedAt)
	return s, err
}
