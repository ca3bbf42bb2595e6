package repository

// This file defines persistence for rooms (the `habitacions` table).
// Room numbers are caller-assigned primary keys, so Create maps
// duplicate-key failures to ErrRoomExists instead of relying on
// LastInsertId.

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sergiorey/hotel-reservation/internal/model"
)

// RoomRepo manages persistence for rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// GetByNumber retrieves a room by its number.  It returns
// ErrRoomNotFound if there is no matching row.
func (r *RoomRepo) GetByNumber(ctx context.Context, numero int) (*model.Room, error) {
	const q = `SELECT numero_habitacio, tipus, preu_per_nit, disponible FROM habitacions WHERE numero_habitacio = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, numero).Scan(&room.Number, &room.Type, &room.PricePerNight, &room.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns all rooms ordered by number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT numero_habitacio, tipus, preu_per_nit, disponible FROM habitacions ORDER BY numero_habitacio`
	return r.scanRooms(ctx, q)
}

// ListAvailable returns the rooms whose availability flag is set,
// ordered by number.
func (r *RoomRepo) ListAvailable(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT numero_habitacio, tipus, preu_per_nit, disponible FROM habitacions WHERE disponible = TRUE ORDER BY numero_habitacio`
	return r.scanRooms(ctx, q)
}

func (r *RoomRepo) scanRooms(ctx context.Context, q string) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.Number, &room.Type, &room.PricePerNight, &room.Available); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Create inserts a new room.  New rooms always start available; the
// flag is owned by the reservation workflow afterwards.  Duplicate
// room numbers map to ErrRoomExists (MySQL error 1062).
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO habitacions (numero_habitacio, tipus, preu_per_nit, disponible) VALUES (?, ?, ?, TRUE)`
	_, err := r.db.ExecContext(ctx, q, room.Number, room.Type, room.PricePerNight)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrRoomExists
		}
		return err
	}
	room.Available = true
	return nil
}

// Update rewrites a room's type and price.  The availability flag is
// deliberately not part of the statement: management updates must not
// overwrite a flag that only booking and cancellation drive.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE habitacions SET tipus = ?, preu_per_nit = ? WHERE numero_habitacio = ?`
	res, err := r.db.ExecContext(ctx, q, room.Type, room.PricePerNight, room.Number)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 when the values did not change; treat
		// that as success by re-checking existence.
		if _, err := r.GetByNumber(ctx, room.Number); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a room by number.  It returns ErrRoomNotFound when
// no row was deleted.  Reservation history checks belong to the
// service layer, which consults the reservation repository first.
func (r *RoomRepo) Delete(ctx context.Context, numero int) error {
	const q = `DELETE FROM habitacions WHERE numero_habitacio = ?`
	res, err := r.db.ExecContext(ctx, q, numero)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// SetAvailableTx flips a room's availability flag within the scope of
// an existing transaction.  The reservation repository calls this as
// the second write of the booking and cancellation sequences so that
// both land atomically or not at all.
func (r *RoomRepo) SetAvailableTx(ctx context.Context, tx *sql.Tx, numero int, available bool) error {
	const q = `UPDATE habitacions SET disponible = ? WHERE numero_habitacio = ?`
	res, err := tx.ExecContext(ctx, q, available, numero)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// The flag may already hold the target value; only a missing
		// row is an error.
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM habitacions WHERE numero_habitacio = ?`, numero).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}

// LockByNumberTx reads a room inside the transaction with a row lock
// (SELECT ... FOR UPDATE).  Booking holds this lock for the duration
// of the overlap-re-check-and-insert sequence, serializing concurrent
// bookings per room and closing the check-then-act race.
func (r *RoomRepo) LockByNumberTx(ctx context.Context, tx *sql.Tx, numero int) (*model.Room, error) {
	const q = `SELECT numero_habitacio, tipus, preu_per_nit, disponible FROM habitacions WHERE numero_habitacio = ? FOR UPDATE`
	var room model.Room
	err := tx.QueryRowContext(ctx, q, numero).Scan(&room.Number, &room.Type, &room.PricePerNight, &room.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}
