package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sergiorey/hotel-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations (the
// `reserves` table).  It composes the room repository because booking
// and cancellation flip the room's availability flag as their second
// write; both writes run inside one transaction so a partial failure
// can never leave a reservation without the matching flag state.
//
// Reads resolve the referenced room and client eagerly and return
// them as snapshots of query-time state.  The stored total_a_pagar
// column is written at booking time; reads recompute the total from
// the snapshot through the same pure pricing function, mirroring how
// the derived value is defined.
type ReservationRepo struct {
	db    *sql.DB
	rooms *RoomRepo
}

// NewReservationRepo returns a ReservationRepo bound to the given
// database and room repository.
func NewReservationRepo(db *sql.DB, rooms *RoomRepo) *ReservationRepo {
	return &ReservationRepo{db: db, rooms: rooms}
}

// selectReservation joins the room and client rows so each
// reservation is reconstructed with its snapshots in a single query.
const selectReservation = `SELECT r.id_reserva, r.data_entrada, r.data_sortida,
       h.numero_habitacio, h.tipus, h.preu_per_nit, h.disponible,
       c.id_client, c.nom, c.cognoms, c.data_naixement, c.email, c.telefon
FROM reserves r
JOIN habitacions h ON h.numero_habitacio = r.numero_habitacio
JOIN clients c ON c.id_client = r.id_client`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var (
		id       int64
		checkIn  time.Time
		checkOut time.Time
		room     model.Room
		client   model.Client
	)
	err := row.Scan(&id, &checkIn, &checkOut,
		&room.Number, &room.Type, &room.PricePerNight, &room.Available,
		&client.ID, &client.FirstName, &client.LastName, &client.BirthDate, &client.Email, &client.Phone)
	if err != nil {
		return model.Reservation{}, err
	}
	res := model.NewReservation(room, client, checkIn, checkOut)
	res.ID = id
	return res, nil
}

// GetByID retrieves a single reservation with its room and client
// resolved.  It returns ErrReservationNotFound when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	const q = selectReservation + ` WHERE r.id_reserva = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListActive returns all reservations whose check-out date is on or
// after the current date, ordered by check-in date ascending.
func (r *ReservationRepo) ListActive(ctx context.Context) ([]model.Reservation, error) {
	const q = selectReservation + ` WHERE r.data_sortida >= CURDATE() ORDER BY r.data_entrada`
	return r.queryReservations(ctx, q)
}

// ListByClient returns all reservations for a client ordered by
// check-in date ascending.  Client existence is the service's
// concern; an unknown ID simply yields an empty slice here.
func (r *ReservationRepo) ListByClient(ctx context.Context, clientID int64) ([]model.Reservation, error) {
	const q = selectReservation + ` WHERE r.id_client = ? ORDER BY r.data_entrada`
	return r.queryReservations(ctx, q, clientID)
}

func (r *ReservationRepo) queryReservations(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// overlapQuery counts reservations whose half-open [data_entrada,
// data_sortida) interval intersects the candidate interval:
// existing.entry < candidate.exit AND existing.exit > candidate.entry.
// Touching endpoints do not conflict, so a checkout on day N and a
// new check-in on day N are compatible.
const overlapQuery = `SELECT COUNT(*) FROM reserves WHERE numero_habitacio = ? AND data_entrada < ? AND data_sortida > ?`

// HasOverlap reports whether any existing reservation for the room
// intersects the candidate stay.
func (r *ReservationRepo) HasOverlap(ctx context.Context, numero int, checkIn, checkOut time.Time) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, overlapQuery, numero, checkOut, checkIn).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// hasOverlapTx is the same check executed inside the booking
// transaction, after the room row lock has been taken.
func (r *ReservationRepo) hasOverlapTx(ctx context.Context, tx *sql.Tx, numero int, checkIn, checkOut time.Time) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, overlapQuery, numero, checkOut, checkIn).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountForRoom returns how many reservations reference the room, past
// stays included.  The service uses it to refuse deletes that the
// foreign key would reject anyway, answering with a typed error
// instead of a constraint violation.
func (r *ReservationRepo) CountForRoom(ctx context.Context, numero int) (int, error) {
	const q = `SELECT COUNT(*) FROM reserves WHERE numero_habitacio = ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, numero).Scan(&n)
	return n, err
}

// CountForClient returns how many reservations reference the client.
func (r *ReservationRepo) CountForClient(ctx context.Context, clientID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM reserves WHERE id_client = ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, clientID).Scan(&n)
	return n, err
}

// Book persists a reservation and flips the room's availability flag
// in a single transaction.  The room row is locked (FOR UPDATE) for
// the duration of the sequence, so the availability gate and the
// overlap check are re-evaluated under the lock and two concurrent
// bookings for the same room serialize instead of both passing the
// check.  On success the generated ID is assigned to the reservation.
//
// It returns ErrRoomNotFound, ErrRoomUnavailable or ErrDateConflict
// when a precondition no longer holds at commit time.
func (r *ReservationRepo) Book(ctx context.Context, res *model.Reservation) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := r.rooms.LockByNumberTx(ctx, tx, res.Room.Number)
	if err != nil {
		return 0, err
	}
	if !room.Available {
		return 0, ErrRoomUnavailable
	}
	conflict, err := r.hasOverlapTx(ctx, tx, res.Room.Number, res.CheckIn, res.CheckOut)
	if err != nil {
		return 0, err
	}
	if conflict {
		return 0, ErrDateConflict
	}

	const ins = `INSERT INTO reserves (numero_habitacio, id_client, data_entrada, data_sortida, total_a_pagar) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, ins, res.Room.Number, res.Client.ID, res.CheckIn, res.CheckOut, res.Total)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := r.rooms.SetAvailableTx(ctx, tx, res.Room.Number, false); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	res.ID = id
	res.Room.Available = false
	return id, nil
}

// Cancel deletes a reservation and restores the room's availability
// flag in a single transaction.  It returns ErrReservationNotFound
// when the reservation does not exist, which also makes a second
// cancellation of the same ID fail without any state change.
func (r *ReservationRepo) Cancel(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var numero int
	const sel = `SELECT numero_habitacio FROM reserves WHERE id_reserva = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, sel, id).Scan(&numero)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}

	const del = `DELETE FROM reserves WHERE id_reserva = ?`
	if _, err := tx.ExecContext(ctx, del, id); err != nil {
		return err
	}
	if err := r.rooms.SetAvailableTx(ctx, tx, numero, true); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
