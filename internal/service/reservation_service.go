package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sergiorey/hotel-reservation/internal/model"
	"github.com/sergiorey/hotel-reservation/internal/repository"
)

// RoomStore is the slice of room persistence the services depend on.
// *repository.RoomRepo satisfies it; tests supply fakes.
type RoomStore interface {
	GetByNumber(ctx context.Context, numero int) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	ListAvailable(ctx context.Context) ([]model.Room, error)
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, numero int) error
}

// ClientStore is the slice of client persistence the services depend on.
type ClientStore interface {
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id int64) error
}

// ReservationStore is the persistence contract for reservations.
// Book and Cancel are transactional units: each performs its insert
// or delete together with the room availability flip atomically, and
// Book re-validates availability and overlap under a per-room lock.
type ReservationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	ListActive(ctx context.Context) ([]model.Reservation, error)
	ListByClient(ctx context.Context, clientID int64) ([]model.Reservation, error)
	HasOverlap(ctx context.Context, numero int, checkIn, checkOut time.Time) (bool, error)
	CountForRoom(ctx context.Context, numero int) (int, error)
	CountForClient(ctx context.Context, clientID int64) (int, error)
	Book(ctx context.Context, res *model.Reservation) (int64, error)
	Cancel(ctx context.Context, id int64) error
}

// ReservationService orchestrates the booking protocol.  Every
// precondition is checked before any write; the store then re-checks
// the racy ones (availability, overlap) inside its transaction.  All
// persistence calls run under a bounded timeout.
type ReservationService struct {
	rooms        RoomStore
	clients      ClientStore
	reservations ReservationStore
	timeout      time.Duration
	now          func() time.Time
}

// NewReservationService constructs the service.  A non-positive
// timeout falls back to five seconds.
func NewReservationService(rooms RoomStore, clients ClientStore, reservations ReservationStore, timeout time.Duration) *ReservationService {
	if rooms == nil || clients == nil || reservations == nil {
		panic("nil store passed to NewReservationService")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ReservationService{
		rooms:        rooms,
		clients:      clients,
		reservations: reservations,
		timeout:      timeout,
		now:          time.Now,
	}
}

// BookRoom books a room for a client over the half-open interval
// [checkIn, checkOut) and returns the new reservation's ID.
//
// Rejections, in order: repository.ErrRoomNotFound,
// repository.ErrClientNotFound, ErrInvalidDateRange (missing dates,
// checkIn >= checkOut, checkIn before today),
// repository.ErrRoomUnavailable (the coarse per-room gate),
// repository.ErrDateConflict (overlap with an existing stay).  The
// total is computed once at construction: nights * price per night.
func (s *ReservationService) BookRoom(ctx context.Context, roomNumber int, clientID int64, checkIn, checkOut time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	room, err := s.rooms.GetByNumber(ctx, roomNumber)
	if err != nil {
		return 0, err
	}
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return 0, err
	}

	if checkIn.IsZero() || checkOut.IsZero() {
		return 0, fmt.Errorf("%w: check-in and check-out are required", ErrInvalidDateRange)
	}
	if !checkIn.Before(checkOut) {
		return 0, fmt.Errorf("%w: check-in must precede check-out", ErrInvalidDateRange)
	}
	if checkIn.Before(s.today()) {
		return 0, fmt.Errorf("%w: check-in must not be in the past", ErrInvalidDateRange)
	}

	if !room.Available {
		return 0, repository.ErrRoomUnavailable
	}
	conflict, err := s.reservations.HasOverlap(ctx, roomNumber, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	if conflict {
		return 0, repository.ErrDateConflict
	}

	res := model.NewReservation(*room, *client, checkIn, checkOut)
	return s.reservations.Book(ctx, &res)
}

// CancelReservation deletes a reservation and restores the room's
// availability.  A second cancellation of the same ID fails with
// repository.ErrReservationNotFound and changes nothing.
func (s *ReservationService) CancelReservation(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.reservations.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reservations.Cancel(ctx, id)
}

// Get returns a single reservation with its room and client snapshots.
func (s *ReservationService) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.reservations.GetByID(ctx, id)
}

// ListActive returns reservations whose check-out date is on or after
// today, ordered by check-in ascending.
func (s *ReservationService) ListActive(ctx context.Context) ([]model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.reservations.ListActive(ctx)
}

// ListForClient returns a client's reservations ordered by check-in
// ascending, failing with repository.ErrClientNotFound when the
// client does not exist.
func (s *ReservationService) ListForClient(ctx context.Context, clientID int64) ([]model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.reservations.ListByClient(ctx, clientID)
}

// today returns the current date at midnight UTC, so a check-in on
// the current day is accepted.
func (s *ReservationService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
