package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sergiorey/hotel-reservation/internal/model"
	"github.com/sergiorey/hotel-reservation/internal/repository"
)

// RoomService handles room management.  It validates before
// persisting and refuses to delete a room that reservations still
// reference.  The availability flag is never written through this
// service; only the booking workflow drives it.
type RoomService struct {
	rooms        RoomStore
	reservations ReservationStore
	timeout      time.Duration
}

// NewRoomService constructs the service.
func NewRoomService(rooms RoomStore, reservations ReservationStore, timeout time.Duration) *RoomService {
	if rooms == nil || reservations == nil {
		panic("nil store passed to NewRoomService")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RoomService{rooms: rooms, reservations: reservations, timeout: timeout}
}

func validateRoom(tipus string, preuPerNit float64) error {
	if strings.TrimSpace(tipus) == "" {
		return fmt.Errorf("%w: room type is required", ErrValidation)
	}
	if preuPerNit <= 0 {
		return fmt.Errorf("%w: price per night must be positive", ErrValidation)
	}
	return nil
}

// Add creates a room with a caller-assigned number.  It fails with
// repository.ErrRoomExists when the number is taken and ErrValidation
// on an empty type or non-positive price.
func (s *RoomService) Add(ctx context.Context, numero int, tipus string, preuPerNit float64) (*model.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := validateRoom(tipus, preuPerNit); err != nil {
		return nil, err
	}
	room := &model.Room{Number: numero, Type: strings.TrimSpace(tipus), PricePerNight: preuPerNit}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Update rewrites a room's type and price.  The availability flag is
// left untouched.
func (s *RoomService) Update(ctx context.Context, numero int, tipus string, preuPerNit float64) (*model.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := validateRoom(tipus, preuPerNit); err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByNumber(ctx, numero)
	if err != nil {
		return nil, err
	}
	room.Type = strings.TrimSpace(tipus)
	room.PricePerNight = preuPerNit
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room.  Deletion is refused with
// repository.ErrHasReservations while any reservation references the
// room, matching the foreign key on reserves.
func (s *RoomService) Delete(ctx context.Context, numero int) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.rooms.GetByNumber(ctx, numero); err != nil {
		return err
	}
	n, err := s.reservations.CountForRoom(ctx, numero)
	if err != nil {
		return err
	}
	if n > 0 {
		return repository.ErrHasReservations
	}
	return s.rooms.Delete(ctx, numero)
}

// Get returns a room by number.
func (s *RoomService) Get(ctx context.Context, numero int) (*model.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.rooms.GetByNumber(ctx, numero)
}

// List returns all rooms.
func (s *RoomService) List(ctx context.Context) ([]model.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.rooms.List(ctx)
}

// ListAvailable returns the rooms currently open for booking.
func (s *RoomService) ListAvailable(ctx context.Context) ([]model.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.rooms.ListAvailable(ctx)
}
