package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiorey/hotel-reservation/internal/model"
	"github.com/sergiorey/hotel-reservation/internal/repository"
)

func newRoomFixture(t *testing.T) (*RoomService, *fakeStore) {
	t.Helper()
	f := newFakeStore()
	return NewRoomService(f, f, time.Second), f
}

func TestRoomAdd(t *testing.T) {
	svc, f := newRoomFixture(t)
	ctx := context.Background()

	room, err := svc.Add(ctx, 101, "doble", 100.0)
	require.NoError(t, err)
	assert.Equal(t, 101, room.Number)
	assert.True(t, room.Available, "new rooms start available")
	assert.Contains(t, f.rooms, 101)
}

func TestRoomAddValidation(t *testing.T) {
	svc, _ := newRoomFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 101, "  ", 100.0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, 101, "doble", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, 101, "doble", -10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRoomAddDuplicateNumber(t *testing.T) {
	svc, _ := newRoomFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 101, "doble", 100.0)
	require.NoError(t, err)

	_, err = svc.Add(ctx, 101, "suite", 250.0)
	assert.ErrorIs(t, err, repository.ErrRoomExists)
}

func TestRoomUpdateKeepsAvailability(t *testing.T) {
	svc, f := newRoomFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 101, "doble", 100.0)
	require.NoError(t, err)

	// Simulate a booking flipping the flag outside this service.
	room := f.rooms[101]
	room.Available = false
	f.rooms[101] = room

	updated, err := svc.Update(ctx, 101, "suite", 250.0)
	require.NoError(t, err)
	assert.Equal(t, "suite", updated.Type)
	assert.Equal(t, 250.0, updated.PricePerNight)
	assert.False(t, f.rooms[101].Available, "update must not touch availability")
}

func TestRoomUpdateUnknown(t *testing.T) {
	svc, _ := newRoomFixture(t)

	_, err := svc.Update(context.Background(), 999, "suite", 250.0)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestRoomDelete(t *testing.T) {
	svc, f := newRoomFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 101, "doble", 100.0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 101))
	assert.NotContains(t, f.rooms, 101)

	err = svc.Delete(ctx, 101)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestRoomDeleteWithReservations(t *testing.T) {
	svc, f := newRoomFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 101, "doble", 100.0)
	require.NoError(t, err)
	f.reservations[1] = model.Reservation{
		ID:   1,
		Room: model.Room{Number: 101},
	}

	err = svc.Delete(ctx, 101)
	assert.ErrorIs(t, err, repository.ErrHasReservations)
	assert.Contains(t, f.rooms, 101, "refused delete must leave the room")
}

func TestRoomListAvailable(t *testing.T) {
	svc, f := newRoomFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 101, "doble", 100.0)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 102, "suite", 250.0)
	require.NoError(t, err)

	room := f.rooms[101]
	room.Available = false
	f.rooms[101] = room

	available, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, 102, available[0].Number)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
