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

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeStore backs all three store interfaces with in-memory maps and
// mirrors the transactional semantics of the real repositories: Book
// re-checks availability and overlap, then inserts and flips the room
// in one step; Cancel deletes and flips it back.
type fakeStore struct {
	rooms        map[int]model.Room
	clients      map[int64]model.Client
	reservations map[int64]model.Reservation
	nextID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:        make(map[int]model.Room),
		clients:      make(map[int64]model.Client),
		reservations: make(map[int64]model.Reservation),
		nextID:       1,
	}
}

func (f *fakeStore) GetByNumber(_ context.Context, numero int) (*model.Room, error) {
	r, ok := f.rooms[numero]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &r, nil
}

func (f *fakeStore) List(_ context.Context) ([]model.Room, error) {
	out := make([]model.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) ListAvailable(_ context.Context) ([]model.Room, error) {
	var out []model.Room
	for _, r := range f.rooms {
		if r.Available {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, room *model.Room) error {
	if _, ok := f.rooms[room.Number]; ok {
		return repository.ErrRoomExists
	}
	room.Available = true
	f.rooms[room.Number] = *room
	return nil
}

func (f *fakeStore) Update(_ context.Context, room *model.Room) error {
	cur, ok := f.rooms[room.Number]
	if !ok {
		return repository.ErrRoomNotFound
	}
	cur.Type = room.Type
	cur.PricePerNight = room.PricePerNight
	f.rooms[room.Number] = cur
	return nil
}

func (f *fakeStore) Delete(_ context.Context, numero int) error {
	if _, ok := f.rooms[numero]; !ok {
		return repository.ErrRoomNotFound
	}
	delete(f.rooms, numero)
	return nil
}

// clientStore wraps fakeStore so the ClientStore methods whose names
// collide with RoomStore (List, Create, Update, Delete) can coexist.
type clientStore struct{ f *fakeStore }

func (c clientStore) GetByID(_ context.Context, id int64) (*model.Client, error) {
	cl, ok := c.f.clients[id]
	if !ok {
		return nil, repository.ErrClientNotFound
	}
	return &cl, nil
}

func (c clientStore) List(_ context.Context) ([]model.Client, error) {
	out := make([]model.Client, 0, len(c.f.clients))
	for _, cl := range c.f.clients {
		out = append(out, cl)
	}
	return out, nil
}

func (c clientStore) Create(_ context.Context, cl *model.Client) error {
	for _, existing := range c.f.clients {
		if existing.Email == cl.Email {
			return repository.ErrEmailExists
		}
	}
	cl.ID = c.f.nextID
	c.f.nextID++
	c.f.clients[cl.ID] = *cl
	return nil
}

func (c clientStore) Update(_ context.Context, cl *model.Client) error {
	if _, ok := c.f.clients[cl.ID]; !ok {
		return repository.ErrClientNotFound
	}
	c.f.clients[cl.ID] = *cl
	return nil
}

func (c clientStore) Delete(_ context.Context, id int64) error {
	if _, ok := c.f.clients[id]; !ok {
		return repository.ErrClientNotFound
	}
	delete(c.f.clients, id)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (f *fakeStore) ListActive(_ context.Context) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0, len(f.reservations))
	for _, r := range f.reservations {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) ListByClient(_ context.Context, clientID int64) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.Client.ID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) HasOverlap(_ context.Context, numero int, checkIn, checkOut time.Time) (bool, error) {
	for _, r := range f.reservations {
		if r.Room.Number == numero && model.Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountForRoom(_ context.Context, numero int) (int, error) {
	n := 0
	for _, r := range f.reservations {
		if r.Room.Number == numero {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountForClient(_ context.Context, clientID int64) (int, error) {
	n := 0
	for _, r := range f.reservations {
		if r.Client.ID == clientID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Book(ctx context.Context, res *model.Reservation) (int64, error) {
	room, ok := f.rooms[res.Room.Number]
	if !ok {
		return 0, repository.ErrRoomNotFound
	}
	if !room.Available {
		return 0, repository.ErrRoomUnavailable
	}
	if conflict, _ := f.HasOverlap(ctx, res.Room.Number, res.CheckIn, res.CheckOut); conflict {
		return 0, repository.ErrDateConflict
	}
	res.ID = f.nextID
	f.nextID++
	room.Available = false
	f.rooms[room.Number] = room
	res.Room.Available = false
	f.reservations[res.ID] = *res
	return res.ID, nil
}

func (f *fakeStore) Cancel(_ context.Context, id int64) error {
	res, ok := f.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	delete(f.reservations, id)
	room, ok := f.rooms[res.Room.Number]
	if ok {
		room.Available = true
		f.rooms[room.Number] = room
	}
	return nil
}

func newBookingFixture(t *testing.T) (*ReservationService, *fakeStore) {
	t.Helper()
	f := newFakeStore()
	f.rooms[101] = model.Room{Number: 101, Type: "doble", PricePerNight: 100.0, Available: true}
	f.rooms[102] = model.Room{Number: 102, Type: "suite", PricePerNight: 250.0, Available: true}
	f.clients[7] = model.Client{ID: 7, FirstName: "Anna", LastName: "Serra", Email: "anna@example.com"}
	f.nextID = 10

	svc := NewReservationService(f, clientStore{f}, f, time.Second)
	svc.now = func() time.Time { return day("2026-09-01") }
	return svc, f
}

func TestBookRoomSuccess(t *testing.T) {
	svc, f := newBookingFixture(t)
	ctx := context.Background()

	id, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)
	require.NotZero(t, id)

	res, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 300.0, res.Total, "3 nights at 100.0")
	assert.Equal(t, 101, res.Room.Number)
	assert.Equal(t, int64(7), res.Client.ID)
	assert.False(t, f.rooms[101].Available, "booked room must be flagged unavailable")
}

func TestBookRoomUnknownRoom(t *testing.T) {
	svc, _ := newBookingFixture(t)

	_, err := svc.BookRoom(context.Background(), 999, 7, day("2026-09-10"), day("2026-09-13"))
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestBookRoomUnknownClient(t *testing.T) {
	svc, _ := newBookingFixture(t)

	_, err := svc.BookRoom(context.Background(), 101, 999, day("2026-09-10"), day("2026-09-13"))
	assert.ErrorIs(t, err, repository.ErrClientNotFound)
}

func TestBookRoomInvalidDates(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		in, out time.Time
	}{
		{"zero check-in", time.Time{}, day("2026-09-13")},
		{"zero check-out", day("2026-09-10"), time.Time{}},
		{"inverted", day("2026-09-13"), day("2026-09-10")},
		{"equal", day("2026-09-10"), day("2026-09-10")},
		{"past check-in", day("2026-08-20"), day("2026-09-13")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BookRoom(ctx, 101, 7, tc.in, tc.out)
			assert.ErrorIs(t, err, ErrInvalidDateRange)
		})
	}
}

func TestBookRoomSameDayCheckInAccepted(t *testing.T) {
	svc, _ := newBookingFixture(t)

	_, err := svc.BookRoom(context.Background(), 101, 7, day("2026-09-01"), day("2026-09-02"))
	assert.NoError(t, err)
}

func TestBookRoomUnavailable(t *testing.T) {
	svc, f := newBookingFixture(t)
	room := f.rooms[101]
	room.Available = false
	f.rooms[101] = room

	_, err := svc.BookRoom(context.Background(), 101, 7, day("2026-09-10"), day("2026-09-13"))
	assert.ErrorIs(t, err, repository.ErrRoomUnavailable)
}

func TestBookRoomDateConflict(t *testing.T) {
	svc, f := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)

	// Force the coarse gate open so the overlap check itself is hit.
	room := f.rooms[101]
	room.Available = true
	f.rooms[101] = room

	cases := []struct {
		name    string
		in, out string
	}{
		{"identical", "2026-09-10", "2026-09-13"},
		{"subset", "2026-09-11", "2026-09-12"},
		{"superset", "2026-09-09", "2026-09-14"},
		{"partial front", "2026-09-08", "2026-09-11"},
		{"partial back", "2026-09-12", "2026-09-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BookRoom(ctx, 101, 7, day(tc.in), day(tc.out))
			assert.ErrorIs(t, err, repository.ErrDateConflict)
		})
	}
}

func TestBookRoomAdjoiningStaysAccepted(t *testing.T) {
	svc, f := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)

	room := f.rooms[101]
	room.Available = true
	f.rooms[101] = room

	// Check-in on the previous stay's check-out day is not an overlap.
	_, err = svc.BookRoom(ctx, 101, 7, day("2026-09-13"), day("2026-09-15"))
	assert.NoError(t, err)
}

func TestCancelReservationRestoresAvailability(t *testing.T) {
	svc, f := newBookingFixture(t)
	ctx := context.Background()

	id, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)
	require.False(t, f.rooms[101].Available)

	require.NoError(t, svc.CancelReservation(ctx, id))
	assert.True(t, f.rooms[101].Available, "cancel must restore availability")

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrReservationNotFound)
}

func TestCancelReservationTwice(t *testing.T) {
	svc, f := newBookingFixture(t)
	ctx := context.Background()

	id, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)
	require.NoError(t, svc.CancelReservation(ctx, id))

	err = svc.CancelReservation(ctx, id)
	assert.ErrorIs(t, err, repository.ErrReservationNotFound)
	assert.True(t, f.rooms[101].Available, "second cancel must not change state")
}

func TestBookAfterCancelSucceeds(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	id, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)
	require.NoError(t, svc.CancelReservation(ctx, id))

	id2, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestListForClient(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.BookRoom(ctx, 101, 7, day("2026-09-10"), day("2026-09-13"))
	require.NoError(t, err)
	_, err = svc.BookRoom(ctx, 102, 7, day("2026-09-20"), day("2026-09-22"))
	require.NoError(t, err)

	items, err := svc.ListForClient(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.ListForClient(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrClientNotFound)
}
