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

func validTestClient() model.Client {
	return model.Client{
		FirstName: "Anna",
		LastName:  "Serra",
		BirthDate: day("1990-04-15"),
		Email:     "anna@example.com",
		Phone:     "600123456",
	}
}

func newClientFixture(t *testing.T) (*ClientService, *fakeStore) {
	t.Helper()
	f := newFakeStore()
	return NewClientService(clientStore{f}, f, time.Second), f
}

func TestClientAdd(t *testing.T) {
	svc, f := newClientFixture(t)

	c, err := svc.Add(context.Background(), validTestClient())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Contains(t, f.clients, c.ID)
}

func TestClientAddValidation(t *testing.T) {
	svc, _ := newClientFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.Client)
	}{
		{"empty first name", func(c *model.Client) { c.FirstName = " " }},
		{"empty last name", func(c *model.Client) { c.LastName = "" }},
		{"zero birth date", func(c *model.Client) { c.BirthDate = time.Time{} }},
		{"empty email", func(c *model.Client) { c.Email = "" }},
		{"malformed email", func(c *model.Client) { c.Email = "not-an-address" }},
		{"empty phone", func(c *model.Client) { c.Phone = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validTestClient()
			tc.mutate(&c)
			_, err := svc.Add(ctx, c)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestClientAddDuplicateEmail(t *testing.T) {
	svc, _ := newClientFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, validTestClient())
	require.NoError(t, err)

	dup := validTestClient()
	dup.Phone = "600999999"
	_, err = svc.Add(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestClientUpdate(t *testing.T) {
	svc, _ := newClientFixture(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, validTestClient())
	require.NoError(t, err)

	created.Phone = "600765432"
	updated, err := svc.Update(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, "600765432", updated.Phone)

	missing := validTestClient()
	missing.ID = 999
	_, err = svc.Update(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrClientNotFound)
}

func TestClientDelete(t *testing.T) {
	svc, f := newClientFixture(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, validTestClient())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.NotContains(t, f.clients, created.ID)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrClientNotFound)
}

func TestClientDeleteWithReservations(t *testing.T) {
	svc, f := newClientFixture(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, validTestClient())
	require.NoError(t, err)
	f.reservations[1] = model.Reservation{
		ID:     1,
		Client: model.Client{ID: created.ID},
	}

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrHasReservations)
	assert.Contains(t, f.clients, created.ID)
}
