package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sergiorey/hotel-reservation/internal/model"
	"github.com/sergiorey/hotel-reservation/internal/repository"
)

// ClientService handles client management with field validation.
type ClientService struct {
	clients      ClientStore
	reservations ReservationStore
	timeout      time.Duration
}

// NewClientService constructs the service.
func NewClientService(clients ClientStore, reservations ReservationStore, timeout time.Duration) *ClientService {
	if clients == nil || reservations == nil {
		panic("nil store passed to NewClientService")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ClientService{clients: clients, reservations: reservations, timeout: timeout}
}

func validateClient(c *model.Client) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrValidation)
	}
	if c.BirthDate.IsZero() {
		return fmt.Errorf("%w: birth date is required", ErrValidation)
	}
	if email := strings.TrimSpace(c.Email); email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email must be a valid address", ErrValidation)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	return nil
}

// Add creates a client and returns it with the generated ID.
func (s *ClientService) Add(ctx context.Context, c model.Client) (*model.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := validateClient(&c); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update rewrites a client's fields after validation.
func (s *ClientService) Update(ctx context.Context, c model.Client) (*model.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.clients.GetByID(ctx, c.ID); err != nil {
		return nil, err
	}
	if err := validateClient(&c); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a client.  Deletion is refused with
// repository.ErrHasReservations while any reservation references the
// client, matching the foreign key on reserves.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.reservations.CountForClient(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return repository.ErrHasReservations
	}
	return s.clients.Delete(ctx, id)
}

// Get returns a client by ID.
func (s *ClientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.clients.GetByID(ctx, id)
}

// List returns all clients.
func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.clients.List(ctx)
}
