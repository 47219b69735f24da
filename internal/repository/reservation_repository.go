package repository

import (
	"context"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// ReservationRepository is the persistence boundary for reservations.
// Implementations must make Reserve atomic per resource: the capacity check
// and the insert happen under the same critical section, so two concurrent
// overlapping reserves on a capacity-1 resource can never both succeed.
type ReservationRepository interface {
	// Reserve atomically re-checks occupancy for the reservation's interval
	// against the given capacity and appends the reservation when it fits.
	// Returns domain.ErrSlotConflict when committing would push any instant
	// of the interval above capacity.
	Reserve(ctx context.Context, reservation *domain.Reservation, capacity int) error

	// GetByID retrieves a reservation by its ID
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)

	// Cancel marks a reservation cancelled and returns the updated record.
	// Cancelling an already-cancelled reservation is a successful no-op.
	Cancel(ctx context.Context, id string) (*domain.Reservation, error)

	// ListByResourceBetween returns all reservations (any status) for a
	// resource whose interval overlaps [from, to)
	ListByResourceBetween(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Reservation, error)

	// ListByUser returns a user's reservations, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error)
}
