package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// MemoryReservationRepository implements ReservationRepository with in-memory
// storage. Used for tests and for running without a database.
//
// Reserve serializes per resource: a keyed mutex guards the occupancy
// re-check and the append, while reads only take the store's RWMutex and
// never block commits on other resources.
type MemoryReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]*domain.Reservation
	byResource   map[string][]string // resourceID -> reservation IDs
	byUser       map[string][]string // userID -> reservation IDs

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex // resourceID -> commit lock
}

// NewMemoryReservationRepository creates a new in-memory reservation repository
func NewMemoryReservationRepository() *MemoryReservationRepository {
	return &MemoryReservationRepository{
		reservations: make(map[string]*domain.Reservation),
		byResource:   make(map[string][]string),
		byUser:       make(map[string][]string),
		locks:        make(map[string]*sync.Mutex),
	}
}

func (r *MemoryReservationRepository) lockFor(resourceID string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.locks[resourceID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[resourceID] = l
	}
	return l
}

// Reserve atomically checks occupancy and appends the reservation
func (r *MemoryReservationRepository) Reserve(ctx context.Context, reservation *domain.Reservation, capacity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	commitLock := r.lockFor(reservation.ResourceID)
	commitLock.Lock()
	defer commitLock.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.overlappingLocked(reservation.ResourceID, reservation.StartTime, reservation.EndTime)
	if domain.MaxOccupancy(existing, reservation.StartTime, reservation.EndTime)+1 > capacity {
		return domain.ErrSlotConflict
	}

	stored := *reservation
	r.reservations[stored.ID] = &stored
	r.byResource[stored.ResourceID] = append(r.byResource[stored.ResourceID], stored.ID)
	r.byUser[stored.UserID] = append(r.byUser[stored.UserID], stored.ID)
	return nil
}

// overlappingLocked returns confirmed reservations overlapping the interval.
// Caller must hold at least a read lock on mu.
func (r *MemoryReservationRepository) overlappingLocked(resourceID string, start, end time.Time) []*domain.Reservation {
	var out []*domain.Reservation
	for _, id := range r.byResource[resourceID] {
		res := r.reservations[id]
		if res.IsConfirmed() && res.Overlaps(start, end) {
			out = append(out, res)
		}
	}
	return out
}

// GetByID retrieves a reservation by its ID
func (r *MemoryReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}

	copied := *res
	return &copied, nil
}

// Cancel marks a reservation cancelled
func (r *MemoryReservationRepository) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}

	res.Cancel()
	copied := *res
	return &copied, nil
}

// ListByResourceBetween returns reservations overlapping [from, to) for a resource
func (r *MemoryReservationRepository) ListByResourceBetween(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Reservation
	for _, id := range r.byResource[resourceID] {
		res := r.reservations[id]
		if res.Overlaps(from, to) {
			copied := *res
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// ListByUser returns a user's reservations, newest first
func (r *MemoryReservationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Reservation
	for _, id := range r.byUser[userID] {
		copied := *r.reservations[id]
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
