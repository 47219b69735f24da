package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestReservationService(
	resources *mockResourceRepository,
	reservations *mockReservationRepository,
	cache *mockAvailabilityCache,
	publisher *mockEventPublisher,
) *reservationService {
	svc := NewReservationService(resources, reservations, nil, nil, nil).(*reservationService)
	if cache != nil {
		svc.cache = cache
	}
	if publisher != nil {
		svc.publisher = publisher
	}
	svc.now = fixedClock
	return svc
}

func treadmill() *domain.Resource {
	return &domain.Resource{ID: "treadmill-1", Name: "Treadmill 1", Capacity: 1}
}

func TestReserveSuccess(t *testing.T) {
	var reserved *domain.Reservation
	var reservedCapacity int
	invalidated := ""
	published := false

	resources := &mockResourceRepository{
		getByIDFunc: func(_ context.Context, id string) (*domain.Resource, error) {
			assert.Equal(t, "treadmill-1", id)
			return treadmill(), nil
		},
	}
	reservations := &mockReservationRepository{
		reserveFunc: func(_ context.Context, r *domain.Reservation, capacity int) error {
			reserved = r
			reservedCapacity = capacity
			return nil
		},
	}
	cache := &mockAvailabilityCache{
		invalidateFunc: func(_ context.Context, resourceID string) { invalidated = resourceID },
	}
	publisher := &mockEventPublisher{
		confirmedFunc: func(_ context.Context, _ *domain.Reservation) error {
			published = true
			return nil
		},
	}

	svc := newTestReservationService(resources, reservations, cache, publisher)

	start := testNow.Add(24 * time.Hour)
	end := start.Add(time.Hour)
	result, err := svc.Reserve(context.Background(), "treadmill-1", "user-1", start, end)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "treadmill-1", result.ResourceID)
	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, domain.ReservationStatusConfirmed, result.Status)
	assert.Equal(t, reserved, result)
	assert.Equal(t, 1, reservedCapacity)
	assert.Equal(t, "treadmill-1", invalidated)
	assert.True(t, published)
}

func TestReserveInvalidIntervals(t *testing.T) {
	resources := &mockResourceRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Resource, error) {
			return treadmill(), nil
		},
	}
	reservations := &mockReservationRepository{
		reserveFunc: func(_ context.Context, _ *domain.Reservation, _ int) error {
			t.Fatal("repository must not be reached for invalid intervals")
			return nil
		},
	}
	svc := newTestReservationService(resources, reservations, nil, nil)

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"start equals end", testNow.Add(time.Hour), testNow.Add(time.Hour)},
		{"start after end", testNow.Add(2 * time.Hour), testNow.Add(time.Hour)},
		{"entirely in the past", testNow.Add(-2 * time.Hour), testNow.Add(-time.Hour)},
		{"ends exactly now", testNow.Add(-time.Hour), testNow},
		{"beyond booking window", testNow.Add(31 * 24 * time.Hour), testNow.Add(31*24*time.Hour + time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reserve(context.Background(), "treadmill-1", "user-1", tt.start, tt.end)
			assert.ErrorIs(t, err, domain.ErrInvalidInterval)
		})
	}
}

func TestReserveInProgressIntervalAllowed(t *testing.T) {
	resources := &mockResourceRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Resource, error) {
			return treadmill(), nil
		},
	}
	reservations := &mockReservationRepository{
		reserveFunc: func(_ context.Context, _ *domain.Reservation, _ int) error { return nil },
	}
	svc := newTestReservationService(resources, reservations, nil, nil)

	// Started half an hour ago but still running
	_, err := svc.Reserve(context.Background(), "treadmill-1", "user-1",
		testNow.Add(-30*time.Minute), testNow.Add(30*time.Minute))
	assert.NoError(t, err)
}

func TestReserveUnknownResource(t *testing.T) {
	resources := &mockResourceRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Resource, error) {
			return nil, domain.ErrResourceNotFound
		},
	}
	reservations := &mockReservationRepository{}
	svc := newTestReservationService(resources, reservations, nil, nil)

	_, err := svc.Reserve(context.Background(), "sauna-1", "user-1",
		testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestReserveConflictPassesThrough(t *testing.T) {
	invalidated := false
	resources := &mockResourceRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Resource, error) {
			return treadmill(), nil
		},
	}
	reservations := &mockReservationRepository{
		reserveFunc: func(_ context.Context, _ *domain.Reservation, _ int) error {
			return domain.ErrSlotConflict
		},
	}
	cache := &mockAvailabilityCache{
		invalidateFunc: func(_ context.Context, _ string) { invalidated = true },
	}
	svc := newTestReservationService(resources, reservations, cache, nil)

	_, err := svc.Reserve(context.Background(), "treadmill-1", "user-1",
		testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.False(t, invalidated, "failed reserve must not touch the cache")
}

func TestReservePublishFailureDoesNotFailReserve(t *testing.T) {
	resources := &mockResourceRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Resource, error) {
			return treadmill(), nil
		},
	}
	reservations := &mockReservationRepository{
		reserveFunc: func(_ context.Context, _ *domain.Reservation, _ int) error { return nil },
	}
	publisher := &mockEventPublisher{
		confirmedFunc: func(_ context.Context, _ *domain.Reservation) error {
			return assert.AnError
		},
	}
	svc := newTestReservationService(resources, reservations, nil, publisher)

	_, err := svc.Reserve(context.Background(), "treadmill-1", "user-1",
		testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	assert.NoError(t, err)
}

func TestCancelSuccess(t *testing.T) {
	existing := &domain.Reservation{
		ID:         "res-1",
		ResourceID: "treadmill-1",
		UserID:     "user-1",
		StartTime:  testNow.Add(time.Hour),
		EndTime:    testNow.Add(2 * time.Hour),
		Status:     domain.ReservationStatusConfirmed,
	}
	cancelledID := ""
	invalidated := ""
	published := false

	reservations := &mockReservationRepository{
		getByIDFunc: func(_ context.Context, id string) (*domain.Reservation, error) {
			return existing, nil
		},
		cancelFunc: func(_ context.Context, id string) (*domain.Reservation, error) {
			cancelledID = id
			copied := *existing
			copied.Cancel()
			return &copied, nil
		},
	}
	cache := &mockAvailabilityCache{
		invalidateFunc: func(_ context.Context, resourceID string) { invalidated = resourceID },
	}
	publisher := &mockEventPublisher{
		cancelledFunc: func(_ context.Context, r *domain.Reservation) error {
			published = true
			assert.True(t, r.IsCancelled())
			return nil
		},
	}
	svc := newTestReservationService(&mockResourceRepository{}, reservations, cache, publisher)

	err := svc.Cancel(context.Background(), "res-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "res-1", cancelledID)
	assert.Equal(t, "treadmill-1", invalidated)
	assert.True(t, published)
}

func TestCancelNotFound(t *testing.T) {
	reservations := &mockReservationRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Reservation, error) {
			return nil, domain.ErrReservationNotFound
		},
	}
	svc := newTestReservationService(&mockResourceRepository{}, reservations, nil, nil)

	err := svc.Cancel(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestCancelForbiddenForNonOwner(t *testing.T) {
	reservations := &mockReservationRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:         "res-1",
				ResourceID: "treadmill-1",
				UserID:     "user-1",
				Status:     domain.ReservationStatusConfirmed,
			}, nil
		},
		cancelFunc: func(_ context.Context, _ string) (*domain.Reservation, error) {
			t.Fatal("cancel must not be reached for a non-owner")
			return nil, nil
		},
	}
	svc := newTestReservationService(&mockResourceRepository{}, reservations, nil, nil)

	err := svc.Cancel(context.Background(), "res-1", "user-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancelAlreadyCancelledIsNoOp(t *testing.T) {
	cancelCalls := 0
	reservations := &mockReservationRepository{
		getByIDFunc: func(_ context.Context, _ string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:         "res-1",
				ResourceID: "treadmill-1",
				UserID:     "user-1",
				Status:     domain.ReservationStatusCancelled,
			}, nil
		},
		cancelFunc: func(_ context.Context, _ string) (*domain.Reservation, error) {
			cancelCalls++
			return nil, nil
		},
	}
	svc := newTestReservationService(&mockResourceRepository{}, reservations, nil, nil)

	err := svc.Cancel(context.Background(), "res-1", "user-1")
	assert.NoError(t, err)
	assert.Zero(t, cancelCalls)
}

func TestListUserReservationsClampsLimit(t *testing.T) {
	var gotLimit int
	reservations := &mockReservationRepository{
		listByUserFunc: func(_ context.Context, _ string, limit int) ([]*domain.Reservation, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := newTestReservationService(&mockResourceRepository{}, reservations, nil, nil)

	_, err := svc.ListUserReservations(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)

	_, err = svc.ListUserReservations(context.Background(), "user-1", 1000)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
}
