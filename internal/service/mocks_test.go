package service

import (
	"context"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

type mockResourceRepository struct {
	listFunc    func(ctx context.Context) ([]*domain.Resource, error)
	getByIDFunc func(ctx context.Context, id string) (*domain.Resource, error)
}

func (m *mockResourceRepository) List(ctx context.Context) ([]*domain.Resource, error) {
	return m.listFunc(ctx)
}

func (m *mockResourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return m.getByIDFunc(ctx, id)
}

type mockReservationRepository struct {
	reserveFunc               func(ctx context.Context, reservation *domain.Reservation, capacity int) error
	getByIDFunc               func(ctx context.Context, id string) (*domain.Reservation, error)
	cancelFunc                func(ctx context.Context, id string) (*domain.Reservation, error)
	listByResourceBetweenFunc func(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Reservation, error)
	listByUserFunc            func(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error)
}

func (m *mockReservationRepository) Reserve(ctx context.Context, reservation *domain.Reservation, capacity int) error {
	return m.reserveFunc(ctx, reservation, capacity)
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockReservationRepository) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	return m.cancelFunc(ctx, id)
}

func (m *mockReservationRepository) ListByResourceBetween(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Reservation, error) {
	return m.listByResourceBetweenFunc(ctx, resourceID, from, to)
}

func (m *mockReservationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error) {
	return m.listByUserFunc(ctx, userID, limit)
}

type mockAvailabilityCache struct {
	getFunc        func(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, bool)
	setFunc        func(ctx context.Context, resourceID string, date time.Time, slots []domain.AvailabilitySlot)
	invalidateFunc func(ctx context.Context, resourceID string)
}

func (m *mockAvailabilityCache) Get(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, bool) {
	if m.getFunc == nil {
		return nil, false
	}
	return m.getFunc(ctx, resourceID, date)
}

func (m *mockAvailabilityCache) Set(ctx context.Context, resourceID string, date time.Time, slots []domain.AvailabilitySlot) {
	if m.setFunc != nil {
		m.setFunc(ctx, resourceID, date, slots)
	}
}

func (m *mockAvailabilityCache) Invalidate(ctx context.Context, resourceID string) {
	if m.invalidateFunc != nil {
		m.invalidateFunc(ctx, resourceID)
	}
}

type mockEventPublisher struct {
	confirmedFunc func(ctx context.Context, reservation *domain.Reservation) error
	cancelledFunc func(ctx context.Context, reservation *domain.Reservation) error
}

func (m *mockEventPublisher) PublishReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error {
	if m.confirmedFunc == nil {
		return nil
	}
	return m.confirmedFunc(ctx, reservation)
}

func (m *mockEventPublisher) PublishReservationCancelled(ctx context.Context, reservation *domain.Reservation) error {
	if m.cancelledFunc == nil {
		return nil
	}
	return m.cancelledFunc(ctx, reservation)
}

func (m *mockEventPublisher) Close() error { return nil }
