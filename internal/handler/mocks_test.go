package handler

import (
	"context"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

type mockCatalogService struct {
	listFunc func(ctx context.Context) ([]*domain.Resource, error)
	getFunc  func(ctx context.Context, id string) (*domain.Resource, error)
}

func (m *mockCatalogService) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	return m.listFunc(ctx)
}

func (m *mockCatalogService) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	return m.getFunc(ctx, id)
}

type mockCalendarService struct {
	slotsForFunc     func(ctx context.Context, resourceID string, date time.Time) ([]domain.Slot, error)
	availabilityFunc func(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, error)
}

func (m *mockCalendarService) SlotsFor(ctx context.Context, resourceID string, date time.Time) ([]domain.Slot, error) {
	return m.slotsForFunc(ctx, resourceID, date)
}

func (m *mockCalendarService) Availability(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, error) {
	return m.availabilityFunc(ctx, resourceID, date)
}

type mockReservationService struct {
	reserveFunc func(ctx context.Context, resourceID, userID string, start, end time.Time) (*domain.Reservation, error)
	cancelFunc  func(ctx context.Context, reservationID, userID string) error
	getFunc     func(ctx context.Context, reservationID string) (*domain.Reservation, error)
	listFunc    func(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error)
}

func (m *mockReservationService) Reserve(ctx context.Context, resourceID, userID string, start, end time.Time) (*domain.Reservation, error) {
	return m.reserveFunc(ctx, resourceID, userID, start, end)
}

func (m *mockReservationService) Cancel(ctx context.Context, reservationID, userID string) error {
	return m.cancelFunc(ctx, reservationID, userID)
}

func (m *mockReservationService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return m.getFunc(ctx, reservationID)
}

func (m *mockReservationService) ListUserReservations(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error) {
	return m.listFunc(ctx, userID, limit)
}

type mockSuggestionService struct {
	suggestFunc func(ctx context.Context, userID string) ([]domain.Suggestion, error)
}

func (m *mockSuggestionService) Suggest(ctx context.Context, userID string) ([]domain.Suggestion, error) {
	return m.suggestFunc(ctx, userID)
}
