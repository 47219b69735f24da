package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/metrics"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/repository"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/logger"
)

// ReservationService is the only write path to reservations. It validates
// requests, delegates the atomic capacity check to the repository and owns the
// cache invalidation and event publication that follow a successful commit.
type ReservationService interface {
	// Reserve books [start, end) on a resource for a user. Fails with
	// domain.ErrInvalidInterval, domain.ErrResourceNotFound or
	// domain.ErrSlotConflict; conflicts are reported synchronously and never
	// retried here, picking another slot is the caller's job.
	Reserve(ctx context.Context, resourceID, userID string, start, end time.Time) (*domain.Reservation, error)

	// Cancel marks a reservation cancelled. domain.ErrReservationNotFound
	// for unknown ids, domain.ErrForbidden when userID is not the owner,
	// success no-op when already cancelled.
	Cancel(ctx context.Context, reservationID, userID string) error

	// GetReservation retrieves a reservation by id
	GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// ListUserReservations returns a user's booking history, newest first
	ListUserReservations(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error)
}

// ReservationServiceConfig contains configuration for the reservation engine
type ReservationServiceConfig struct {
	// MaxAdvance bounds how far into the future a reservation may start
	MaxAdvance time.Duration
}

type reservationService struct {
	resources    repository.ResourceRepository
	reservations repository.ReservationRepository
	cache        repository.AvailabilityCache // optional
	publisher    EventPublisher               // optional
	maxAdvance   time.Duration
	now          func() time.Time
}

// NewReservationService creates a new reservation service. cache and
// publisher may be nil.
func NewReservationService(
	resources repository.ResourceRepository,
	reservations repository.ReservationRepository,
	cache repository.AvailabilityCache,
	publisher EventPublisher,
	cfg *ReservationServiceConfig,
) ReservationService {
	maxAdvance := 30 * 24 * time.Hour
	if cfg != nil && cfg.MaxAdvance > 0 {
		maxAdvance = cfg.MaxAdvance
	}
	return &reservationService{
		resources:    resources,
		reservations: reservations,
		cache:        cache,
		publisher:    publisher,
		maxAdvance:   maxAdvance,
		now:          time.Now,
	}
}

// Reserve validates and commits a reservation
func (s *reservationService) Reserve(ctx context.Context, resourceID, userID string, start, end time.Time) (*domain.Reservation, error) {
	began := s.now()

	if err := s.validateInterval(start, end); err != nil {
		metrics.ReservationsRejected.Inc(ctx)
		return nil, err
	}

	resource, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		metrics.ReservationsRejected.Inc(ctx)
		return nil, err
	}

	now := s.now()
	reservation := &domain.Reservation{
		ID:         uuid.New().String(),
		ResourceID: resource.ID,
		UserID:     userID,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.ReservationStatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := reservation.Validate(); err != nil {
		metrics.ReservationsRejected.Inc(ctx)
		return nil, err
	}

	// The repository re-checks occupancy against the committed state under
	// per-resource serialization; an earlier availability read is never
	// trusted here.
	if err := s.reservations.Reserve(ctx, reservation, resource.Capacity); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			metrics.ReservationConflicts.Inc(ctx)
		}
		return nil, err
	}

	s.afterCommit(ctx, reservation, domain.ReservationEventConfirmed)
	metrics.ReservationsCreated.Inc(ctx)
	metrics.ReserveDuration.Record(ctx, s.now().Sub(began).Seconds())
	return reservation, nil
}

// Cancel marks a reservation cancelled and frees its capacity
func (s *reservationService) Cancel(ctx context.Context, reservationID, userID string) error {
	existing, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	if !existing.BelongsToUser(userID) {
		return domain.ErrForbidden
	}

	if existing.IsCancelled() {
		return nil
	}

	cancelled, err := s.reservations.Cancel(ctx, reservationID)
	if err != nil {
		return err
	}

	s.afterCommit(ctx, cancelled, domain.ReservationEventCancelled)
	metrics.ReservationsCancelled.Inc(ctx)
	return nil
}

// GetReservation retrieves a reservation by id
func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, reservationID)
}

// ListUserReservations returns a user's booking history, newest first
func (s *reservationService) ListUserReservations(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.reservations.ListByUser(ctx, userID, limit)
}

// validateInterval enforces ordering and the permitted booking window
func (s *reservationService) validateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return domain.ErrInvalidInterval
	}

	now := s.now()
	// A reservation already in progress is fine; one entirely in the past is not
	if !end.After(now) {
		return domain.ErrInvalidInterval
	}
	if start.After(now.Add(s.maxAdvance)) {
		return domain.ErrInvalidInterval
	}
	return nil
}

// afterCommit invalidates cached availability for the resource and publishes
// the lifecycle event. Both are best-effort side effects of an already
// durable commit.
func (s *reservationService) afterCommit(ctx context.Context, reservation *domain.Reservation, eventType domain.ReservationEventType) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, reservation.ResourceID)
	}

	if s.publisher == nil {
		return
	}

	var err error
	switch eventType {
	case domain.ReservationEventCancelled:
		err = s.publisher.PublishReservationCancelled(ctx, reservation)
	default:
		err = s.publisher.PublishReservationConfirmed(ctx, reservation)
	}
	if err != nil {
		logger.Get().Warn("failed to publish reservation event",
			zap.String("reservation_id", reservation.ID),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
	}
}
