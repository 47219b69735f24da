package service

import (
	"context"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/repository"
)

// CalendarService derives slots and availability from the reservation store.
// Slots are pure projections: nothing here is persisted or mutated.
type CalendarService interface {
	// SlotsFor partitions the resource's operating window on the given day
	// into fixed-width slots with their current occupancy counts
	SlotsFor(ctx context.Context, resourceID string, date time.Time) ([]domain.Slot, error)

	// Availability maps SlotsFor through the resource capacity
	Availability(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, error)
}

// CalendarServiceConfig holds the shared operating window for all resources
type CalendarServiceConfig struct {
	OpenHour  int
	CloseHour int
	SlotWidth time.Duration
}

type calendarService struct {
	resources    repository.ResourceRepository
	reservations repository.ReservationRepository
	cache        repository.AvailabilityCache // optional
	cfg          CalendarServiceConfig
}

// NewCalendarService creates a new calendar service. cache may be nil.
func NewCalendarService(
	resources repository.ResourceRepository,
	reservations repository.ReservationRepository,
	cache repository.AvailabilityCache,
	cfg *CalendarServiceConfig,
) CalendarService {
	c := CalendarServiceConfig{OpenHour: 6, CloseHour: 22, SlotWidth: time.Hour}
	if cfg != nil {
		if cfg.CloseHour > cfg.OpenHour {
			c.OpenHour = cfg.OpenHour
			c.CloseHour = cfg.CloseHour
		}
		if cfg.SlotWidth > 0 {
			c.SlotWidth = cfg.SlotWidth
		}
	}
	return &calendarService{
		resources:    resources,
		reservations: reservations,
		cache:        cache,
		cfg:          c,
	}
}

// operatingWindow returns the bookable window for a calendar day, keeping the
// date's own location so offsets at the boundary survive intact
func (s *calendarService) operatingWindow(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	open := time.Date(year, month, day, s.cfg.OpenHour, 0, 0, 0, date.Location())
	close := time.Date(year, month, day, s.cfg.CloseHour, 0, 0, 0, date.Location())
	return open, close
}

// SlotsFor reads the reservation store at call time; occupancy is never cached
// here because this view feeds booking decisions
func (s *calendarService) SlotsFor(ctx context.Context, resourceID string, date time.Time) ([]domain.Slot, error) {
	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	open, close := s.operatingWindow(date)
	reservations, err := s.reservations.ListByResourceBetween(ctx, resourceID, open, close)
	if err != nil {
		return nil, err
	}

	var slots []domain.Slot
	for start := open; start.Add(s.cfg.SlotWidth).Compare(close) <= 0; start = start.Add(s.cfg.SlotWidth) {
		end := start.Add(s.cfg.SlotWidth)
		slots = append(slots, domain.Slot{
			StartTime:     start,
			EndTime:       end,
			OccupiedCount: domain.CountOverlapping(reservations, start, end),
		})
	}
	return slots, nil
}

// Availability is a display read, so a short-lived cached snapshot is
// acceptable; every successful commit invalidates the resource
func (s *calendarService) Availability(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, error) {
	resource, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, resourceID, date); ok {
			return cached, nil
		}
	}

	slots, err := s.SlotsFor(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AvailabilitySlot, len(slots))
	for i, slot := range slots {
		out[i] = domain.AvailabilitySlot{
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: slot.OccupiedCount < resource.Capacity,
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, resourceID, date, out)
	}
	return out, nil
}
