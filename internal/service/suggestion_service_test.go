package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/repository"
)

type suggestionFixture struct {
	resources    *repository.MemoryResourceRepository
	reservations *repository.MemoryReservationRepository
	svc          *suggestionService
}

func newSuggestionFixture(t *testing.T, catalog []*domain.Resource, calendarCfg *CalendarServiceConfig, cfg *SuggestionServiceConfig) *suggestionFixture {
	t.Helper()
	resources := repository.NewMemoryResourceRepository(catalog)
	reservations := repository.NewMemoryReservationRepository()
	calendar := NewCalendarService(resources, reservations, nil, calendarCfg)
	svc := NewSuggestionService(resources, reservations, calendar, cfg).(*suggestionService)
	svc.now = fixedClock
	return &suggestionFixture{resources: resources, reservations: reservations, svc: svc}
}

func addHistory(t *testing.T, repo *repository.MemoryReservationRepository, userID, resourceID string, start, end time.Time, capacity int) {
	t.Helper()
	err := repo.Reserve(context.Background(), &domain.Reservation{
		ID:         fmt.Sprintf("hist-%s-%d", resourceID, start.Unix()),
		ResourceID: resourceID,
		UserID:     userID,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.ReservationStatusConfirmed,
	}, capacity)
	require.NoError(t, err)
}

func TestSuggestPrefersHistoricalResourceAndTime(t *testing.T) {
	catalog := []*domain.Resource{
		{ID: "treadmill-1", Name: "Treadmill 1", Capacity: 1},
		{ID: "weights-1", Name: "Weights Area", Capacity: 4},
	}
	f := newSuggestionFixture(t, catalog, nil, &SuggestionServiceConfig{TopK: 10})

	// Five past 07:00-08:00 sessions, all on treadmill-1
	for day := 1; day <= 5; day++ {
		start := time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC).AddDate(0, 0, -day)
		addHistory(t, f.reservations, "user-1", "treadmill-1", start, start.Add(time.Hour), 1)
	}

	suggestions, err := f.svc.Suggest(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	best := suggestions[0]
	assert.Equal(t, "treadmill-1", best.ResourceID)
	assert.Equal(t, 7, best.StartTime.Hour())
	assert.Contains(t,
		[]domain.ReasonCode{domain.ReasonPreferredResource, domain.ReasonPreferredTimeOfDay},
		best.ReasonCode)

	// Every treadmill-1 candidate outranks every weights-1 candidate
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
		if suggestions[i].ResourceID == "treadmill-1" {
			assert.NotEqual(t, "weights-1", suggestions[i-1].ResourceID,
				"preferred resource must not rank below an unvisited one")
		}
	}
}

func TestSuggestSkipsPastAndFullSlots(t *testing.T) {
	catalog := []*domain.Resource{{ID: "studio-1", Name: "Studio", Capacity: 1}}
	f := newSuggestionFixture(t, catalog,
		&CalendarServiceConfig{OpenHour: 6, CloseHour: 9, SlotWidth: time.Hour},
		&SuggestionServiceConfig{LookaheadDays: 1, TopK: 20})

	// fixedClock is 12:00, so every slot of day zero is already past
	suggestions, err := f.svc.Suggest(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestEmptyWhenNothingFree(t *testing.T) {
	catalog := []*domain.Resource{{ID: "studio-1", Name: "Studio", Capacity: 1}}
	f := newSuggestionFixture(t, catalog,
		&CalendarServiceConfig{OpenHour: 6, CloseHour: 8, SlotWidth: time.Hour},
		&SuggestionServiceConfig{LookaheadDays: 2, TopK: 20})

	// Book out every slot of the lookahead window with another user
	for day := 0; day <= 2; day++ {
		for hour := 6; hour < 8; hour++ {
			start := time.Date(2026, 9, 1+day, hour, 0, 0, 0, time.UTC)
			addHistory(t, f.reservations, "user-other", "studio-1", start, start.Add(time.Hour), 1)
		}
	}

	suggestions, err := f.svc.Suggest(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestNoHistoryFallsBackToLowContention(t *testing.T) {
	catalog := []*domain.Resource{
		{ID: "treadmill-1", Name: "Treadmill 1", Capacity: 2},
		{ID: "treadmill-2", Name: "Treadmill 2", Capacity: 2},
	}
	f := newSuggestionFixture(t, catalog,
		&CalendarServiceConfig{OpenHour: 14, CloseHour: 18, SlotWidth: time.Hour},
		&SuggestionServiceConfig{LookaheadDays: 1, TopK: 4})

	// Crowd treadmill-1 this afternoon; treadmill-2 stays empty
	for hour := 14; hour < 17; hour++ {
		start := time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC)
		addHistory(t, f.reservations, "user-other", "treadmill-1", start, start.Add(time.Hour), 2)
	}

	suggestions, err := f.svc.Suggest(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	best := suggestions[0]
	assert.Equal(t, "treadmill-2", best.ResourceID)
	assert.Equal(t, domain.ReasonLowContention, best.ReasonCode)
	for _, s := range suggestions {
		assert.Equal(t, domain.ReasonLowContention, s.ReasonCode)
	}
}

func TestSuggestHonorsTopK(t *testing.T) {
	catalog := []*domain.Resource{{ID: "treadmill-1", Name: "Treadmill 1", Capacity: 1}}
	f := newSuggestionFixture(t, catalog, nil, &SuggestionServiceConfig{TopK: 3})

	suggestions, err := f.svc.Suggest(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, suggestions, 3)

	// Ties on score resolve to the earliest start
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i-1].Score == suggestions[i].Score {
			assert.True(t, suggestions[i-1].StartTime.Before(suggestions[i].StartTime) ||
				suggestions[i-1].StartTime.Equal(suggestions[i].StartTime))
		}
	}
}
