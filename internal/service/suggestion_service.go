package service

import (
	"context"
	"sort"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/metrics"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/repository"
)

// SuggestionService ranks free slots for a user. It only reads: booking
// history from the reservation store, occupancy from the calendar.
type SuggestionService interface {
	// Suggest returns the top scored free (resource, interval) candidates for
	// the user over the lookahead window, best first. An empty result is a
	// normal outcome, not an error.
	Suggest(ctx context.Context, userID string) ([]domain.Suggestion, error)
}

// SuggestionServiceConfig holds the scoring weights and search bounds.
// Weights are tunable at deploy time so ranking behavior can be adjusted
// without a code change.
type SuggestionServiceConfig struct {
	ResourceWeight   float64
	TimeWeight       float64
	ContentionWeight float64
	LookaheadDays    int
	TopK             int
	HistoryLimit     int
}

type suggestionService struct {
	resources    repository.ResourceRepository
	reservations repository.ReservationRepository
	calendar     CalendarService
	cfg          SuggestionServiceConfig
	now          func() time.Time
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(
	resources repository.ResourceRepository,
	reservations repository.ReservationRepository,
	calendar CalendarService,
	cfg *SuggestionServiceConfig,
) SuggestionService {
	c := SuggestionServiceConfig{
		ResourceWeight:   2.0,
		TimeWeight:       1.5,
		ContentionWeight: 1.0,
		LookaheadDays:    7,
		TopK:             5,
		HistoryLimit:     200,
	}
	if cfg != nil {
		if cfg.ResourceWeight > 0 {
			c.ResourceWeight = cfg.ResourceWeight
		}
		if cfg.TimeWeight > 0 {
			c.TimeWeight = cfg.TimeWeight
		}
		if cfg.ContentionWeight > 0 {
			c.ContentionWeight = cfg.ContentionWeight
		}
		if cfg.LookaheadDays > 0 {
			c.LookaheadDays = cfg.LookaheadDays
		}
		if cfg.TopK > 0 {
			c.TopK = cfg.TopK
		}
		if cfg.HistoryLimit > 0 {
			c.HistoryLimit = cfg.HistoryLimit
		}
	}
	return &suggestionService{
		resources:    resources,
		reservations: reservations,
		calendar:     calendar,
		cfg:          c,
		now:          time.Now,
	}
}

// preferenceProfile aggregates a user's confirmed history into normalized
// frequency tables
type preferenceProfile struct {
	total      int
	byResource map[string]int
	byHour     map[int]int
	byWeekday  map[time.Weekday]int
}

func (p *preferenceProfile) resourceScore(resourceID string) float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.byResource[resourceID]) / float64(p.total)
}

func (p *preferenceProfile) timeScore(start time.Time) float64 {
	if p.total == 0 {
		return 0
	}
	hour := float64(p.byHour[start.Hour()]) / float64(p.total)
	weekday := float64(p.byWeekday[start.Weekday()]) / float64(p.total)
	// Hour of day dominates; weekday only nudges
	return 0.75*hour + 0.25*weekday
}

// Suggest scores every free slot in the lookahead window and returns the best
func (s *suggestionService) Suggest(ctx context.Context, userID string) ([]domain.Suggestion, error) {
	profile, err := s.buildProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	resources, err := s.resources.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var candidates []domain.Suggestion
	for _, resource := range resources {
		for day := 0; day < s.cfg.LookaheadDays; day++ {
			date := now.AddDate(0, 0, day)
			slots, err := s.calendar.SlotsFor(ctx, resource.ID, date)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, s.scoreSlots(profile, resource, slots, now)...)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ResourceID < b.ResourceID
	})

	if len(candidates) > s.cfg.TopK {
		candidates = candidates[:s.cfg.TopK]
	}
	metrics.SuggestionsServed.Inc(ctx)
	return candidates, nil
}

func (s *suggestionService) buildProfile(ctx context.Context, userID string) (*preferenceProfile, error) {
	history, err := s.reservations.ListByUser(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}

	profile := &preferenceProfile{
		byResource: make(map[string]int),
		byHour:     make(map[int]int),
		byWeekday:  make(map[time.Weekday]int),
	}
	for _, r := range history {
		if !r.IsConfirmed() {
			continue
		}
		profile.total++
		profile.byResource[r.ResourceID]++
		profile.byHour[r.StartTime.Hour()]++
		profile.byWeekday[r.StartTime.Weekday()]++
	}
	return profile, nil
}

// scoreSlots scores the free slots of one resource day. Full and already
// started slots are skipped.
func (s *suggestionService) scoreSlots(profile *preferenceProfile, resource *domain.Resource, slots []domain.Slot, now time.Time) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(slots))
	for i, slot := range slots {
		if !slot.StartTime.After(now) {
			continue
		}
		if slot.OccupiedCount >= resource.Capacity {
			continue
		}

		resourcePart := s.cfg.ResourceWeight * profile.resourceScore(resource.ID)
		timePart := s.cfg.TimeWeight * profile.timeScore(slot.StartTime)
		contentionPart := s.cfg.ContentionWeight * contention(slots, i, resource.Capacity)

		out = append(out, domain.Suggestion{
			ResourceID: resource.ID,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Score:      resourcePart + timePart - contentionPart,
			ReasonCode: reasonFor(resourcePart, timePart),
		})
	}
	return out
}

// contention is the occupancy density of the slot and its immediate
// neighbors, normalized to [0, 1]. Crowded surroundings push a candidate down
// even when the slot itself is free.
func contention(slots []domain.Slot, i, capacity int) float64 {
	occupied, window := slots[i].OccupiedCount, 1
	if i > 0 {
		occupied += slots[i-1].OccupiedCount
		window++
	}
	if i < len(slots)-1 {
		occupied += slots[i+1].OccupiedCount
		window++
	}
	return float64(occupied) / float64(window*capacity)
}

// reasonFor tags the dominant scoring factor. Without any preference signal
// the candidate stands on low contention alone.
func reasonFor(resourcePart, timePart float64) domain.ReasonCode {
	if resourcePart == 0 && timePart == 0 {
		return domain.ReasonLowContention
	}
	if resourcePart >= timePart {
		return domain.ReasonPreferredResource
	}
	return domain.ReasonPreferredTimeOfDay
}
