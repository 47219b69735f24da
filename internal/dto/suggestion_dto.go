package dto

import (
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// SuggestionResponse is the wire shape of a ranked suggestion
type SuggestionResponse struct {
	ResourceID string    `json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Score      float64   `json:"score"`
	ReasonCode string    `json:"reason_code"`
}

// ToSuggestionResponses converts ranked suggestions. A nil input becomes an
// empty list so callers always see an array.
func ToSuggestionResponses(suggestions []domain.Suggestion) []*SuggestionResponse {
	out := make([]*SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = &SuggestionResponse{
			ResourceID: s.ResourceID,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Score:      s.Score,
			ReasonCode: string(s.ReasonCode),
		}
	}
	return out
}
