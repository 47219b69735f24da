package domain

import "time"

// ReasonCode identifies the dominant factor behind a suggestion. Structured
// on purpose: the core decides which slots to suggest and why, never prose.
type ReasonCode string

const (
	ReasonPreferredResource  ReasonCode = "PreferredResource"
	ReasonPreferredTimeOfDay ReasonCode = "PreferredTimeOfDay"
	ReasonLowContention      ReasonCode = "LowContention"
)

// Suggestion is a ranked candidate slot for a user
type Suggestion struct {
	ResourceID string     `json:"resource_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Score      float64    `json:"score"`
	ReasonCode ReasonCode `json:"reason_code"`
}
