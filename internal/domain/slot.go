package domain

import "time"

// Slot is a derived fixed-width booking interval for a resource on a given
// day. Slots are computed from reservations on every call, never stored.
type Slot struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	OccupiedCount int       `json:"occupied_count"`
}

// AvailabilitySlot is a slot projected through a resource's capacity
type AvailabilitySlot struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}
