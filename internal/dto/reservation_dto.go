package dto

import (
	"fmt"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// CreateReservationRequest is the booking request body. Timestamps are
// RFC 3339 strings with their offsets preserved.
type CreateReservationRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

// Interval parses the request timestamps
func (r *CreateReservationRequest) Interval() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_time: %w", err)
	}
	end, err = time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_time: %w", err)
	}
	return start, end, nil
}

// ReservationResponse is the wire shape of a reservation
type ReservationResponse struct {
	ID          string     `json:"id"`
	ResourceID  string     `json:"resource_id"`
	UserID      string     `json:"user_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// ToReservationResponse converts a domain reservation
func ToReservationResponse(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:          r.ID,
		ResourceID:  r.ResourceID,
		UserID:      r.UserID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		CancelledAt: r.CancelledAt,
	}
}

// ToReservationResponses converts a list of domain reservations
func ToReservationResponses(reservations []*domain.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		out[i] = ToReservationResponse(r)
	}
	return out
}
