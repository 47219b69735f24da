package domain

import (
	"strings"
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsValid checks if the status is a valid ReservationStatus
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReservationStatus
func (s ReservationStatus) String() string {
	return string(s)
}

// Reservation is a user's claim on a resource for a half-open interval
// [StartTime, EndTime). Cancelled reservations are kept, never deleted:
// they free capacity but stay visible as booking history.
type Reservation struct {
	ID          string            `json:"id"`
	ResourceID  string            `json:"resource_id"`
	UserID      string            `json:"user_id"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
}

// Validate validates reservation fields
func (r *Reservation) Validate() error {
	if strings.TrimSpace(r.ResourceID) == "" {
		return ErrResourceNotFound
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrInvalidUserID
	}
	if !r.StartTime.Before(r.EndTime) {
		return ErrInvalidInterval
	}
	if !r.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// IsConfirmed checks if the reservation is confirmed
func (r *Reservation) IsConfirmed() bool {
	return r.Status == ReservationStatusConfirmed
}

// IsCancelled checks if the reservation is cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationStatusCancelled
}

// BelongsToUser checks if the reservation belongs to the specified user
func (r *Reservation) BelongsToUser(userID string) bool {
	return r.UserID == userID
}

// Overlaps reports whether the reservation interval overlaps [start, end).
// Half-open semantics: touching endpoints do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}

// Cancel marks the reservation as cancelled. Cancelling an already-cancelled
// reservation is a no-op.
func (r *Reservation) Cancel() {
	if r.IsCancelled() {
		return
	}
	now := time.Now()
	r.Status = ReservationStatusCancelled
	r.CancelledAt = &now
	r.UpdatedAt = now
}
