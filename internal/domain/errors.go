package domain

import "errors"

// Domain errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidCapacity  = errors.New("resource capacity must be positive")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("reservation belongs to another user")
	ErrInvalidInterval     = errors.New("invalid reservation interval")
	ErrSlotConflict        = errors.New("slot capacity exceeded")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)
