package domain

// ReservationEventType identifies a reservation lifecycle event
type ReservationEventType string

const (
	ReservationEventConfirmed ReservationEventType = "reservation.confirmed"
	ReservationEventCancelled ReservationEventType = "reservation.cancelled"
)
