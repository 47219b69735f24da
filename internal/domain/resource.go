package domain

import "strings"

// Resource is a bookable piece of gym inventory: a machine, an area or a room.
// Resources are loaded at startup and immutable for the life of the process.
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Capacity    int    `json:"capacity"` // concurrent confirmed reservations allowed
}

// Validate validates resource fields
func (r *Resource) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrResourceNotFound
	}
	if r.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
