package dto

import (
	"fmt"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

const dateLayout = "2006-01-02"

// ResourceResponse is the wire shape of a catalog resource
type ResourceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Capacity    int    `json:"capacity"`
}

// ToResourceResponse converts a domain resource
func ToResourceResponse(r *domain.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
	}
}

// ToResourceResponses converts a list of domain resources
func ToResourceResponses(resources []*domain.Resource) []*ResourceResponse {
	out := make([]*ResourceResponse, len(resources))
	for i, r := range resources {
		out[i] = ToResourceResponse(r)
	}
	return out
}

// ParseDate parses a calendar date query parameter. An empty value means
// today in UTC.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date, expected YYYY-MM-DD: %w", err)
	}
	return date, nil
}

// AvailabilityResponse is the availability view for one resource and day
type AvailabilityResponse struct {
	ResourceID string                    `json:"resource_id"`
	Date       string                    `json:"date"`
	Slots      []domain.AvailabilitySlot `json:"slots"`
}

// NewAvailabilityResponse builds the availability envelope
func NewAvailabilityResponse(resourceID string, date time.Time, slots []domain.AvailabilitySlot) *AvailabilityResponse {
	if slots == nil {
		slots = []domain.AvailabilitySlot{}
	}
	return &AvailabilityResponse{
		ResourceID: resourceID,
		Date:       date.Format(dateLayout),
		Slots:      slots,
	}
}
