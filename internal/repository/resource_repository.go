package repository

import (
	"context"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// ResourceRepository is the read-only catalog of bookable resources
type ResourceRepository interface {
	// List returns all resources
	List(ctx context.Context) ([]*domain.Resource, error)

	// GetByID retrieves a resource, domain.ErrResourceNotFound when unknown
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
}
