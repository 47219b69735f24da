package service

import (
	"context"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/repository"
)

// CatalogService exposes the read-only resource catalog
type CatalogService interface {
	// ListResources returns all bookable resources
	ListResources(ctx context.Context) ([]*domain.Resource, error)

	// GetResource retrieves a resource, domain.ErrResourceNotFound when unknown
	GetResource(ctx context.Context, id string) (*domain.Resource, error)
}

type catalogService struct {
	resources repository.ResourceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(resources repository.ResourceRepository) CatalogService {
	return &catalogService{resources: resources}
}

func (s *catalogService) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	return s.resources.List(ctx)
}

func (s *catalogService) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}
