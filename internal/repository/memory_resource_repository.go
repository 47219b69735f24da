package repository

import (
	"context"
	"sort"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// MemoryResourceRepository implements ResourceRepository over a fixed set of
// resources handed in at construction. The catalog is immutable afterwards,
// so lookups need no locking.
type MemoryResourceRepository struct {
	resources map[string]*domain.Resource
	ordered   []*domain.Resource
}

// NewMemoryResourceRepository creates a catalog from the given resources
func NewMemoryResourceRepository(resources []*domain.Resource) *MemoryResourceRepository {
	byID := make(map[string]*domain.Resource, len(resources))
	ordered := make([]*domain.Resource, 0, len(resources))
	for _, res := range resources {
		copied := *res
		if copied.Capacity <= 0 {
			copied.Capacity = 1
		}
		byID[copied.ID] = &copied
		ordered = append(ordered, &copied)
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	return &MemoryResourceRepository{resources: byID, ordered: ordered}
}

// SeedResources returns the default development catalog
func SeedResources() []*domain.Resource {
	return []*domain.Resource{
		{ID: "treadmill-1", Name: "Treadmill 1", Description: "A standard treadmill machine.", Capacity: 1},
		{ID: "treadmill-2", Name: "Treadmill 2", Description: "A standard treadmill machine.", Capacity: 1},
		{ID: "weights-1", Name: "Weights Area", Description: "Free weights and benches.", Capacity: 4},
		{ID: "studio-1", Name: "Studio Room", Description: "Group class and stretching room.", Capacity: 10},
	}
}

// List returns all resources
func (r *MemoryResourceRepository) List(ctx context.Context) ([]*domain.Resource, error) {
	out := make([]*domain.Resource, len(r.ordered))
	for i, res := range r.ordered {
		copied := *res
		out[i] = &copied
	}
	return out, nil
}

// GetByID retrieves a resource by its ID
func (r *MemoryResourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	copied := *res
	return &copied, nil
}
