package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// PostgresResourceRepository implements ResourceRepository using PostgreSQL
type PostgresResourceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresResourceRepository creates a new PostgresResourceRepository
func NewPostgresResourceRepository(pool *pgxpool.Pool) *PostgresResourceRepository {
	return &PostgresResourceRepository{pool: pool}
}

// List returns all resources ordered by id
func (r *PostgresResourceRepository) List(ctx context.Context) ([]*domain.Resource, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), capacity
		FROM resources
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var out []*domain.Resource
	for rows.Next() {
		res := &domain.Resource{}
		if err := rows.Scan(&res.ID, &res.Name, &res.Description, &res.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}
	return out, nil
}

// GetByID retrieves a resource by its ID
func (r *PostgresResourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	res := &domain.Resource{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), capacity
		FROM resources
		WHERE id = $1
	`, id).Scan(&res.ID, &res.Name, &res.Description, &res.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return res, nil
}
