package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
)

// PostgresReservationRepository implements ReservationRepository using PostgreSQL.
//
// Reserve runs inside a transaction holding a per-resource advisory lock, so
// the occupancy re-check and the insert are serialized per resource while
// distinct resources commit independently. Reads run outside the lock.
type PostgresReservationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresReservationRepository creates a new PostgresReservationRepository
func NewPostgresReservationRepository(pool *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{pool: pool}
}

// Reserve atomically checks occupancy and inserts the reservation
func (r *PostgresReservationRepository) Reserve(ctx context.Context, reservation *domain.Reservation, capacity int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize commits per resource; the lock releases on commit/rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, reservation.ResourceID); err != nil {
		return fmt.Errorf("failed to acquire resource lock: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, resource_id, user_id, start_time, end_time, status
		FROM reservations
		WHERE resource_id = $1
		  AND status = $2
		  AND start_time < $4
		  AND end_time > $3
	`, reservation.ResourceID, domain.ReservationStatusConfirmed.String(), reservation.StartTime, reservation.EndTime)
	if err != nil {
		return fmt.Errorf("failed to query overlapping reservations: %w", err)
	}

	var overlapping []*domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		var status string
		if err := rows.Scan(&res.ID, &res.ResourceID, &res.UserID, &res.StartTime, &res.EndTime, &status); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan reservation: %w", err)
		}
		res.Status = domain.ReservationStatus(status)
		overlapping = append(overlapping, &res)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read overlapping reservations: %w", err)
	}

	if domain.MaxOccupancy(overlapping, reservation.StartTime, reservation.EndTime)+1 > capacity {
		return domain.ErrSlotConflict
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reservations (
			id, resource_id, user_id, start_time, end_time, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		reservation.ID,
		reservation.ResourceID,
		reservation.UserID,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Status.String(),
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}
	return nil
}

// GetByID retrieves a reservation by its ID
func (r *PostgresReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, resource_id, user_id, start_time, end_time, status,
		       created_at, updated_at, cancelled_at
		FROM reservations
		WHERE id = $1
	`, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

// Cancel marks a reservation cancelled; a second cancel is a no-op
func (r *PostgresReservationRepository) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE reservations
		SET status = $2,
		    cancelled_at = COALESCE(cancelled_at, now()),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, resource_id, user_id, start_time, end_time, status,
		          created_at, updated_at, cancelled_at
	`, id, domain.ReservationStatusCancelled.String())

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return res, nil
}

// ListByResourceBetween returns reservations overlapping [from, to) for a resource
func (r *PostgresReservationRepository) ListByResourceBetween(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, resource_id, user_id, start_time, end_time, status,
		       created_at, updated_at, cancelled_at
		FROM reservations
		WHERE resource_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`, resourceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// ListByUser returns a user's reservations, newest first
func (r *PostgresReservationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, resource_id, user_id, start_time, end_time, status,
		       created_at, updated_at, cancelled_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	return out, nil
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var status string
	var cancelledAt *time.Time

	err := row.Scan(
		&res.ID,
		&res.ResourceID,
		&res.UserID,
		&res.StartTime,
		&res.EndTime,
		&status,
		&res.CreatedAt,
		&res.UpdatedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	res.CancelledAt = cancelledAt
	return res, nil
}
