package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
)

// PostgresActivityRepository implements the ActivityRepository interface
type PostgresActivityRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(config *RepositoryConfig) repositories.ActivityRepository {
	return &PostgresActivityRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (pet_id, type, duration, date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Activities)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		a.PetID,
		a.Type,
		a.Duration,
		a.Date,
		a.Notes,
	).Scan(&a.ID)

	if err != nil {
		return storeErr("create activity", err)
	}

	return nil
}

func (r *PostgresActivityRepository) ListByPet(ctx context.Context, petID string) ([]models.Activity, error) {
	query := fmt.Sprintf(`
		SELECT id, pet_id, type, duration, date, notes
		FROM %s
		WHERE pet_id = $1
		ORDER BY date DESC
	`, r.tables.Activities)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, storeErr("list activities", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(
			&a.ID,
			&a.PetID,
			&a.Type,
			&a.Duration,
			&a.Date,
			&a.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate activities", err)
	}

	return activities, nil
}

func (r *PostgresActivityRepository) Update(ctx context.Context, a *models.Activity, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s act
		SET type = $1, duration = $2, date = $3, notes = $4
		FROM %s p
		WHERE act.id = $5 AND act.pet_id = p.id AND p.user_id = $6
		RETURNING act.pet_id
	`, r.tables.Activities, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		a.Type,
		a.Duration,
		a.Date,
		a.Notes,
		a.ID,
		ownerID,
	).Scan(&a.PetID)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("activity %s: %w", a.ID, domain.ErrNotFound)
		}
		return storeErr("update activity", err)
	}

	return nil
}

func (r *PostgresActivityRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s act
		USING %s p
		WHERE act.id = $1 AND act.pet_id = p.id AND p.user_id = $2
	`, r.tables.Activities, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("delete activity", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresActivityRepository) ListBetween(ctx context.Context, petID string, from, to time.Time) ([]models.Activity, error) {
	query := fmt.Sprintf(`
		SELECT id, pet_id, type, duration, date, notes
		FROM %s
		WHERE pet_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, r.tables.Activities)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, petID, from, to)
	if err != nil {
		return nil, storeErr("list activities between", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(
			&a.ID,
			&a.PetID,
			&a.Type,
			&a.Duration,
			&a.Date,
			&a.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate activities", err)
	}

	return activities, nil
}
