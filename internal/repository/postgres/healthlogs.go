package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
)

// PostgresHealthLogRepository implements the HealthLogRepository interface
type PostgresHealthLogRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewHealthLogRepository creates a new health log repository
func NewHealthLogRepository(config *RepositoryConfig) repositories.HealthLogRepository {
	return &PostgresHealthLogRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresHealthLogRepository) Create(ctx context.Context, l *models.HealthLog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (pet_id, weight, temperature, symptoms, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, r.tables.HealthLogs)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		l.PetID,
		l.Weight,
		l.Temperature,
		l.Symptoms,
		l.Notes,
		l.Date,
	).Scan(&l.ID)

	if err != nil {
		return storeErr("create health log", err)
	}

	return nil
}

func (r *PostgresHealthLogRepository) ListByPet(ctx context.Context, petID string) ([]models.HealthLog, error) {
	query := fmt.Sprintf(`
		SELECT id, pet_id, weight, temperature, symptoms, notes, date
		FROM %s
		WHERE pet_id = $1
		ORDER BY date ASC
	`, r.tables.HealthLogs)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, storeErr("list health logs", err)
	}
	defer rows.Close()

	logs := []models.HealthLog{}
	for rows.Next() {
		var l models.HealthLog
		if err := rows.Scan(
			&l.ID,
			&l.PetID,
			&l.Weight,
			&l.Temperature,
			&l.Symptoms,
			&l.Notes,
			&l.Date,
		); err != nil {
			return nil, fmt.Errorf("scan health log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate health logs", err)
	}

	return logs, nil
}

func (r *PostgresHealthLogRepository) Update(ctx context.Context, l *models.HealthLog, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s h
		SET weight = $1, temperature = $2, symptoms = $3, notes = $4, date = $5
		FROM %s p
		WHERE h.id = $6 AND h.pet_id = p.id AND p.user_id = $7
		RETURNING h.pet_id
	`, r.tables.HealthLogs, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		l.Weight,
		l.Temperature,
		l.Symptoms,
		l.Notes,
		l.Date,
		l.ID,
		ownerID,
	).Scan(&l.PetID)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("health log %s: %w", l.ID, domain.ErrNotFound)
		}
		return storeErr("update health log", err)
	}

	return nil
}

func (r *PostgresHealthLogRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s h
		USING %s p
		WHERE h.id = $1 AND h.pet_id = p.id AND p.user_id = $2
	`, r.tables.HealthLogs, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("delete health log", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("health log %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresHealthLogRepository) WeightTrend(ctx context.Context, petID string) ([]models.WeightPoint, error) {
	query := fmt.Sprintf(`
		SELECT date, weight
		FROM %s
		WHERE pet_id = $1 AND weight IS NOT NULL
		ORDER BY date ASC
	`, r.tables.HealthLogs)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, storeErr("weight trend", err)
	}
	defer rows.Close()

	points := []models.WeightPoint{}
	for rows.Next() {
		var p models.WeightPoint
		if err := rows.Scan(&p.Date, &p.Weight); err != nil {
			return nil, fmt.Errorf("scan weight point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate weight points", err)
	}

	return points, nil
}
