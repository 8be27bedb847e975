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

// PostgresPlaydateRepository implements the PlaydateRepository interface
type PostgresPlaydateRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPlaydateRepository creates a new playdate repository
func NewPlaydateRepository(config *RepositoryConfig) repositories.PlaydateRepository {
	return &PostgresPlaydateRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresPlaydateRepository) Create(ctx context.Context, p *models.Playdate) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (host_id, title, description, location, event_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.Playdates)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		p.HostID,
		p.Title,
		p.Description,
		p.Location,
		p.EventDate,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		return storeErr("create playdate", err)
	}

	return nil
}

func (r *PostgresPlaydateRepository) List(ctx context.Context) ([]models.Playdate, error) {
	query := fmt.Sprintf(`
		SELECT id, host_id, title, description, location, event_date, status, created_at
		FROM %s
		ORDER BY event_date ASC
	`, r.tables.Playdates)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list playdates", err)
	}
	defer rows.Close()

	playdates := []models.Playdate{}
	for rows.Next() {
		var p models.Playdate
		if err := rows.Scan(
			&p.ID,
			&p.HostID,
			&p.Title,
			&p.Description,
			&p.Location,
			&p.EventDate,
			&p.Status,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan playdate: %w", err)
		}
		playdates = append(playdates, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate playdates", err)
	}

	return playdates, nil
}

func (r *PostgresPlaydateRepository) GetByID(ctx context.Context, id string) (*models.Playdate, error) {
	query := fmt.Sprintf(`
		SELECT id, host_id, title, description, location, event_date, status, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Playdates)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.Playdate
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.HostID,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.EventDate,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("playdate %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get playdate", err)
	}

	return &p, nil
}

// Update rewrites the host-editable fields. Status is deliberately not
// in the SET list: the active -> expired transition is one-way and only
// ExpirePast writes it, so an edit can never resurrect an expired row.
func (r *PostgresPlaydateRepository) Update(ctx context.Context, p *models.Playdate, hostID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, location = $3, event_date = $4
		WHERE id = $5 AND host_id = $6
		RETURNING status, created_at
	`, r.tables.Playdates)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.Location,
		p.EventDate,
		p.ID,
		hostID,
	).Scan(&p.Status, &p.CreatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("playdate %s: %w", p.ID, domain.ErrNotFound)
		}
		return storeErr("update playdate", err)
	}

	return nil
}

func (r *PostgresPlaydateRepository) Delete(ctx context.Context, id, hostID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND host_id = $2
	`, r.tables.Playdates)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, hostID)
	if err != nil {
		return storeErr("delete playdate", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("playdate %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresPlaydateRepository) RSVP(ctx context.Context, playdateID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (playdate_id, user_id) VALUES ($1, $2)
	`, r.tables.PlaydateRSVPs)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.pool.Exec(ctx, query, playdateID, userID); err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "Already joined this playdate.",
				ResourceType: "playdate_rsvp",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("playdate %s: %w", playdateID, domain.ErrNotFound)
		}
		return storeErr("rsvp playdate", err)
	}

	return nil
}

func (r *PostgresPlaydateRepository) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $1 WHERE event_date < $2 AND status = $3
	`, r.tables.Playdates)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, models.PlaydateExpired, now, models.PlaydateActive)
	if err != nil {
		return 0, storeErr("expire playdates", err)
	}

	return result.RowsAffected(), nil
}
