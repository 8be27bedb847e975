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

// PostgresVaccinationRepository implements the VaccinationRepository
// interface. Ownership is transitive through the pet, so every scoped
// statement joins pets and filters on the pet's user_id in the same
// round trip.
type PostgresVaccinationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewVaccinationRepository creates a new vaccination repository
func NewVaccinationRepository(config *RepositoryConfig) repositories.VaccinationRepository {
	return &PostgresVaccinationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresVaccinationRepository) Create(ctx context.Context, v *models.Vaccination) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (pet_id, vaccine_name, given_date, next_due_date, reminder_sent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Vaccinations)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		v.PetID,
		v.VaccineName,
		v.GivenDate,
		v.NextDueDate,
		v.ReminderSent,
	).Scan(&v.ID, &v.CreatedAt)

	if err != nil {
		return storeErr("create vaccination", err)
	}

	return nil
}

func (r *PostgresVaccinationRepository) GetByID(ctx context.Context, id, ownerID string) (*models.VaccinationWithPet, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.pet_id, v.vaccine_name, v.given_date, v.next_due_date, v.reminder_sent, v.created_at, p.name
		FROM %s v
		JOIN %s p ON v.pet_id = p.id
		WHERE v.id = $1 AND p.user_id = $2
	`, r.tables.Vaccinations, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var v models.VaccinationWithPet
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&v.ID,
		&v.PetID,
		&v.VaccineName,
		&v.GivenDate,
		&v.NextDueDate,
		&v.ReminderSent,
		&v.CreatedAt,
		&v.PetName,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("vaccination %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get vaccination", err)
	}

	return &v, nil
}

func (r *PostgresVaccinationRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.VaccinationWithPet, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.pet_id, v.vaccine_name, v.given_date, v.next_due_date, v.reminder_sent, v.created_at, p.name
		FROM %s v
		JOIN %s p ON v.pet_id = p.id
		WHERE p.user_id = $1
		ORDER BY v.given_date DESC
	`, r.tables.Vaccinations, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list vaccinations", err)
	}
	defer rows.Close()

	vaccinations := []models.VaccinationWithPet{}
	for rows.Next() {
		var v models.VaccinationWithPet
		if err := rows.Scan(
			&v.ID,
			&v.PetID,
			&v.VaccineName,
			&v.GivenDate,
			&v.NextDueDate,
			&v.ReminderSent,
			&v.CreatedAt,
			&v.PetName,
		); err != nil {
			return nil, fmt.Errorf("scan vaccination: %w", err)
		}
		vaccinations = append(vaccinations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate vaccinations", err)
	}

	return vaccinations, nil
}

// vaccinationUpdateSQL rewrites the editable fields. The reminder flag re-arms
// only when the due date actually moves; an edit that leaves the date
// alone keeps an already-sent reminder sent.
func vaccinationUpdateSQL(tables *TableNames) string {
	return fmt.Sprintf(`
		UPDATE %s v
		SET vaccine_name = $1, given_date = $2, next_due_date = $3,
		    reminder_sent = CASE WHEN v.next_due_date IS DISTINCT FROM $3 THEN false ELSE v.reminder_sent END
		FROM %s p
		WHERE v.id = $4 AND v.pet_id = p.id AND p.user_id = $5
		RETURNING v.pet_id, v.reminder_sent, v.created_at
	`, tables.Vaccinations, tables.Pets)
}

func (r *PostgresVaccinationRepository) Update(ctx context.Context, v *models.Vaccination, ownerID string) error {
	query := vaccinationUpdateSQL(r.tables)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		v.VaccineName,
		v.GivenDate,
		v.NextDueDate,
		v.ID,
		ownerID,
	).Scan(&v.PetID, &v.ReminderSent, &v.CreatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("vaccination %s: %w", v.ID, domain.ErrNotFound)
		}
		return storeErr("update vaccination", err)
	}

	return nil
}

func (r *PostgresVaccinationRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s v
		USING %s p
		WHERE v.id = $1 AND v.pet_id = p.id AND p.user_id = $2
	`, r.tables.Vaccinations, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("delete vaccination", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("vaccination %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresVaccinationRepository) ListDueBetween(ctx context.Context, ownerID string, from, to time.Time) ([]models.Vaccination, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.pet_id, v.vaccine_name, v.given_date, v.next_due_date, v.reminder_sent, v.created_at
		FROM %s v
		JOIN %s p ON v.pet_id = p.id
		WHERE p.user_id = $1 AND v.next_due_date BETWEEN $2 AND $3
		ORDER BY v.next_due_date ASC
	`, r.tables.Vaccinations, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, storeErr("list due vaccinations", err)
	}
	defer rows.Close()

	vaccinations := []models.Vaccination{}
	for rows.Next() {
		var v models.Vaccination
		if err := rows.Scan(
			&v.ID,
			&v.PetID,
			&v.VaccineName,
			&v.GivenDate,
			&v.NextDueDate,
			&v.ReminderSent,
			&v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vaccination: %w", err)
		}
		vaccinations = append(vaccinations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate due vaccinations", err)
	}

	return vaccinations, nil
}

// dueForReminderSQL selects unreminded rows due inside a half-open
// window. Due dates are TIMESTAMPTZ values with arbitrary times of
// day, so equality against a midnight instant would match nothing;
// the window predicate covers the whole calendar day.
func dueForReminderSQL(tables *TableNames) string {
	return fmt.Sprintf(`
		SELECT v.id, v.vaccine_name, v.next_due_date, u.name, u.email
		FROM %s v
		JOIN %s p ON v.pet_id = p.id
		JOIN %s u ON p.user_id = u.id
		WHERE v.next_due_date >= $1 AND v.next_due_date < $2 AND v.reminder_sent = false
	`, tables.Vaccinations, tables.Pets, tables.Users)
}

func (r *PostgresVaccinationRepository) DueForReminder(ctx context.Context, from, to time.Time) ([]models.DueVaccination, error) {
	query := dueForReminderSQL(r.tables)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, storeErr("list reminder vaccinations", err)
	}
	defer rows.Close()

	due := []models.DueVaccination{}
	for rows.Next() {
		var d models.DueVaccination
		if err := rows.Scan(
			&d.VaccinationID,
			&d.VaccineName,
			&d.NextDueDate,
			&d.OwnerName,
			&d.OwnerEmail,
		); err != nil {
			return nil, fmt.Errorf("scan due vaccination: %w", err)
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate reminder vaccinations", err)
	}

	return due, nil
}

func (r *PostgresVaccinationRepository) MarkReminderSent(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET reminder_sent = true WHERE id = $1
	`, r.tables.Vaccinations)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return storeErr("mark reminder sent", err)
	}
	return nil
}
