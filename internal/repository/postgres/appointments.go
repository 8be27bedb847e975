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

// PostgresAppointmentRepository implements the AppointmentRepository interface
type PostgresAppointmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(config *RepositoryConfig) repositories.AppointmentRepository {
	return &PostgresAppointmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresAppointmentRepository) Create(ctx context.Context, a *models.Appointment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (pet_id, vet_name, clinic_name, appointment_date, purpose, reminder_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, r.tables.Appointments)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		a.PetID,
		a.VetName,
		a.ClinicName,
		a.AppointmentDate,
		a.Purpose,
		a.ReminderDate,
		a.Status,
		a.Notes,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return storeErr("create appointment", err)
	}

	return nil
}

func (r *PostgresAppointmentRepository) GetByID(ctx context.Context, id, ownerID string) (*models.AppointmentWithPet, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.pet_id, a.vet_name, a.clinic_name, a.appointment_date, a.purpose,
		       a.reminder_date, a.status, a.notes, a.created_at, p.name
		FROM %s a
		JOIN %s p ON a.pet_id = p.id
		WHERE a.id = $1 AND p.user_id = $2
	`, r.tables.Appointments, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var a models.AppointmentWithPet
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&a.ID,
		&a.PetID,
		&a.VetName,
		&a.ClinicName,
		&a.AppointmentDate,
		&a.Purpose,
		&a.ReminderDate,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.PetName,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("appointment %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get appointment", err)
	}

	return &a, nil
}

func (r *PostgresAppointmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.AppointmentWithPet, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.pet_id, a.vet_name, a.clinic_name, a.appointment_date, a.purpose,
		       a.reminder_date, a.status, a.notes, a.created_at, p.name
		FROM %s a
		JOIN %s p ON a.pet_id = p.id
		WHERE p.user_id = $1
		ORDER BY a.appointment_date ASC
	`, r.tables.Appointments, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list appointments", err)
	}
	defer rows.Close()

	appointments := []models.AppointmentWithPet{}
	for rows.Next() {
		var a models.AppointmentWithPet
		if err := rows.Scan(
			&a.ID,
			&a.PetID,
			&a.VetName,
			&a.ClinicName,
			&a.AppointmentDate,
			&a.Purpose,
			&a.ReminderDate,
			&a.Status,
			&a.Notes,
			&a.CreatedAt,
			&a.PetName,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate appointments", err)
	}

	return appointments, nil
}

func (r *PostgresAppointmentRepository) Update(ctx context.Context, a *models.Appointment, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s a
		SET vet_name = $1, clinic_name = $2, appointment_date = $3, purpose = $4,
		    reminder_date = $5, status = $6, notes = $7
		FROM %s p
		WHERE a.id = $8 AND a.pet_id = p.id AND p.user_id = $9
		RETURNING a.pet_id, a.created_at
	`, r.tables.Appointments, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		a.VetName,
		a.ClinicName,
		a.AppointmentDate,
		a.Purpose,
		a.ReminderDate,
		a.Status,
		a.Notes,
		a.ID,
		ownerID,
	).Scan(&a.PetID, &a.CreatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("appointment %s: %w", a.ID, domain.ErrNotFound)
		}
		return storeErr("update appointment", err)
	}

	return nil
}

func (r *PostgresAppointmentRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s a
		USING %s p
		WHERE a.id = $1 AND a.pet_id = p.id AND p.user_id = $2
	`, r.tables.Appointments, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("delete appointment", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresAppointmentRepository) ListUpcoming(ctx context.Context, ownerID string, from time.Time) ([]models.Appointment, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.pet_id, a.vet_name, a.clinic_name, a.appointment_date, a.purpose,
		       a.reminder_date, a.status, a.notes, a.created_at
		FROM %s a
		JOIN %s p ON a.pet_id = p.id
		WHERE p.user_id = $1 AND a.appointment_date >= $2
		ORDER BY a.appointment_date ASC
	`, r.tables.Appointments, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, ownerID, from)
	if err != nil {
		return nil, storeErr("list upcoming appointments", err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.PetID,
			&a.VetName,
			&a.ClinicName,
			&a.AppointmentDate,
			&a.Purpose,
			&a.ReminderDate,
			&a.Status,
			&a.Notes,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate upcoming appointments", err)
	}

	return appointments, nil
}
