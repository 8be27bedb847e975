package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
)

// PostgresPetRepository implements the PetRepository interface.
// Mutations are single conditional statements scoped to both id and
// owner, so there is no check-then-mutate window; a zero-row outcome
// comes back as ErrNotFound for the gate to classify into 403/404.
type PostgresPetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPetRepository creates a new pet repository
func NewPetRepository(config *RepositoryConfig) repositories.PetRepository {
	return &PostgresPetRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresPetRepository) Create(ctx context.Context, pet *models.Pet) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, species, breed, gender, dob, weight, medical_history, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		pet.UserID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.Gender,
		pet.DOB,
		pet.Weight,
		pet.MedicalHistory,
		pet.PhotoURL,
	).Scan(&pet.ID, &pet.CreatedAt)

	if err != nil {
		return storeErr("create pet", err)
	}

	return nil
}

func (r *PostgresPetRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Pet, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, species, breed, gender, dob, weight, medical_history, photo_url, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var pet models.Pet
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&pet.ID,
		&pet.UserID,
		&pet.Name,
		&pet.Species,
		&pet.Breed,
		&pet.Gender,
		&pet.DOB,
		&pet.Weight,
		&pet.MedicalHistory,
		&pet.PhotoURL,
		&pet.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("pet %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get pet", err)
	}

	return &pet, nil
}

func (r *PostgresPetRepository) List(ctx context.Context, ownerID string) ([]models.Pet, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, species, breed, gender, dob, weight, medical_history, photo_url, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list pets", err)
	}
	defer rows.Close()

	pets := []models.Pet{}
	for rows.Next() {
		var pet models.Pet
		if err := rows.Scan(
			&pet.ID,
			&pet.UserID,
			&pet.Name,
			&pet.Species,
			&pet.Breed,
			&pet.Gender,
			&pet.DOB,
			&pet.Weight,
			&pet.MedicalHistory,
			&pet.PhotoURL,
			&pet.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		pets = append(pets, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate pets", err)
	}

	return pets, nil
}

func (r *PostgresPetRepository) Update(ctx context.Context, pet *models.Pet) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, species = $2, breed = $3, gender = $4, dob = $5,
		    weight = $6, medical_history = $7, photo_url = $8
		WHERE id = $9 AND user_id = $10
		RETURNING created_at
	`, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.Gender,
		pet.DOB,
		pet.Weight,
		pet.MedicalHistory,
		pet.PhotoURL,
		pet.ID,
		pet.UserID,
	).Scan(&pet.CreatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("pet %s: %w", pet.ID, domain.ErrNotFound)
		}
		return storeErr("update pet", err)
	}

	return nil
}

func (r *PostgresPetRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND user_id = $2
	`, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("delete pet", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("pet %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresPetRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, storeErr("count pets by owner", err)
	}
	return count, nil
}

func (r *PostgresPetRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, storeErr("count pets", err)
	}
	return count, nil
}
