package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
)

// PostgresExpenseRepository implements the ExpenseRepository interface
type PostgresExpenseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(config *RepositoryConfig) repositories.ExpenseRepository {
	return &PostgresExpenseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (pet_id, category, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Expenses)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		e.PetID,
		e.Category,
		e.Amount,
		e.Description,
		e.Date,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		return storeErr("create expense", err)
	}

	return nil
}

func (r *PostgresExpenseRepository) GetByID(ctx context.Context, id, ownerID string) (*models.ExpenseWithPet, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.pet_id, e.category, e.amount, e.description, e.date, e.created_at, p.name
		FROM %s e
		JOIN %s p ON e.pet_id = p.id
		WHERE e.id = $1 AND p.user_id = $2
	`, r.tables.Expenses, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var e models.ExpenseWithPet
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&e.ID,
		&e.PetID,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.Date,
		&e.CreatedAt,
		&e.PetName,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get expense", err)
	}

	return &e, nil
}

func (r *PostgresExpenseRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ExpenseWithPet, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.pet_id, e.category, e.amount, e.description, e.date, e.created_at, p.name
		FROM %s e
		JOIN %s p ON e.pet_id = p.id
		WHERE p.user_id = $1
		ORDER BY e.date DESC
	`, r.tables.Expenses, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	defer rows.Close()

	expenses := []models.ExpenseWithPet{}
	for rows.Next() {
		var e models.ExpenseWithPet
		if err := rows.Scan(
			&e.ID,
			&e.PetID,
			&e.Category,
			&e.Amount,
			&e.Description,
			&e.Date,
			&e.CreatedAt,
			&e.PetName,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate expenses", err)
	}

	return expenses, nil
}

func (r *PostgresExpenseRepository) Update(ctx context.Context, e *models.Expense, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s e
		SET category = $1, amount = $2, description = $3, date = $4
		FROM %s p
		WHERE e.id = $5 AND e.pet_id = p.id AND p.user_id = $6
		RETURNING e.pet_id, e.created_at
	`, r.tables.Expenses, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		e.Category,
		e.Amount,
		e.Description,
		e.Date,
		e.ID,
		ownerID,
	).Scan(&e.PetID, &e.CreatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("expense %s: %w", e.ID, domain.ErrNotFound)
		}
		return storeErr("update expense", err)
	}

	return nil
}

func (r *PostgresExpenseRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s e
		USING %s p
		WHERE e.id = $1 AND e.pet_id = p.id AND p.user_id = $2
	`, r.tables.Expenses, r.tables.Pets)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("delete expense", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
