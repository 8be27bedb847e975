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

// PostgresPolicyRepository implements the PolicyRepository interface
type PostgresPolicyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPolicyRepository creates a new insurance policy repository
func NewPolicyRepository(config *RepositoryConfig) repositories.PolicyRepository {
	return &PostgresPolicyRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresPolicyRepository) Create(ctx context.Context, p *models.Policy) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (provider_name, policy_name, premium_amount, coverage_amount, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Policies)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		p.ProviderName,
		p.PolicyName,
		p.PremiumAmount,
		p.CoverageAmount,
		p.Description,
	).Scan(&p.ID)

	if err != nil {
		return storeErr("create policy", err)
	}

	return nil
}

func (r *PostgresPolicyRepository) List(ctx context.Context) ([]models.Policy, error) {
	query := fmt.Sprintf(`
		SELECT id, provider_name, policy_name, premium_amount, coverage_amount, description
		FROM %s
		ORDER BY provider_name, policy_name
	`, r.tables.Policies)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list policies", err)
	}
	defer rows.Close()

	policies := []models.Policy{}
	for rows.Next() {
		var p models.Policy
		if err := rows.Scan(
			&p.ID,
			&p.ProviderName,
			&p.PolicyName,
			&p.PremiumAmount,
			&p.CoverageAmount,
			&p.Description,
		); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate policies", err)
	}

	return policies, nil
}

func (r *PostgresPolicyRepository) Update(ctx context.Context, p *models.Policy) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET provider_name = $1, policy_name = $2, premium_amount = $3, coverage_amount = $4, description = $5
		WHERE id = $6
	`, r.tables.Policies)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query,
		p.ProviderName,
		p.PolicyName,
		p.PremiumAmount,
		p.CoverageAmount,
		p.Description,
		p.ID,
	)
	if err != nil {
		return storeErr("update policy", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("policy %s: %w", p.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresPolicyRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Policies)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storeErr("delete policy", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("policy %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// PostgresSubscriptionRepository implements the SubscriptionRepository interface
type PostgresSubscriptionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSubscriptionRepository creates a new pet insurance subscription repository
func NewSubscriptionRepository(config *RepositoryConfig) repositories.SubscriptionRepository {
	return &PostgresSubscriptionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresSubscriptionRepository) Create(ctx context.Context, s *models.Subscription) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (pet_id, policy_id, policy_number, start_date, end_date, claim_status, emergency_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, r.tables.PetInsurance)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		s.PetID,
		s.PolicyID,
		s.PolicyNumber,
		s.StartDate,
		s.EndDate,
		s.ClaimStatus,
		s.EmergencyContact,
	).Scan(&s.ID)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("Policy number %s is already in use.", s.PolicyNumber),
				ResourceType: "insurance_subscription",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("policy %s: %w", s.PolicyID, domain.ErrNotFound)
		}
		return storeErr("create subscription", err)
	}

	return nil
}

func (r *PostgresSubscriptionRepository) ListByPet(ctx context.Context, petID string) ([]models.SubscriptionDetail, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.pet_id, s.policy_id, s.policy_number, s.start_date, s.end_date,
		       s.claim_status, s.emergency_contact,
		       i.id, i.provider_name, i.policy_name, i.premium_amount, i.coverage_amount, i.description
		FROM %s s
		JOIN %s i ON s.policy_id = i.id
		WHERE s.pet_id = $1
		ORDER BY s.start_date DESC
	`, r.tables.PetInsurance, r.tables.Policies)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, storeErr("list subscriptions", err)
	}
	defer rows.Close()

	subs := []models.SubscriptionDetail{}
	for rows.Next() {
		var s models.SubscriptionDetail
		if err := rows.Scan(
			&s.ID,
			&s.PetID,
			&s.PolicyID,
			&s.PolicyNumber,
			&s.StartDate,
			&s.EndDate,
			&s.ClaimStatus,
			&s.EmergencyContact,
			&s.Policy.ID,
			&s.Policy.ProviderName,
			&s.Policy.PolicyName,
			&s.Policy.PremiumAmount,
			&s.Policy.CoverageAmount,
			&s.Policy.Description,
		); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate subscriptions", err)
	}

	return subs, nil
}

func (r *PostgresSubscriptionRepository) ListAll(ctx context.Context) ([]models.SubscriptionOverview, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.pet_id, s.policy_id, s.policy_number, s.start_date, s.end_date,
		       s.claim_status, s.emergency_contact,
		       i.id, i.provider_name, i.policy_name, i.premium_amount, i.coverage_amount, i.description,
		       p.name, u.email
		FROM %s s
		JOIN %s i ON s.policy_id = i.id
		JOIN %s p ON s.pet_id = p.id
		JOIN %s u ON p.user_id = u.id
		ORDER BY s.start_date DESC
	`, r.tables.PetInsurance, r.tables.Policies, r.tables.Pets, r.tables.Users)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list all subscriptions", err)
	}
	defer rows.Close()

	subs := []models.SubscriptionOverview{}
	for rows.Next() {
		var s models.SubscriptionOverview
		if err := rows.Scan(
			&s.ID,
			&s.PetID,
			&s.PolicyID,
			&s.PolicyNumber,
			&s.StartDate,
			&s.EndDate,
			&s.ClaimStatus,
			&s.EmergencyContact,
			&s.Policy.ID,
			&s.Policy.ProviderName,
			&s.Policy.PolicyName,
			&s.Policy.PremiumAmount,
			&s.Policy.CoverageAmount,
			&s.Policy.Description,
			&s.PetName,
			&s.OwnerEmail,
		); err != nil {
			return nil, fmt.Errorf("scan subscription overview: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate subscription overviews", err)
	}

	return subs, nil
}

func (r *PostgresSubscriptionRepository) UpdateClaimStatus(ctx context.Context, id, status string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET claim_status = $1 WHERE id = $2
	`, r.tables.PetInsurance)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return storeErr("update claim status", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresSubscriptionRepository) ListPremiums(ctx context.Context) ([]models.PremiumSchedule, error) {
	query := fmt.Sprintf(`
		SELECT s.end_date, i.premium_amount
		FROM %s s
		JOIN %s i ON s.policy_id = i.id
	`, r.tables.PetInsurance, r.tables.Policies)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list premiums", err)
	}
	defer rows.Close()

	premiums := []models.PremiumSchedule{}
	for rows.Next() {
		var p models.PremiumSchedule
		if err := rows.Scan(&p.EndDate, &p.Premium); err != nil {
			return nil, fmt.Errorf("scan premium: %w", err)
		}
		premiums = append(premiums, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate premiums", err)
	}

	return premiums, nil
}

func (r *PostgresSubscriptionRepository) CountExpiringBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE end_date BETWEEN $1 AND $2
	`, r.tables.PetInsurance)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, storeErr("count expiring subscriptions", err)
	}

	return count, nil
}
