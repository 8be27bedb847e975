package repositories

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// PolicyRepository persists the global insurance_policies catalog.
// All mutations are admin-gated upstream; policies have no owner.
type PolicyRepository interface {
	Create(ctx context.Context, p *models.Policy) error
	List(ctx context.Context) ([]models.Policy, error)
	Update(ctx context.Context, p *models.Policy) error
	Delete(ctx context.Context, id string) error
}

// SubscriptionRepository persists pet_insurance rows, owned
// transitively through the pet.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *models.Subscription) error
	ListByPet(ctx context.Context, petID string) ([]models.SubscriptionDetail, error)
	// ListAll returns every subscription joined with policy terms and
	// owner contact. Admin-only callers.
	ListAll(ctx context.Context) ([]models.SubscriptionOverview, error)
	// UpdateClaimStatus sets claim_status on a subscription. Admin-only
	// callers; ErrNotFound if the row is absent.
	UpdateClaimStatus(ctx context.Context, id, status string) error
	// Premium analytics for the admin dashboard.
	ListPremiums(ctx context.Context) ([]models.PremiumSchedule, error)
	CountExpiringBetween(ctx context.Context, from, to time.Time) (int, error)
}
