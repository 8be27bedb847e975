package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// InsuranceService handles the policy catalog (admin) and pet
// subscriptions (owner-gated through the pet edge).
type InsuranceService interface {
	// Policy catalog, admin only.
	CreatePolicy(ctx context.Context, p models.Principal, req *PolicyRequest) (*models.Policy, error)
	ListPolicies(ctx context.Context) ([]models.Policy, error)
	UpdatePolicy(ctx context.Context, p models.Principal, id string, req *PolicyRequest) (*models.Policy, error)
	DeletePolicy(ctx context.Context, p models.Principal, id string) error

	// Subscribe enrolls a pet in a policy. The pet must belong to the
	// caller; claim status starts pending.
	Subscribe(ctx context.Context, p models.Principal, req *SubscribeRequest) (*models.Subscription, error)
	ListByPet(ctx context.Context, p models.Principal, petID string) ([]models.SubscriptionDetail, error)

	// Admin-only: every subscription, and claim status transitions.
	ListAll(ctx context.Context, p models.Principal) ([]models.SubscriptionOverview, error)
	UpdateClaimStatus(ctx context.Context, p models.Principal, id, status string) error
}

// PolicyRequest represents a policy create or update request.
type PolicyRequest struct {
	ProviderName   string   `json:"provider_name"`
	PolicyName     string   `json:"policy_name"`
	PremiumAmount  *float64 `json:"premium_amount"`
	CoverageAmount *float64 `json:"coverage_amount"`
	Description    string   `json:"description,omitempty"`
}

// SubscribeRequest represents a subscription request.
type SubscribeRequest struct {
	PetID            string     `json:"pet_id"`
	PolicyID         string     `json:"policy_id"`
	PolicyNumber     string     `json:"policy_number"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
}
