package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

type insuranceService struct {
	policyRepo repositories.PolicyRepository
	subRepo    repositories.SubscriptionRepository
	gate       *authz.Gate
	logger     *slog.Logger
}

// NewInsuranceService creates a new insurance service
func NewInsuranceService(
	policyRepo repositories.PolicyRepository,
	subRepo repositories.SubscriptionRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.InsuranceService {
	return &insuranceService{
		policyRepo: policyRepo,
		subRepo:    subRepo,
		gate:       gate,
		logger:     logger,
	}
}

// CreatePolicy adds a catalog policy. Admin only.
func (s *insuranceService) CreatePolicy(ctx context.Context, p models.Principal, req *services.PolicyRequest) (*models.Policy, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourceSubscription, "", authz.ActionAdminOnly); err != nil {
		return nil, err
	}
	if err := s.validatePolicyRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	policy := &models.Policy{
		ProviderName:   req.ProviderName,
		PolicyName:     req.PolicyName,
		PremiumAmount:  *req.PremiumAmount,
		CoverageAmount: *req.CoverageAmount,
		Description:    req.Description,
	}

	if err := s.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}

	s.logger.Info("policy created", "id", policy.ID, "by", p.ID)

	return policy, nil
}

// ListPolicies returns the catalog. Any authenticated user may browse it.
func (s *insuranceService) ListPolicies(ctx context.Context) ([]models.Policy, error) {
	return s.policyRepo.List(ctx)
}

// UpdatePolicy rewrites a catalog policy. Admin only.
func (s *insuranceService) UpdatePolicy(ctx context.Context, p models.Principal, id string, req *services.PolicyRequest) (*models.Policy, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourceSubscription, id, authz.ActionAdminOnly); err != nil {
		return nil, err
	}
	if err := s.validatePolicyRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	policy := &models.Policy{
		ID:             id,
		ProviderName:   req.ProviderName,
		PolicyName:     req.PolicyName,
		PremiumAmount:  *req.PremiumAmount,
		CoverageAmount: *req.CoverageAmount,
		Description:    req.Description,
	}

	if err := s.policyRepo.Update(ctx, policy); err != nil {
		return nil, err
	}

	return policy, nil
}

// DeletePolicy removes a catalog policy. Admin only.
func (s *insuranceService) DeletePolicy(ctx context.Context, p models.Principal, id string) error {
	if err := s.gate.Authorize(ctx, p, authz.ResourceSubscription, id, authz.ActionAdminOnly); err != nil {
		return err
	}

	if err := s.policyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("policy deleted", "id", id, "by", p.ID)

	return nil
}

// Subscribe enrolls one of the caller's pets in a policy. The pet
// edge is gated before the insert; claim status starts pending.
func (s *insuranceService) Subscribe(ctx context.Context, p models.Principal, req *services.SubscribeRequest) (*models.Subscription, error) {
	if err := s.validateSubscribeRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.gate.AuthorizeParent(ctx, p, authz.ResourceSubscription, req.PetID); err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		PetID:            req.PetID,
		PolicyID:         req.PolicyID,
		PolicyNumber:     req.PolicyNumber,
		StartDate:        *req.StartDate,
		EndDate:          *req.EndDate,
		ClaimStatus:      models.ClaimPending,
		EmergencyContact: req.EmergencyContact,
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("pet insured", "id", sub.ID, "pet", sub.PetID, "policy", sub.PolicyID)

	return sub, nil
}

// ListByPet returns a pet's subscriptions after gating the pet.
func (s *insuranceService) ListByPet(ctx context.Context, p models.Principal, petID string) ([]models.SubscriptionDetail, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourcePet, petID, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.subRepo.ListByPet(ctx, petID)
}

// ListAll returns every subscription with pet and owner contact. Admin only.
func (s *insuranceService) ListAll(ctx context.Context, p models.Principal) ([]models.SubscriptionOverview, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourceSubscription, "", authz.ActionAdminOnly); err != nil {
		return nil, err
	}
	return s.subRepo.ListAll(ctx)
}

// UpdateClaimStatus transitions a claim. Admin only.
func (s *insuranceService) UpdateClaimStatus(ctx context.Context, p models.Principal, id, status string) error {
	if err := s.gate.Authorize(ctx, p, authz.ResourceSubscription, id, authz.ActionAdminOnly); err != nil {
		return err
	}

	if err := validation.Validate(status, validation.Required, validation.In(
		models.ClaimPending,
		models.ClaimApproved,
		models.ClaimRejected,
	)); err != nil {
		return fmt.Errorf("%w: claim_status %v", domain.ErrValidation, err)
	}

	if err := s.subRepo.UpdateClaimStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("subscription %s: %w", id, domain.ErrNotFound)
		}
		return err
	}

	s.logger.Info("claim status updated", "id", id, "status", status, "by", p.ID)

	return nil
}

func (s *insuranceService) validatePolicyRequest(req *services.PolicyRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ProviderName, validation.Required),
		validation.Field(&req.PolicyName, validation.Required),
		validation.Field(&req.PremiumAmount, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&req.CoverageAmount, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

func (s *insuranceService) validateSubscribeRequest(req *services.SubscribeRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.PetID, validation.Required),
		validation.Field(&req.PolicyID, validation.Required),
		validation.Field(&req.PolicyNumber, validation.Required),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
}
