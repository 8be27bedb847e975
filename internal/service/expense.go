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

type expenseService struct {
	expenseRepo repositories.ExpenseRepository
	gate        *authz.Gate
	logger      *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		gate:        gate,
		logger:      logger,
	}
}

// Create records an expense against one of the caller's pets.
func (s *expenseService) Create(ctx context.Context, p models.Principal, req *services.ExpenseRequest) (*models.Expense, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.gate.AuthorizeParent(ctx, p, authz.ResourceExpense, req.PetID); err != nil {
		return nil, err
	}

	e := &models.Expense{
		PetID:       req.PetID,
		Category:    req.Category,
		Amount:      *req.Amount,
		Description: req.Description,
		Date:        *req.Date,
	}

	if err := s.expenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded", "id", e.ID, "pet", e.PetID, "amount", e.Amount)

	return e, nil
}

func (s *expenseService) Get(ctx context.Context, p models.Principal, id string) (*models.ExpenseWithPet, error) {
	e, err := s.expenseRepo.GetByID(ctx, id, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceExpense, id)
		}
		return nil, err
	}
	return e, nil
}

func (s *expenseService) List(ctx context.Context, p models.Principal) ([]models.ExpenseWithPet, error) {
	return s.expenseRepo.ListByOwner(ctx, p.ID)
}

func (s *expenseService) Update(ctx context.Context, p models.Principal, id string, req *services.ExpenseRequest) (*models.Expense, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	e := &models.Expense{
		ID:          id,
		Category:    req.Category,
		Amount:      *req.Amount,
		Description: req.Description,
		Date:        *req.Date,
	}

	if err := s.expenseRepo.Update(ctx, e, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceExpense, id)
		}
		return nil, err
	}

	return e, nil
}

func (s *expenseService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.expenseRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceExpense, id)
		}
		return err
	}

	s.logger.Info("expense deleted", "id", id, "owner", p.ID)

	return nil
}

func (s *expenseService) validateRequest(req *services.ExpenseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.PetID, validation.Required),
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Amount, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&req.Date, validation.Required),
	)
}
