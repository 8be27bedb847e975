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

type appointmentService struct {
	apptRepo repositories.AppointmentRepository
	gate     *authz.Gate
	logger   *slog.Logger
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	apptRepo repositories.AppointmentRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.AppointmentService {
	return &appointmentService{
		apptRepo: apptRepo,
		gate:     gate,
		logger:   logger,
	}
}

// Create books an appointment for one of the caller's pets. Status
// defaults to upcoming.
func (s *appointmentService) Create(ctx context.Context, p models.Principal, req *services.AppointmentRequest) (*models.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.gate.AuthorizeParent(ctx, p, authz.ResourceAppointment, req.PetID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.AppointmentUpcoming
	}

	a := &models.Appointment{
		PetID:           req.PetID,
		VetName:         req.VetName,
		ClinicName:      req.ClinicName,
		AppointmentDate: *req.AppointmentDate,
		Purpose:         req.Purpose,
		ReminderDate:    req.ReminderDate,
		Status:          status,
		Notes:           req.Notes,
	}

	if err := s.apptRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("appointment created", "id", a.ID, "pet", a.PetID)

	return a, nil
}

func (s *appointmentService) Get(ctx context.Context, p models.Principal, id string) (*models.AppointmentWithPet, error) {
	a, err := s.apptRepo.GetByID(ctx, id, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceAppointment, id)
		}
		return nil, err
	}
	return a, nil
}

func (s *appointmentService) List(ctx context.Context, p models.Principal) ([]models.AppointmentWithPet, error) {
	return s.apptRepo.ListByOwner(ctx, p.ID)
}

func (s *appointmentService) Update(ctx context.Context, p models.Principal, id string, req *services.AppointmentRequest) (*models.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	status := req.Status
	if status == "" {
		status = models.AppointmentUpcoming
	}

	a := &models.Appointment{
		ID:              id,
		VetName:         req.VetName,
		ClinicName:      req.ClinicName,
		AppointmentDate: *req.AppointmentDate,
		Purpose:         req.Purpose,
		ReminderDate:    req.ReminderDate,
		Status:          status,
		Notes:           req.Notes,
	}

	if err := s.apptRepo.Update(ctx, a, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceAppointment, id)
		}
		return nil, err
	}

	return a, nil
}

func (s *appointmentService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.apptRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceAppointment, id)
		}
		return err
	}

	s.logger.Info("appointment deleted", "id", id, "owner", p.ID)

	return nil
}

func (s *appointmentService) validateRequest(req *services.AppointmentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.PetID, validation.Required),
		validation.Field(&req.AppointmentDate, validation.Required),
		validation.Field(&req.Status, validation.In(
			models.AppointmentUpcoming,
			models.AppointmentCompleted,
			models.AppointmentCancelled,
		)),
	)
}
