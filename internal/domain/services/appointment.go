package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// AppointmentService handles vet appointment CRUD, gated through the pet edge.
type AppointmentService interface {
	Create(ctx context.Context, p models.Principal, req *AppointmentRequest) (*models.Appointment, error)
	Get(ctx context.Context, p models.Principal, id string) (*models.AppointmentWithPet, error)
	List(ctx context.Context, p models.Principal) ([]models.AppointmentWithPet, error)
	Update(ctx context.Context, p models.Principal, id string, req *AppointmentRequest) (*models.Appointment, error)
	Delete(ctx context.Context, p models.Principal, id string) error
}

// AppointmentRequest represents an appointment create or update request.
type AppointmentRequest struct {
	PetID           string     `json:"pet_id"`
	VetName         string     `json:"vet_name,omitempty"`
	ClinicName      string     `json:"clinic_name,omitempty"`
	AppointmentDate *time.Time `json:"appointment_date"`
	Purpose         string     `json:"purpose,omitempty"`
	ReminderDate    *time.Time `json:"reminder_date,omitempty"`
	Status          string     `json:"status,omitempty"` // defaults to upcoming
	Notes           string     `json:"notes,omitempty"`
}
