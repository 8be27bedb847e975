package repositories

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// AppointmentRepository persists vet_appointments rows, owned
// transitively through the pet.
type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id, ownerID string) (*models.AppointmentWithPet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.AppointmentWithPet, error)
	Update(ctx context.Context, a *models.Appointment, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
	// ListUpcoming returns the owner's appointments on or after from,
	// soonest first. Used by the dashboard.
	ListUpcoming(ctx context.Context, ownerID string, from time.Time) ([]models.Appointment, error)
}
