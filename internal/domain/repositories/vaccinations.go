package repositories

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// VaccinationRepository persists vaccinations rows. Ownership is
// transitive through the pet, so scoped operations join pets and
// filter on the pet's user_id in the same statement.
type VaccinationRepository interface {
	Create(ctx context.Context, v *models.Vaccination) error
	GetByID(ctx context.Context, id, ownerID string) (*models.VaccinationWithPet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.VaccinationWithPet, error)
	Update(ctx context.Context, v *models.Vaccination, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
	// ListDueBetween returns the owner's vaccinations with a next due
	// date inside [from, to]. Used by the dashboard.
	ListDueBetween(ctx context.Context, ownerID string, from, to time.Time) ([]models.Vaccination, error)
	// DueForReminder returns rows with a due date inside [from, to)
	// that have not had a reminder sent, joined with owner contact
	// details. Due dates carry arbitrary times of day, so the sweep
	// passes a calendar-day window rather than a single instant.
	DueForReminder(ctx context.Context, from, to time.Time) ([]models.DueVaccination, error)
	// MarkReminderSent flags a row after its reminder email went out,
	// so a re-run of the sweep does not mail the owner twice.
	MarkReminderSent(ctx context.Context, id string) error
}
