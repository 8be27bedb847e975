package repositories

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// PlaydateRepository persists playdates and their RSVPs. Playdates
// are owned directly by host_id but listed publicly.
type PlaydateRepository interface {
	Create(ctx context.Context, p *models.Playdate) error
	// List returns all playdates ordered by event date ascending.
	List(ctx context.Context) ([]models.Playdate, error)
	// GetByID is unscoped: anyone may view a playdate to RSVP.
	GetByID(ctx context.Context, id string) (*models.Playdate, error)
	Update(ctx context.Context, p *models.Playdate, hostID string) error
	Delete(ctx context.Context, id, hostID string) error

	// RSVP records a user joining a playdate. A duplicate RSVP yields
	// a ConflictError; a missing playdate yields ErrNotFound.
	RSVP(ctx context.Context, playdateID, userID string) error

	// ExpirePast transitions active playdates whose event date has
	// passed to expired, returning how many rows changed. The single
	// conditional UPDATE makes the transition exactly-once no matter
	// how often the sweep runs.
	ExpirePast(ctx context.Context, now time.Time) (int64, error)
}
