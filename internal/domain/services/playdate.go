package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// PlaydateService handles playdates and RSVPs. Listings are public to
// authenticated users; mutations are host-only.
type PlaydateService interface {
	Create(ctx context.Context, p models.Principal, req *PlaydateRequest) (*models.Playdate, error)
	List(ctx context.Context) ([]models.Playdate, error)
	Update(ctx context.Context, p models.Principal, id string, req *PlaydateRequest) (*models.Playdate, error)
	Delete(ctx context.Context, p models.Principal, id string) error

	// RSVP joins a playdate and notifies the host, unless the host is
	// joining their own event. Joining twice yields a ConflictError.
	RSVP(ctx context.Context, p models.Principal, playdateID string) error

	// ExpirePast transitions past-dated active playdates to expired and
	// returns how many rows changed. Called by the hourly sweep.
	ExpirePast(ctx context.Context, now time.Time) (int64, error)
}

// PlaydateRequest represents a playdate create or update request.
type PlaydateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	EventDate   *time.Time `json:"event_date"`
}
