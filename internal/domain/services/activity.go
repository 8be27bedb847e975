package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// Summary periods for activity reports.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// ActivityService handles activity CRUD and the summary report, gated
// through the pet edge.
type ActivityService interface {
	Create(ctx context.Context, p models.Principal, req *ActivityRequest) (*models.Activity, error)
	List(ctx context.Context, p models.Principal, petID string) ([]models.Activity, error)
	Update(ctx context.Context, p models.Principal, id string, req *ActivityRequest) (*models.Activity, error)
	Delete(ctx context.Context, p models.Principal, id string) error

	// Summary aggregates the pet's activities over the trailing week or
	// month, with per-type counters and total duration.
	Summary(ctx context.Context, p models.Principal, petID, period string) (*models.ActivityReport, error)
}

// ActivityRequest represents an activity create or update request.
type ActivityRequest struct {
	PetID    string     `json:"pet_id"`
	Type     string     `json:"type"`
	Duration *int       `json:"duration,omitempty"`
	Date     *time.Time `json:"date"`
	Notes    string     `json:"notes,omitempty"`
}
