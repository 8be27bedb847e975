package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// HealthService handles health logs and the weight trend, gated
// through the pet edge.
type HealthService interface {
	AddLog(ctx context.Context, p models.Principal, req *HealthLogRequest) (*models.HealthLog, error)
	ListLogs(ctx context.Context, p models.Principal, petID string) ([]models.HealthLog, error)
	UpdateLog(ctx context.Context, p models.Principal, id string, req *HealthLogRequest) (*models.HealthLog, error)
	DeleteLog(ctx context.Context, p models.Principal, id string) error

	// WeightTrend returns the pet's dated weight samples, oldest first.
	WeightTrend(ctx context.Context, p models.Principal, petID string) ([]models.WeightPoint, error)
}

// HealthLogRequest represents a health log create or update request.
type HealthLogRequest struct {
	PetID       string     `json:"pet_id"`
	Weight      *float64   `json:"weight,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	Symptoms    string     `json:"symptoms,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Date        *time.Time `json:"date"`
}
