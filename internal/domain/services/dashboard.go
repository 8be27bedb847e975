package services

import (
	"context"

	"pawtrack/internal/domain/models"
)

// DashboardService builds the aggregate views. Every underlying
// collection is scoped to the caller before aggregation.
type DashboardService interface {
	// Overview is the owner's home screen: pet count, vaccinations due
	// within 7 days, upcoming appointments, total and monthly expenses.
	Overview(ctx context.Context, p models.Principal) (*models.Dashboard, error)

	// AdminAnalytics is the admin-only cross-owner aggregate.
	AdminAnalytics(ctx context.Context, p models.Principal) (*models.AdminAnalytics, error)
}
