package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

// dueWindow is how far ahead the dashboard looks for vaccinations and
// the admin analytics look for expiring subscriptions.
const dueWindow = 7 * 24 * time.Hour

type dashboardService struct {
	userRepo repositories.UserRepository
	petRepo  repositories.PetRepository
	vaccRepo repositories.VaccinationRepository
	apptRepo repositories.AppointmentRepository
	expRepo  repositories.ExpenseRepository
	subRepo  repositories.SubscriptionRepository
	gate     *authz.Gate
	logger   *slog.Logger
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	petRepo repositories.PetRepository,
	vaccRepo repositories.VaccinationRepository,
	apptRepo repositories.AppointmentRepository,
	expRepo repositories.ExpenseRepository,
	subRepo repositories.SubscriptionRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.DashboardService {
	return &dashboardService{
		userRepo: userRepo,
		petRepo:  petRepo,
		vaccRepo: vaccRepo,
		apptRepo: apptRepo,
		expRepo:  expRepo,
		subRepo:  subRepo,
		gate:     gate,
		logger:   logger,
		now:      time.Now,
	}
}

// Overview builds the owner's home screen. Every collection it reads
// is already scoped to the caller; a user with no pets short-circuits
// to the empty state without further queries.
func (s *dashboardService) Overview(ctx context.Context, p models.Principal) (*models.Dashboard, error) {
	dashboard := &models.Dashboard{
		UpcomingVaccinations: []models.Vaccination{},
		UpcomingAppointments: []models.Appointment{},
		MonthlyExpenses:      []models.MonthAmount{},
	}

	petCount, err := s.petRepo.CountByOwner(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	dashboard.TotalPets = petCount
	if petCount == 0 {
		return dashboard, nil
	}

	now := s.now()

	vaccinations, err := s.vaccRepo.ListDueBetween(ctx, p.ID, now, now.Add(dueWindow))
	if err != nil {
		return nil, err
	}
	dashboard.UpcomingVaccinations = vaccinations

	appointments, err := s.apptRepo.ListUpcoming(ctx, p.ID, now)
	if err != nil {
		return nil, err
	}
	dashboard.UpcomingAppointments = appointments

	expenses, err := s.expRepo.ListByOwner(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		dashboard.TotalExpenses += e.Amount
	}
	dashboard.MonthlyExpenses = bucketByMonth(expenses, func(e models.ExpenseWithPet) (time.Time, float64) {
		return e.Date, e.Amount
	})

	return dashboard, nil
}

// AdminAnalytics builds the cross-owner aggregate. Admin only.
func (s *dashboardService) AdminAnalytics(ctx context.Context, p models.Principal) (*models.AdminAnalytics, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourceUser, "", authz.ActionAdminOnly); err != nil {
		return nil, err
	}

	analytics := &models.AdminAnalytics{
		MonthlyRevenue: []models.MonthAmount{},
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	analytics.TotalUsers = users

	pets, err := s.petRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	analytics.TotalPets = pets

	premiums, err := s.subRepo.ListPremiums(ctx)
	if err != nil {
		return nil, err
	}
	analytics.TotalPolicies = len(premiums)
	for _, pr := range premiums {
		analytics.TotalRevenue += pr.Premium
	}
	analytics.MonthlyRevenue = bucketByMonth(premiums, func(pr models.PremiumSchedule) (time.Time, float64) {
		return pr.EndDate, pr.Premium
	})

	now := s.now()
	expiring, err := s.subRepo.CountExpiringBetween(ctx, now, now.Add(dueWindow))
	if err != nil {
		return nil, err
	}
	analytics.ExpiringPolicies = expiring

	return analytics, nil
}

// bucketByMonth sums a money series into per-month totals, oldest
// month first, keyed like "Jan 2026".
func bucketByMonth[T any](items []T, keyed func(T) (time.Time, float64)) []models.MonthAmount {
	totals := make(map[string]float64)
	starts := make(map[string]time.Time)

	for _, item := range items {
		at, amount := keyed(item)
		key := at.Format("Jan 2006")
		totals[key] += amount
		if _, ok := starts[key]; !ok {
			starts[key] = time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}

	months := make([]models.MonthAmount, 0, len(totals))
	for key, amount := range totals {
		months = append(months, models.MonthAmount{Month: key, Amount: amount})
	}
	sort.Slice(months, func(i, j int) bool {
		return starts[months[i].Month].Before(starts[months[j].Month])
	})

	return months
}
