package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
)

type fakePetRepo struct {
	countByOwner int
	count        int
}

func (f *fakePetRepo) Create(_ context.Context, _ *models.Pet) error { return nil }
func (f *fakePetRepo) GetByID(_ context.Context, _, _ string) (*models.Pet, error) {
	return nil, domain.ErrNotFound
}
func (f *fakePetRepo) List(_ context.Context, _ string) ([]models.Pet, error) { return nil, nil }
func (f *fakePetRepo) Update(_ context.Context, _ *models.Pet) error          { return nil }
func (f *fakePetRepo) Delete(_ context.Context, _, _ string) error            { return nil }
func (f *fakePetRepo) CountByOwner(_ context.Context, _ string) (int, error) {
	return f.countByOwner, nil
}
func (f *fakePetRepo) Count(_ context.Context) (int, error) { return f.count, nil }

type fakeVaccinationRepo struct {
	due    []models.Vaccination
	called bool
}

func (f *fakeVaccinationRepo) Create(_ context.Context, _ *models.Vaccination) error { return nil }
func (f *fakeVaccinationRepo) GetByID(_ context.Context, _, _ string) (*models.VaccinationWithPet, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeVaccinationRepo) ListByOwner(_ context.Context, _ string) ([]models.VaccinationWithPet, error) {
	return nil, nil
}
func (f *fakeVaccinationRepo) Update(_ context.Context, _ *models.Vaccination, _ string) error {
	return nil
}
func (f *fakeVaccinationRepo) Delete(_ context.Context, _, _ string) error { return nil }
func (f *fakeVaccinationRepo) ListDueBetween(_ context.Context, _ string, _, _ time.Time) ([]models.Vaccination, error) {
	f.called = true
	return f.due, nil
}
func (f *fakeVaccinationRepo) DueForReminder(_ context.Context, _, _ time.Time) ([]models.DueVaccination, error) {
	return nil, nil
}
func (f *fakeVaccinationRepo) MarkReminderSent(_ context.Context, _ string) error { return nil }

type fakeAppointmentRepo struct {
	upcoming []models.Appointment
	called   bool
}

func (f *fakeAppointmentRepo) Create(_ context.Context, _ *models.Appointment) error { return nil }
func (f *fakeAppointmentRepo) GetByID(_ context.Context, _, _ string) (*models.AppointmentWithPet, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeAppointmentRepo) ListByOwner(_ context.Context, _ string) ([]models.AppointmentWithPet, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Update(_ context.Context, _ *models.Appointment, _ string) error {
	return nil
}
func (f *fakeAppointmentRepo) Delete(_ context.Context, _, _ string) error { return nil }
func (f *fakeAppointmentRepo) ListUpcoming(_ context.Context, _ string, _ time.Time) ([]models.Appointment, error) {
	f.called = true
	return f.upcoming, nil
}

type fakeExpenseRepo struct {
	expenses []models.ExpenseWithPet
	called   bool
}

func (f *fakeExpenseRepo) Create(_ context.Context, _ *models.Expense) error { return nil }
func (f *fakeExpenseRepo) GetByID(_ context.Context, _, _ string) (*models.ExpenseWithPet, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeExpenseRepo) ListByOwner(_ context.Context, _ string) ([]models.ExpenseWithPet, error) {
	f.called = true
	return f.expenses, nil
}
func (f *fakeExpenseRepo) Update(_ context.Context, _ *models.Expense, _ string) error { return nil }
func (f *fakeExpenseRepo) Delete(_ context.Context, _, _ string) error                 { return nil }

type fakeSubscriptionRepo struct {
	premiums []models.PremiumSchedule
	expiring int
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, _ *models.Subscription) error { return nil }
func (f *fakeSubscriptionRepo) ListByPet(_ context.Context, _ string) ([]models.SubscriptionDetail, error) {
	return nil, nil
}
func (f *fakeSubscriptionRepo) ListAll(_ context.Context) ([]models.SubscriptionOverview, error) {
	return nil, nil
}
func (f *fakeSubscriptionRepo) UpdateClaimStatus(_ context.Context, _, _ string) error { return nil }
func (f *fakeSubscriptionRepo) ListPremiums(_ context.Context) ([]models.PremiumSchedule, error) {
	return f.premiums, nil
}
func (f *fakeSubscriptionRepo) CountExpiringBetween(_ context.Context, _, _ time.Time) (int, error) {
	return f.expiring, nil
}

func expenseOn(date time.Time, amount float64) models.ExpenseWithPet {
	return models.ExpenseWithPet{
		Expense: models.Expense{Amount: amount, Date: date},
	}
}

func newDashboardFixture(pets *fakePetRepo, vaccs *fakeVaccinationRepo, appts *fakeAppointmentRepo, exps *fakeExpenseRepo, subs *fakeSubscriptionRepo) *dashboardService {
	return &dashboardService{
		userRepo: newFakeUserRepo(),
		petRepo:  pets,
		vaccRepo: vaccs,
		apptRepo: appts,
		expRepo:  exps,
		subRepo:  subs,
		gate:     newTestGate(nil),
		logger:   testLogger(),
		now:      func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestOverviewEmptyState(t *testing.T) {
	vaccs := &fakeVaccinationRepo{}
	appts := &fakeAppointmentRepo{}
	exps := &fakeExpenseRepo{}
	svc := newDashboardFixture(&fakePetRepo{countByOwner: 0}, vaccs, appts, exps, &fakeSubscriptionRepo{})

	alice := models.Principal{ID: "alice", Role: models.RoleUser}
	dashboard, err := svc.Overview(context.Background(), alice)
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}

	if dashboard.TotalPets != 0 {
		t.Errorf("Overview() total pets = %d, want 0", dashboard.TotalPets)
	}
	// Collections must be empty slices, not nil, so the JSON renders
	// [] instead of null.
	if dashboard.UpcomingVaccinations == nil || dashboard.UpcomingAppointments == nil || dashboard.MonthlyExpenses == nil {
		t.Error("Overview() empty state has nil collections")
	}
	// With no pets there is nothing to aggregate; the other stores are
	// not consulted at all.
	if vaccs.called || appts.called || exps.called {
		t.Error("Overview() queried care stores for a user with no pets")
	}
}

func TestOverviewAggregates(t *testing.T) {
	vaccs := &fakeVaccinationRepo{due: []models.Vaccination{{ID: "vacc-1"}}}
	appts := &fakeAppointmentRepo{upcoming: []models.Appointment{{ID: "appt-1"}}}
	exps := &fakeExpenseRepo{expenses: []models.ExpenseWithPet{
		expenseOn(time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), 40),
		expenseOn(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), 10),
		expenseOn(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 25),
	}}
	svc := newDashboardFixture(&fakePetRepo{countByOwner: 2}, vaccs, appts, exps, &fakeSubscriptionRepo{})

	alice := models.Principal{ID: "alice", Role: models.RoleUser}
	dashboard, err := svc.Overview(context.Background(), alice)
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}

	if dashboard.TotalPets != 2 {
		t.Errorf("Overview() total pets = %d, want 2", dashboard.TotalPets)
	}
	if len(dashboard.UpcomingVaccinations) != 1 || len(dashboard.UpcomingAppointments) != 1 {
		t.Errorf("Overview() upcoming = %d vaccinations / %d appointments, want 1/1",
			len(dashboard.UpcomingVaccinations), len(dashboard.UpcomingAppointments))
	}
	if dashboard.TotalExpenses != 75 {
		t.Errorf("Overview() total expenses = %v, want 75", dashboard.TotalExpenses)
	}

	want := []models.MonthAmount{
		{Month: "May 2025", Amount: 50},
		{Month: "Jun 2025", Amount: 25},
	}
	if len(dashboard.MonthlyExpenses) != len(want) {
		t.Fatalf("Overview() monthly buckets = %d, want %d", len(dashboard.MonthlyExpenses), len(want))
	}
	for i, got := range dashboard.MonthlyExpenses {
		if got != want[i] {
			t.Errorf("Overview() bucket %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestAdminAnalytics(t *testing.T) {
	subs := &fakeSubscriptionRepo{
		premiums: []models.PremiumSchedule{
			{EndDate: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), Premium: 20},
			{EndDate: time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC), Premium: 30},
			{EndDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Premium: 50},
		},
		expiring: 2,
	}
	svc := newDashboardFixture(&fakePetRepo{count: 7}, &fakeVaccinationRepo{}, &fakeAppointmentRepo{}, &fakeExpenseRepo{}, subs)

	admin := models.Principal{ID: "root", Role: models.RoleAdmin}
	analytics, err := svc.AdminAnalytics(context.Background(), admin)
	if err != nil {
		t.Fatalf("AdminAnalytics() unexpected error: %v", err)
	}

	if analytics.TotalPets != 7 {
		t.Errorf("AdminAnalytics() total pets = %d, want 7", analytics.TotalPets)
	}
	if analytics.TotalPolicies != 3 {
		t.Errorf("AdminAnalytics() total policies = %d, want 3", analytics.TotalPolicies)
	}
	if analytics.TotalRevenue != 100 {
		t.Errorf("AdminAnalytics() total revenue = %v, want 100", analytics.TotalRevenue)
	}
	if analytics.ExpiringPolicies != 2 {
		t.Errorf("AdminAnalytics() expiring = %d, want 2", analytics.ExpiringPolicies)
	}

	want := []models.MonthAmount{
		{Month: "Jul 2025", Amount: 50},
		{Month: "Aug 2025", Amount: 50},
	}
	if len(analytics.MonthlyRevenue) != len(want) {
		t.Fatalf("AdminAnalytics() monthly buckets = %d, want %d", len(analytics.MonthlyRevenue), len(want))
	}
	for i, got := range analytics.MonthlyRevenue {
		if got != want[i] {
			t.Errorf("AdminAnalytics() bucket %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestAdminAnalyticsRejectsNonAdmin(t *testing.T) {
	svc := newDashboardFixture(&fakePetRepo{}, &fakeVaccinationRepo{}, &fakeAppointmentRepo{}, &fakeExpenseRepo{}, &fakeSubscriptionRepo{})

	alice := models.Principal{ID: "alice", Role: models.RoleUser}
	if _, err := svc.AdminAnalytics(context.Background(), alice); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("AdminAnalytics() error = %v, want forbidden", err)
	}
}

func TestBucketByMonthOrdersChronologically(t *testing.T) {
	items := []models.PremiumSchedule{
		{EndDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Premium: 1},
		{EndDate: time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC), Premium: 2},
		{EndDate: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), Premium: 3},
		{EndDate: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), Premium: 4},
	}

	got := bucketByMonth(items, func(p models.PremiumSchedule) (time.Time, float64) {
		return p.EndDate, p.Premium
	})

	want := []models.MonthAmount{
		{Month: "Feb 2025", Amount: 3},
		{Month: "Dec 2025", Amount: 2},
		{Month: "Jan 2026", Amount: 5},
	}
	if len(got) != len(want) {
		t.Fatalf("bucketByMonth() = %d buckets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucketByMonth() bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
