package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/services"
)

type stubPlaydates struct {
	services.PlaydateService

	expired    int64
	expireErr  error
	expiredAt  time.Time
	expireRuns int
}

func (s *stubPlaydates) ExpirePast(_ context.Context, now time.Time) (int64, error) {
	s.expireRuns++
	s.expiredAt = now
	return s.expired, s.expireErr
}

type stubVaccRepo struct {
	due    []models.DueVaccination
	dueErr error

	markErr     map[string]error
	marked      []string
	queriedFrom time.Time
	queriedTo   time.Time
}

func (s *stubVaccRepo) Create(_ context.Context, _ *models.Vaccination) error { return nil }
func (s *stubVaccRepo) GetByID(_ context.Context, _, _ string) (*models.VaccinationWithPet, error) {
	return nil, domain.ErrNotFound
}
func (s *stubVaccRepo) ListByOwner(_ context.Context, _ string) ([]models.VaccinationWithPet, error) {
	return nil, nil
}
func (s *stubVaccRepo) Update(_ context.Context, _ *models.Vaccination, _ string) error { return nil }
func (s *stubVaccRepo) Delete(_ context.Context, _, _ string) error                     { return nil }
func (s *stubVaccRepo) ListDueBetween(_ context.Context, _ string, _, _ time.Time) ([]models.Vaccination, error) {
	return nil, nil
}

func (s *stubVaccRepo) DueForReminder(_ context.Context, from, to time.Time) ([]models.DueVaccination, error) {
	s.queriedFrom = from
	s.queriedTo = to
	return s.due, s.dueErr
}

func (s *stubVaccRepo) MarkReminderSent(_ context.Context, id string) error {
	if err := s.markErr[id]; err != nil {
		return err
	}
	s.marked = append(s.marked, id)
	return nil
}

type recordingMailer struct {
	failFor map[string]error
	sentTo  []string
	bodies  []string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if err := m.failFor[to]; err != nil {
		return err
	}
	m.sentTo = append(m.sentTo, to)
	m.bodies = append(m.bodies, body)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dueRow(id, owner, email, vaccine string) models.DueVaccination {
	return models.DueVaccination{
		VaccinationID: id,
		VaccineName:   vaccine,
		NextDueDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		OwnerName:     owner,
		OwnerEmail:    email,
	}
}

func newTestSweeper(playdates *stubPlaydates, vaccs *stubVaccRepo, mailer *recordingMailer, now time.Time) *Sweeper {
	s := NewSweeper(playdates, vaccs, mailer, quietLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestSendVaccinationReminders(t *testing.T) {
	vaccs := &stubVaccRepo{due: []models.DueVaccination{
		dueRow("vacc-1", "Alice", "alice@example.com", "Rabies"),
		dueRow("vacc-2", "Bob", "bob@example.com", "Distemper"),
	}}
	mailer := &recordingMailer{}
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	s := newTestSweeper(&stubPlaydates{}, vaccs, mailer, now)
	s.SendVaccinationReminders(context.Background())

	if len(mailer.sentTo) != 2 {
		t.Fatalf("sweep sent %d mails, want 2", len(mailer.sentTo))
	}
	if mailer.sentTo[0] != "alice@example.com" || mailer.sentTo[1] != "bob@example.com" {
		t.Errorf("sweep mailed %v", mailer.sentTo)
	}
	if len(vaccs.marked) != 2 {
		t.Errorf("sweep marked %d rows sent, want 2", len(vaccs.marked))
	}
	// The window spans the whole calendar day, so a due date with any
	// time of day still gets its reminder.
	startOfDay := now.Truncate(24 * time.Hour)
	if !vaccs.queriedFrom.Equal(startOfDay) {
		t.Errorf("sweep queried from %v, want start of day %v", vaccs.queriedFrom, startOfDay)
	}
	if !vaccs.queriedTo.Equal(startOfDay.Add(24 * time.Hour)) {
		t.Errorf("sweep queried to %v, want start of next day", vaccs.queriedTo)
	}
}

func TestSendVaccinationRemindersSkipsFailedMail(t *testing.T) {
	vaccs := &stubVaccRepo{due: []models.DueVaccination{
		dueRow("vacc-1", "Alice", "bounce@example.com", "Rabies"),
		dueRow("vacc-2", "Bob", "bob@example.com", "Distemper"),
	}}
	mailer := &recordingMailer{failFor: map[string]error{
		"bounce@example.com": errors.New("mailbox unavailable"),
	}}

	s := newTestSweeper(&stubPlaydates{}, vaccs, mailer, time.Now())
	s.SendVaccinationReminders(context.Background())

	// The bounced row must not be marked, so the next sweep retries it.
	if len(vaccs.marked) != 1 || vaccs.marked[0] != "vacc-2" {
		t.Errorf("marked rows = %v, want only vacc-2", vaccs.marked)
	}
	if len(mailer.sentTo) != 1 || mailer.sentTo[0] != "bob@example.com" {
		t.Errorf("sweep mailed %v, want only bob", mailer.sentTo)
	}
}

func TestSendVaccinationRemindersSurvivesMarkFailure(t *testing.T) {
	vaccs := &stubVaccRepo{
		due: []models.DueVaccination{
			dueRow("vacc-1", "Alice", "alice@example.com", "Rabies"),
			dueRow("vacc-2", "Bob", "bob@example.com", "Distemper"),
		},
		markErr: map[string]error{"vacc-1": domain.ErrStoreUnavailable},
	}
	mailer := &recordingMailer{}

	s := newTestSweeper(&stubPlaydates{}, vaccs, mailer, time.Now())
	s.SendVaccinationReminders(context.Background())

	if len(mailer.sentTo) != 2 {
		t.Errorf("sweep sent %d mails, want 2 despite mark failure", len(mailer.sentTo))
	}
	if len(vaccs.marked) != 1 || vaccs.marked[0] != "vacc-2" {
		t.Errorf("marked rows = %v, want only vacc-2", vaccs.marked)
	}
}

func TestSendVaccinationRemindersAbortsOnQueryFailure(t *testing.T) {
	vaccs := &stubVaccRepo{dueErr: domain.ErrStoreUnavailable}
	mailer := &recordingMailer{}

	s := newTestSweeper(&stubPlaydates{}, vaccs, mailer, time.Now())
	s.SendVaccinationReminders(context.Background())

	if len(mailer.sentTo) != 0 {
		t.Errorf("sweep sent %d mails after a failed query, want 0", len(mailer.sentTo))
	}
}

func TestReminderBodyNamesVaccineAndDate(t *testing.T) {
	vaccs := &stubVaccRepo{due: []models.DueVaccination{
		dueRow("vacc-1", "Alice", "alice@example.com", "Rabies"),
	}}
	mailer := &recordingMailer{}

	s := newTestSweeper(&stubPlaydates{}, vaccs, mailer, time.Now())
	s.SendVaccinationReminders(context.Background())

	if len(mailer.bodies) != 1 {
		t.Fatalf("sweep sent %d mails, want 1", len(mailer.bodies))
	}
	body := mailer.bodies[0]
	for _, want := range []string{"Alice", "Rabies", "2025-06-15"} {
		if !strings.Contains(body, want) {
			t.Errorf("reminder body missing %q:\n%s", want, body)
		}
	}
}

func TestExpirePlaydates(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	playdates := &stubPlaydates{expired: 3}

	s := newTestSweeper(playdates, &stubVaccRepo{}, &recordingMailer{}, now)
	s.ExpirePlaydates(context.Background())

	if playdates.expireRuns != 1 {
		t.Errorf("sweep ran ExpirePast %d times, want 1", playdates.expireRuns)
	}
	if !playdates.expiredAt.Equal(now) {
		t.Errorf("sweep expired as of %v, want %v", playdates.expiredAt, now)
	}
}

func TestExpirePlaydatesSurvivesFailure(t *testing.T) {
	playdates := &stubPlaydates{expireErr: domain.ErrStoreUnavailable}

	s := newTestSweeper(playdates, &stubVaccRepo{}, &recordingMailer{}, time.Now())
	s.ExpirePlaydates(context.Background())

	if playdates.expireRuns != 1 {
		t.Errorf("sweep ran ExpirePast %d times, want 1", playdates.expireRuns)
	}
}
