package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/services"
)

type fakePlaydateRepo struct {
	playdates map[string]*models.Playdate
	rsvps     map[string]bool // "playdateID/userID"
	rsvpErr   error
}

func newFakePlaydateRepo() *fakePlaydateRepo {
	return &fakePlaydateRepo{
		playdates: make(map[string]*models.Playdate),
		rsvps:     make(map[string]bool),
	}
}

func (f *fakePlaydateRepo) Create(_ context.Context, p *models.Playdate) error {
	p.ID = "playdate-1"
	f.playdates[p.ID] = p
	return nil
}

func (f *fakePlaydateRepo) List(_ context.Context) ([]models.Playdate, error) {
	out := make([]models.Playdate, 0, len(f.playdates))
	for _, p := range f.playdates {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlaydateRepo) GetByID(_ context.Context, id string) (*models.Playdate, error) {
	p, ok := f.playdates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePlaydateRepo) Update(_ context.Context, p *models.Playdate, hostID string) error {
	existing, ok := f.playdates[p.ID]
	if !ok || existing.HostID != hostID {
		return domain.ErrNotFound
	}
	// Status is not host-editable; the store keeps the row's value.
	p.Status = existing.Status
	f.playdates[p.ID] = p
	return nil
}

func (f *fakePlaydateRepo) Delete(_ context.Context, id, hostID string) error {
	existing, ok := f.playdates[id]
	if !ok || existing.HostID != hostID {
		return domain.ErrNotFound
	}
	delete(f.playdates, id)
	return nil
}

func (f *fakePlaydateRepo) RSVP(_ context.Context, playdateID, userID string) error {
	if f.rsvpErr != nil {
		return f.rsvpErr
	}
	key := playdateID + "/" + userID
	if f.rsvps[key] {
		return &domain.ConflictError{Message: "Already joined this playdate.", ResourceType: "rsvp"}
	}
	f.rsvps[key] = true
	return nil
}

func (f *fakePlaydateRepo) ExpirePast(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, p := range f.playdates {
		if p.Status == models.PlaydateActive && p.EventDate.Before(now) {
			p.Status = models.PlaydateExpired
			n++
		}
	}
	return n, nil
}

type fakeNotificationRepo struct {
	created   []models.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	n.ID = "notification-1"
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, _ string) ([]models.Notification, error) {
	return f.created, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, _, _ string) error { return nil }
func (f *fakeNotificationRepo) Delete(_ context.Context, _, _ string) error   { return nil }

func seedPlaydate(repo *fakePlaydateRepo, id, hostID string, eventDate time.Time, status string) {
	repo.playdates[id] = &models.Playdate{
		ID:        id,
		HostID:    hostID,
		Title:     "Park meetup",
		EventDate: eventDate,
		Status:    status,
	}
}

func TestPlaydateRSVPNotifiesHost(t *testing.T) {
	repo := newFakePlaydateRepo()
	notifs := &fakeNotificationRepo{}
	seedPlaydate(repo, "playdate-1", "alice", time.Now().Add(24*time.Hour), models.PlaydateActive)

	svc := NewPlaydateService(repo, notifs, newTestGate(map[string]string{"playdate-1": "alice"}), testLogger())

	bob := models.Principal{ID: "bob", Role: models.RoleUser}
	if err := svc.RSVP(context.Background(), bob, "playdate-1"); err != nil {
		t.Fatalf("RSVP() unexpected error: %v", err)
	}

	if len(notifs.created) != 1 {
		t.Fatalf("RSVP() created %d notifications, want 1", len(notifs.created))
	}
	n := notifs.created[0]
	if n.UserID != "alice" {
		t.Errorf("RSVP() notified %q, want host %q", n.UserID, "alice")
	}
	if n.Type != "rsvp" || n.ReferenceID != "playdate-1" {
		t.Errorf("RSVP() notification = %+v, want type rsvp referencing playdate-1", n)
	}
}

func TestPlaydateRSVPSelfDoesNotNotify(t *testing.T) {
	repo := newFakePlaydateRepo()
	notifs := &fakeNotificationRepo{}
	seedPlaydate(repo, "playdate-1", "alice", time.Now().Add(24*time.Hour), models.PlaydateActive)

	svc := NewPlaydateService(repo, notifs, newTestGate(map[string]string{"playdate-1": "alice"}), testLogger())

	alice := models.Principal{ID: "alice", Role: models.RoleUser}
	if err := svc.RSVP(context.Background(), alice, "playdate-1"); err != nil {
		t.Fatalf("RSVP() unexpected error: %v", err)
	}

	if len(notifs.created) != 0 {
		t.Errorf("RSVP() created %d notifications for the host's own RSVP, want 0", len(notifs.created))
	}
}

func TestPlaydateRSVPRejections(t *testing.T) {
	repo := newFakePlaydateRepo()
	notifs := &fakeNotificationRepo{}
	seedPlaydate(repo, "playdate-1", "alice", time.Now().Add(24*time.Hour), models.PlaydateActive)

	svc := NewPlaydateService(repo, notifs, newTestGate(map[string]string{"playdate-1": "alice"}), testLogger())
	bob := models.Principal{ID: "bob", Role: models.RoleUser}

	if err := svc.RSVP(context.Background(), bob, "playdate-404"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("RSVP() on absent playdate error = %v, want not found", err)
	}

	if err := svc.RSVP(context.Background(), bob, "playdate-1"); err != nil {
		t.Fatalf("first RSVP() unexpected error: %v", err)
	}
	if err := svc.RSVP(context.Background(), bob, "playdate-1"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second RSVP() error = %v, want conflict", err)
	}
}

func TestPlaydateRSVPSurvivesNotificationFailure(t *testing.T) {
	repo := newFakePlaydateRepo()
	notifs := &fakeNotificationRepo{createErr: domain.ErrStoreUnavailable}
	seedPlaydate(repo, "playdate-1", "alice", time.Now().Add(24*time.Hour), models.PlaydateActive)

	svc := NewPlaydateService(repo, notifs, newTestGate(map[string]string{"playdate-1": "alice"}), testLogger())

	bob := models.Principal{ID: "bob", Role: models.RoleUser}
	if err := svc.RSVP(context.Background(), bob, "playdate-1"); err != nil {
		t.Errorf("RSVP() failed on notification error: %v", err)
	}
	if !repo.rsvps["playdate-1/bob"] {
		t.Error("RSVP() was not recorded")
	}
}

func TestPlaydateUpdateClassifiesZeroRows(t *testing.T) {
	repo := newFakePlaydateRepo()
	seedPlaydate(repo, "playdate-1", "alice", time.Now().Add(24*time.Hour), models.PlaydateActive)

	svc := NewPlaydateService(repo, &fakeNotificationRepo{}, newTestGate(map[string]string{"playdate-1": "alice"}), testLogger())

	eventDate := time.Now().Add(48 * time.Hour)
	req := &services.PlaydateRequest{Title: "Beach day", EventDate: &eventDate}

	bob := models.Principal{ID: "bob", Role: models.RoleUser}
	if _, err := svc.Update(context.Background(), bob, "playdate-1", req); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Update() of foreign playdate error = %v, want forbidden", err)
	}

	alice := models.Principal{ID: "alice", Role: models.RoleUser}
	if _, err := svc.Update(context.Background(), alice, "playdate-404", req); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() of absent playdate error = %v, want not found", err)
	}
}

func TestPlaydateUpdateKeepsExpiredStatus(t *testing.T) {
	repo := newFakePlaydateRepo()
	seedPlaydate(repo, "playdate-1", "alice", time.Now().Add(-24*time.Hour), models.PlaydateExpired)

	svc := NewPlaydateService(repo, &fakeNotificationRepo{}, newTestGate(map[string]string{"playdate-1": "alice"}), testLogger())

	eventDate := time.Now().Add(-24 * time.Hour)
	req := &services.PlaydateRequest{Title: "Park meetup (was fun!)", EventDate: &eventDate}

	alice := models.Principal{ID: "alice", Role: models.RoleUser}
	updated, err := svc.Update(context.Background(), alice, "playdate-1", req)
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	if updated.Status != models.PlaydateExpired {
		t.Errorf("Update() status = %q, want %q - editing must not resurrect an expired playdate", updated.Status, models.PlaydateExpired)
	}
	if repo.playdates["playdate-1"].Status != models.PlaydateExpired {
		t.Errorf("stored status = %q, want %q", repo.playdates["playdate-1"].Status, models.PlaydateExpired)
	}
	if repo.playdates["playdate-1"].Title != "Park meetup (was fun!)" {
		t.Error("Update() did not apply the edited title")
	}
}

func TestPlaydateCreateValidation(t *testing.T) {
	svc := NewPlaydateService(newFakePlaydateRepo(), &fakeNotificationRepo{}, newTestGate(nil), testLogger())
	alice := models.Principal{ID: "alice", Role: models.RoleUser}

	eventDate := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name    string
		req     *services.PlaydateRequest
		wantErr bool
	}{
		{"valid", &services.PlaydateRequest{Title: "Park meetup", EventDate: &eventDate}, false},
		{"missing title", &services.PlaydateRequest{EventDate: &eventDate}, true},
		{"missing event date", &services.PlaydateRequest{Title: "Park meetup"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Create(context.Background(), alice, tt.req)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("Create() error = %v, want validation failure", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if got.Status != models.PlaydateActive {
				t.Errorf("Create() status = %q, want %q", got.Status, models.PlaydateActive)
			}
			if got.HostID != "alice" {
				t.Errorf("Create() host = %q, want alice", got.HostID)
			}
		})
	}
}

func TestPlaydateExpirePast(t *testing.T) {
	repo := newFakePlaydateRepo()
	now := time.Now()
	seedPlaydate(repo, "past-active", "alice", now.Add(-2*time.Hour), models.PlaydateActive)
	seedPlaydate(repo, "past-expired", "alice", now.Add(-48*time.Hour), models.PlaydateExpired)
	seedPlaydate(repo, "future", "alice", now.Add(24*time.Hour), models.PlaydateActive)

	svc := NewPlaydateService(repo, &fakeNotificationRepo{}, newTestGate(nil), testLogger())

	expired, err := svc.ExpirePast(context.Background(), now)
	if err != nil {
		t.Fatalf("ExpirePast() unexpected error: %v", err)
	}
	if expired != 1 {
		t.Errorf("ExpirePast() = %d, want 1", expired)
	}
	if repo.playdates["future"].Status != models.PlaydateActive {
		t.Error("ExpirePast() touched a future playdate")
	}

	// A second sweep finds nothing left to expire.
	expired, err = svc.ExpirePast(context.Background(), now)
	if err != nil {
		t.Fatalf("ExpirePast() unexpected error: %v", err)
	}
	if expired != 0 {
		t.Errorf("second ExpirePast() = %d, want 0", expired)
	}
}
