// Package jobs runs the background sweeps off the request path: the
// hourly playdate expiry and the daily vaccination reminder mail.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
	"pawtrack/internal/mail"
)

// Sweep schedules.
const (
	playdateExpirySchedule      = "0 * * * *" // hourly on the hour
	vaccinationReminderSchedule = "0 9 * * *" // daily at 09:00
)

// Sweeper owns the cron scheduler and the sweep implementations.
type Sweeper struct {
	cron      *cron.Cron
	playdates services.PlaydateService
	vaccRepo  repositories.VaccinationRepository
	mailer    mail.Mailer
	logger    *slog.Logger
	now       func() time.Time
}

// NewSweeper creates a sweeper for both background jobs.
func NewSweeper(
	playdates services.PlaydateService,
	vaccRepo repositories.VaccinationRepository,
	mailer mail.Mailer,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		cron:      cron.New(),
		playdates: playdates,
		vaccRepo:  vaccRepo,
		mailer:    mailer,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers both sweeps and starts the scheduler.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(playdateExpirySchedule, func() {
		s.ExpirePlaydates(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule playdate expiry: %w", err)
	}

	if _, err := s.cron.AddFunc(vaccinationReminderSchedule, func() {
		s.SendVaccinationReminders(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule vaccination reminders: %w", err)
	}

	s.cron.Start()
	s.logger.Info("background sweeps started")
	return nil
}

// Stop stops the scheduler, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("background sweeps stopped")
}

// ExpirePlaydates transitions past-dated active playdates to expired.
// The transition is a single conditional update, so overlapping or
// repeated sweeps never expire the same playdate twice.
func (s *Sweeper) ExpirePlaydates(ctx context.Context) {
	expired, err := s.playdates.ExpirePast(ctx, s.now())
	if err != nil {
		s.logger.Error("playdate expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		s.logger.Info("playdates expired", "count", expired)
	}
}

// SendVaccinationReminders mails owners whose pets have a vaccination
// due today. Each row is marked sent only after its mail goes out, and
// a per-row failure is logged and skipped so one bad address cannot
// abort the sweep.
func (s *Sweeper) SendVaccinationReminders(ctx context.Context) {
	// Due dates carry whatever time of day the client submitted, so the
	// sweep asks for the whole calendar day, not a single instant.
	today := s.now().Truncate(24 * time.Hour)

	due, err := s.vaccRepo.DueForReminder(ctx, today, today.Add(24*time.Hour))
	if err != nil {
		s.logger.Error("vaccination reminder sweep failed", "error", err)
		return
	}

	sent := 0
	for _, d := range due {
		subject := "Vaccination Reminder"
		body := fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder that the %s vaccination is due on %s.\n\nPawTrack",
			d.OwnerName, d.VaccineName, d.NextDueDate.Format("2006-01-02"),
		)

		if err := s.mailer.Send(d.OwnerEmail, subject, body); err != nil {
			s.logger.Warn("reminder mail failed",
				"vaccination", d.VaccinationID,
				"error", err,
			)
			continue
		}

		if err := s.vaccRepo.MarkReminderSent(ctx, d.VaccinationID); err != nil {
			s.logger.Warn("mark reminder sent failed",
				"vaccination", d.VaccinationID,
				"error", err,
			)
			continue
		}
		sent++
	}

	if len(due) > 0 {
		s.logger.Info("vaccination reminders swept", "due", len(due), "sent", sent)
	}
}
