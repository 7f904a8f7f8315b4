package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/finance"
	"github.com/dafibh/finwise/finwise-backend/internal/notify"
	"github.com/dafibh/finwise/finwise-backend/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ReminderWindowDays is how far ahead bill reminders look
const ReminderWindowDays = 3

// BillReminder is the payload of a bill.due event
type BillReminder struct {
	Upcoming []finance.BillDue `json:"upcoming"`
	Overdue  []finance.BillDue `json:"overdue"`
}

// ReminderService sends bill reminders at each user's preferred hour
type ReminderService struct {
	snapshots *SnapshotService
	publisher websocket.EventPublisher
	mailer    notify.Mailer
	now       func() time.Time
	logger    zerolog.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(snapshots *SnapshotService, publisher websocket.EventPublisher, mailer notify.Mailer) *ReminderService {
	return &ReminderService{
		snapshots: snapshots,
		publisher: publisher,
		mailer:    mailer,
		now:       time.Now,
		logger:    log.With().Str("component", "reminder_service").Logger(),
	}
}

// Remind sends the user's reminder if the current UTC hour matches their
// reminder time and they have unpaid bills due soon or overdue. It reports
// whether a reminder went out.
func (s *ReminderService) Remind(ctx context.Context, user *domain.User) (bool, error) {
	snap, err := s.snapshots.Load(ctx, user.ID)
	if err != nil {
		return false, err
	}
	now := s.now().UTC()
	if snap.Preferences.ReminderHour() != now.Hour() {
		return false, nil
	}

	reminder := BillReminder{
		Upcoming: finance.UpcomingBills(snap.Records.Bills, now, ReminderWindowDays),
		Overdue:  finance.OverdueBills(snap.Records.Bills, now),
	}
	if len(reminder.Upcoming) == 0 && len(reminder.Overdue) == 0 {
		return false, nil
	}

	s.publisher.Publish(user.ID, websocket.BillDue(reminder))

	if snap.Preferences.EmailReminders && user.Email != "" {
		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		msg := notify.BillReminder(user.Email, name, snap.Preferences.Currency, reminder.Upcoming, reminder.Overdue)
		if err := s.mailer.Send(ctx, msg); err != nil {
			return true, fmt.Errorf("send reminder email: %w", err)
		}
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Int("upcoming", len(reminder.Upcoming)).
		Int("overdue", len(reminder.Overdue)).
		Msg("Bill reminder sent")
	return true, nil
}
