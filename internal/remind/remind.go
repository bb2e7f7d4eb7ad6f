package remind

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Archit-bit/voice-diary-app/internal/auth"
	"github.com/Archit-bit/voice-diary-app/internal/journal"
	"github.com/Archit-bit/voice-diary-app/internal/logger"
)

// RecordChecker reports whether an owner already journaled on a date.
type RecordChecker interface {
	HasRecord(owner, logDate string) (bool, error)
}

// NotifyFunc delivers a reminder to a chat channel.
type NotifyFunc func(chatID int64, message string)

// cronParser is configured for standard 5-field cron expressions
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Reminder nudges users who have a chat binding and no journal entry for
// the current day, on a fixed cron schedule.
type Reminder struct {
	schedule cron.Schedule
	users    *auth.Registry
	records  RecordChecker
	notify   NotifyFunc
	tz       *time.Location
	nextRun  time.Time
}

func New(spec string, users *auth.Registry, records RecordChecker, notify NotifyFunc, tz *time.Location) (*Reminder, error) {
	sched, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule: %w", err)
	}

	return &Reminder{
		schedule: sched,
		users:    users,
		records:  records,
		notify:   notify,
		tz:       tz,
		nextRun:  sched.Next(time.Now().In(tz)),
	}, nil
}

// Run starts the reminder loop.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("reminder stopping")
			return
		case <-ticker.C:
			now := time.Now().In(r.tz)
			if now.Before(r.nextRun) {
				continue
			}

			r.fire(now)
			r.nextRun = r.schedule.Next(now)
		}
	}
}

func (r *Reminder) fire(now time.Time) {
	today := now.Format(journal.DateFormat)

	for _, u := range r.users.Users() {
		if u.TelegramChatID == 0 {
			continue
		}

		has, err := r.records.HasRecord(u.ID, today)
		if err != nil {
			logger.Error("reminder check failed", "owner", u.ID, "error", err)
			continue
		}

		if has {
			continue
		}

		r.notify(u.TelegramChatID, "You haven't journaled today. Send me a voice note whenever you're ready.")
		logger.Info("reminder sent", "owner", u.ID, "date", today)
	}
}
