package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/robfig/cron/v3"
)

// Maintenance runs the background housekeeping jobs: nightly audit log
// retention and hourly stale-ticket ageing.
type Maintenance struct {
	Logs    *repo.LogRepo
	Tickets *repo.TicketRepo

	// RetentionDays is how long log entries are kept.
	RetentionDays int
	// StaleHours is the age after which an OPEN ticket is marked STALE.
	StaleHours int

	cron *cron.Cron
}

// Start registers the jobs and starts the cron loop. Call Stop to shut down.
func (m *Maintenance) Start() error {
	m.cron = cron.New()

	// Log retention runs nightly, off-peak.
	if _, err := m.cron.AddFunc("0 3 * * *", m.purgeLogs); err != nil {
		return err
	}
	if _, err := m.cron.AddFunc("@hourly", m.ageTickets); err != nil {
		return err
	}

	m.cron.Start()
	slog.Info("maintenance scheduler started",
		"retention_days", m.RetentionDays,
		"stale_hours", m.StaleHours)
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (m *Maintenance) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
}

func (m *Maintenance) purgeLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -m.RetentionDays)
	n, err := m.Logs.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("log retention purge failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("log retention purge", "removed", n, "cutoff", cutoff)
	}
}

func (m *Maintenance) ageTickets() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-time.Duration(m.StaleHours) * time.Hour)
	n, err := m.Tickets.MarkStaleOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("stale ticket sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("stale ticket sweep", "marked", n, "cutoff", cutoff)
	}
}
