package usecase

import (
	"context"
	"log/slog"
	"time"

	"identity-service/app/metrics"
	"identity-service/app/port"
)

// Janitor periodically removes expired sessions and one-time codes.
// Expiry checks on the read path already exclude stale rows; the
// janitor only keeps the tables from growing without bound.
type Janitor struct {
	sessions port.SessionRepository
	otps     port.OtpRepository
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewJanitor creates a cleanup loop with the given sweep interval.
func NewJanitor(sessions port.SessionRepository, otps port.OtpRepository, interval time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		sessions: sessions,
		otps:     otps,
		interval: interval,
		logger:   logger.With("component", "janitor"),
		now:      time.Now,
	}
}

// Run sweeps on every tick until the context is canceled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info("cleanup loop started", "interval", j.interval)

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("cleanup loop stopped")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep removes everything expired at the current instant.
func (j *Janitor) Sweep(ctx context.Context) {
	now := j.now()

	sessions, err := j.sessions.DeleteExpired(ctx, now)
	if err != nil {
		j.logger.Error("failed to sweep expired sessions", "error", err)
	} else if sessions > 0 {
		metrics.RecordCleanup("identification_sessions", sessions)
		j.logger.Info("expired sessions removed", "count", sessions)
	}

	otps, err := j.otps.DeleteExpired(ctx, now)
	if err != nil {
		j.logger.Error("failed to sweep expired otp records", "error", err)
	} else if otps > 0 {
		metrics.RecordCleanup("otp_records", otps)
		j.logger.Info("expired otp records removed", "count", otps)
	}
}
