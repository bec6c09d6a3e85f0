package cron

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops expired entries and reports how many were removed
type Sweeper interface {
	Sweep() int
}

// TokenSweepJob purges expired revocations and reset tokens from an in-memory token store.
// Redis expires keys itself and needs no job.
func TokenSweepJob(store Sweeper, interval time.Duration) Job {
	return Job{
		Name:     "token_sweep",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			if removed := store.Sweep(); removed > 0 {
				slog.Debug("Expired tokens removed", "count", removed)
			}
			return nil
		},
	}
}
