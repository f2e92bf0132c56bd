package service

import (
	"context"
	"log"
	"time"
)

// SummaryRefresher recomputes the dashboard summary on a fixed interval so
// polling clients read a warm cache. Its lifetime is tied to the context it is
// run with; cancellation stops the loop and in-flight work is simply
// discarded.
type SummaryRefresher struct {
	dashboard *DashboardService
	interval  time.Duration
}

// NewSummaryRefresher creates a new SummaryRefresher.
func NewSummaryRefresher(dashboard *DashboardService, interval time.Duration) *SummaryRefresher {
	return &SummaryRefresher{dashboard: dashboard, interval: interval}
}

// Run refreshes the summary until ctx is cancelled. It blocks; run it in its
// own goroutine.
func (r *SummaryRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.dashboard.Refresh(ctx); err != nil && ctx.Err() == nil {
				log.Printf("dashboard refresh failed: %v", err)
			}
		}
	}
}
