package tests

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"fleet/internal/service"
)

func TestSummaryRefresher_RunAndCancel(t *testing.T) {
	t.Parallel()
	vehicles := NewMockVehicleRepository()
	logs := NewMockTripLogRepository()
	dashboard := service.NewDashboardService(vehicles, logs, nil)
	refresher := service.NewSummaryRefresher(dashboard, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx)
		close(done)
	}()

	// Wait for at least one refresh to land.
	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&logs.GetCompletedCallCount) == 0 {
		select {
		case <-deadline:
			t.Fatal("Refresher never recomputed the summary")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Refresher did not stop on context cancellation")
	}
}
