package repository

import (
	"context"
	"time"

	"fleet/internal/domain"
)

// TripLogRepository defines the persistence operations for the trip ledger.
type TripLogRepository interface {
	// Create persists a new (open) trip log.
	Create(ctx context.Context, log *domain.TripLog) error

	// GetByID retrieves a trip log by ID.
	GetByID(ctx context.Context, id string) (*domain.TripLog, error)

	// GetOpenByCarID retrieves the open log for a vehicle.
	// Returns nil if no open log exists.
	GetOpenByCarID(ctx context.Context, carID string) (*domain.TripLog, error)

	// GetLastCompletedByCarID retrieves the most recently completed log for a
	// vehicle. Returns nil if the vehicle has no completed logs.
	GetLastCompletedByCarID(ctx context.Context, carID string) (*domain.TripLog, error)

	// Complete writes the end fields of an open log and marks it completed.
	Complete(ctx context.Context, log *domain.TripLog) error

	// GetCompleted retrieves all completed logs.
	GetCompleted(ctx context.Context) ([]*domain.TripLog, error)

	// GetCompletedByCarInRange retrieves completed logs for a vehicle whose
	// start time falls in [from, to), oldest first.
	GetCompletedByCarInRange(ctx context.Context, carID string, from, to time.Time) ([]*domain.TripLog, error)

	// GetRecent retrieves the most recent logs regardless of completion,
	// newest first.
	GetRecent(ctx context.Context, limit int) ([]*domain.TripLog, error)
}
