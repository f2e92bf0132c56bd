package repository

import (
	"context"

	"fleet/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles ordered by plate number.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// TransitionStatus conditionally moves a vehicle from one status to
	// another in a single statement. It returns false when the vehicle was
	// not in the expected status, which means a concurrent transition won.
	TransitionStatus(ctx context.Context, id string, from, to domain.VehicleStatus) (bool, error)
}
