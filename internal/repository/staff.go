package repository

import (
	"context"

	"fleet/internal/domain"
)

// StaffRepository defines read access to the employee directory.
type StaffRepository interface {
	// GetByCode retrieves a staff record by staff code.
	GetByCode(ctx context.Context, code string) (*domain.Staff, error)
}
