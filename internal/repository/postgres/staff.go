package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// StaffRepository is a PostgreSQL implementation of repository.StaffRepository.
type StaffRepository struct {
	q Querier
}

// NewStaffRepository creates a new PostgreSQL staff repository.
func NewStaffRepository(db *sql.DB) *StaffRepository {
	return &StaffRepository{q: db}
}

// GetByCode retrieves a staff record by staff code.
func (r *StaffRepository) GetByCode(ctx context.Context, code string) (*domain.Staff, error) {
	query := `SELECT staff_code, full_name, COALESCE(position, '') FROM staff WHERE staff_code = $1`

	var s domain.Staff
	err := r.q.QueryRowContext(ctx, query, code).Scan(&s.Code, &s.FullName, &s.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}

// Ensure StaffRepository implements repository.StaffRepository.
var _ repository.StaffRepository = (*StaffRepository)(nil)
