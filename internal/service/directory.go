package service

import (
	"context"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

// minStaffCodeLen is the directory's lookup contract: codes shorter than this
// are never queried.
const minStaffCodeLen = 4

// DirectoryService resolves staff codes against the employee directory with a
// short-lived cache in front.
type DirectoryService struct {
	staffRepo  repository.StaffRepository
	cacheStore *redis.CacheStore
}

// NewDirectoryService creates a new DirectoryService. cacheStore may be nil.
func NewDirectoryService(staffRepo repository.StaffRepository, cacheStore *redis.CacheStore) *DirectoryService {
	return &DirectoryService{staffRepo: staffRepo, cacheStore: cacheStore}
}

// Lookup resolves a staff code to a name and position.
func (s *DirectoryService) Lookup(ctx context.Context, code string) (*domain.Staff, error) {
	if len(code) < minStaffCodeLen {
		return nil, ErrInvalidStaffCode
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetStaff(ctx, code)
		if err == nil && cached != nil {
			return &domain.Staff{Code: cached.Code, FullName: cached.FullName, Position: cached.Position}, nil
		}
	}

	staff, err := s.staffRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetStaff(ctx, &redis.CachedStaff{
			Code:     staff.Code,
			FullName: staff.FullName,
			Position: staff.Position,
		})
	}

	return staff, nil
}
