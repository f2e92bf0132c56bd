package tests

import (
	"context"
	"errors"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/service"
)

func TestDirectoryLookup(t *testing.T) {
	t.Parallel()
	staffRepo := NewMockStaffRepository()
	staffRepo.AddStaff(&domain.Staff{Code: "501234", FullName: "Somchai Jaidee", Position: "Engineer"})
	directory := service.NewDirectoryService(staffRepo, nil)
	ctx := context.Background()

	staff, err := directory.Lookup(ctx, "501234")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if staff.FullName != "Somchai Jaidee" {
		t.Errorf("Expected Somchai Jaidee, got %s", staff.FullName)
	}
	if staff.Position != "Engineer" {
		t.Errorf("Expected Engineer, got %s", staff.Position)
	}
}

func TestDirectoryLookup_ShortCode(t *testing.T) {
	t.Parallel()
	staffRepo := NewMockStaffRepository()
	staffRepo.AddStaff(&domain.Staff{Code: "501234", FullName: "Somchai Jaidee"})
	directory := service.NewDirectoryService(staffRepo, nil)

	// Below four characters the directory is never queried.
	for _, code := range []string{"", "5", "50", "501"} {
		_, err := directory.Lookup(context.Background(), code)
		if !errors.Is(err, service.ErrInvalidStaffCode) {
			t.Errorf("Expected ErrInvalidStaffCode for %q, got %v", code, err)
		}
	}
}

func TestDirectoryLookup_NotFound(t *testing.T) {
	t.Parallel()
	directory := service.NewDirectoryService(NewMockStaffRepository(), nil)

	_, err := directory.Lookup(context.Background(), "9999")
	if !errors.Is(err, service.ErrStaffNotFound) {
		t.Errorf("Expected ErrStaffNotFound, got %v", err)
	}
}

func TestDirectoryLookup_RepoError(t *testing.T) {
	t.Parallel()
	staffRepo := NewMockStaffRepository()
	staffRepo.GetError = errors.New("connection refused")
	directory := service.NewDirectoryService(staffRepo, nil)

	_, err := directory.Lookup(context.Background(), "501234")
	if err == nil || errors.Is(err, service.ErrStaffNotFound) {
		t.Errorf("Expected the repository error to pass through, got %v", err)
	}
}
