package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	TransitionCallCount int32

	// Error injection
	TransitionError error

	// TransitionHook runs right before the status check, which lets tests
	// slip a concurrent transition into the race window.
	TransitionHook func()
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) TransitionStatus(ctx context.Context, id string, from, to domain.VehicleStatus) (bool, error) {
	atomic.AddInt32(&m.TransitionCallCount, 1)
	if m.TransitionError != nil {
		return false, m.TransitionError
	}
	if m.TransitionHook != nil {
		m.TransitionHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok || vehicle.Status != from {
		return false, nil
	}
	vehicle.Status = to
	return true, nil
}

// GetVehicle returns the vehicle by ID (for test assertions).
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// SetStatus overwrites a vehicle's status directly.
func (m *MockVehicleRepository) SetStatus(id string, status domain.VehicleStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.vehicles[id]; ok {
		v.Status = status
	}
}

// ──────────────────────────────────────────────
// MOCK TRIP LOG REPOSITORY
// ──────────────────────────────────────────────

// MockTripLogRepository is a mock implementation of TripLogRepository.
type MockTripLogRepository struct {
	mu   sync.RWMutex
	logs map[string]*domain.TripLog

	// Counters
	CreateCallCount       int32
	CompleteCallCount     int32
	GetCompletedCallCount int32

	// Error injection
	CreateError   error
	CompleteError error
}

// NewMockTripLogRepository creates a new mock trip log repository.
func NewMockTripLogRepository() *MockTripLogRepository {
	return &MockTripLogRepository{
		logs: make(map[string]*domain.TripLog),
	}
}

// AddLog adds a log to the mock repository.
func (m *MockTripLogRepository) AddLog(log *domain.TripLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
}

func (m *MockTripLogRepository) Create(ctx context.Context, log *domain.TripLog) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *log
	m.logs[log.ID] = &copy
	return nil
}

func (m *MockTripLogRepository) GetByID(ctx context.Context, id string) (*domain.TripLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	log, ok := m.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *log
	return &copy, nil
}

func (m *MockTripLogRepository) GetOpenByCarID(ctx context.Context, carID string) (*domain.TripLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.logs {
		if l.CarID == carID && !l.IsCompleted {
			copy := *l
			return &copy, nil
		}
	}
	return nil, nil // No open log
}

func (m *MockTripLogRepository) GetLastCompletedByCarID(ctx context.Context, carID string) (*domain.TripLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.TripLog
	for _, l := range m.logs {
		if l.CarID != carID || !l.IsCompleted {
			continue
		}
		if latest == nil || l.CreatedAt.After(latest.CreatedAt) {
			latest = l
		}
	}
	if latest == nil {
		return nil, nil
	}
	copy := *latest
	return &copy, nil
}

func (m *MockTripLogRepository) Complete(ctx context.Context, log *domain.TripLog) error {
	atomic.AddInt32(&m.CompleteCallCount, 1)
	if m.CompleteError != nil {
		return m.CompleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.logs[log.ID]
	if !ok || stored.IsCompleted {
		return repository.ErrNotFound
	}
	copy := *log
	m.logs[log.ID] = &copy
	return nil
}

func (m *MockTripLogRepository) GetCompleted(ctx context.Context) ([]*domain.TripLog, error) {
	atomic.AddInt32(&m.GetCompletedCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TripLog
	for _, l := range m.logs {
		if l.IsCompleted {
			copy := *l
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTripLogRepository) GetCompletedByCarInRange(ctx context.Context, carID string, from, to time.Time) ([]*domain.TripLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TripLog
	for _, l := range m.logs {
		if l.CarID != carID || !l.IsCompleted {
			continue
		}
		if l.StartTime.Before(from) || !l.StartTime.Before(to) {
			continue
		}
		copy := *l
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripLogRepository) GetRecent(ctx context.Context, limit int) ([]*domain.TripLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TripLog
	for _, l := range m.logs {
		copy := *l
		result = append(result, &copy)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// GetLog returns the log by ID (for test assertions).
func (m *MockTripLogRepository) GetLog(id string) *domain.TripLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logs[id]
}

// CountOpenForCar counts open logs for a vehicle.
func (m *MockTripLogRepository) CountOpenForCar(carID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, l := range m.logs {
		if l.CarID == carID && !l.IsCompleted {
			count++
		}
	}
	return count
}

// CountLogs returns the number of logs.
func (m *MockTripLogRepository) CountLogs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.logs)
}

// OpenLogForCar returns the open log for a vehicle, or nil.
func (m *MockTripLogRepository) OpenLogForCar(carID string) *domain.TripLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.logs {
		if l.CarID == carID && !l.IsCompleted {
			return l
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK STAFF REPOSITORY
// ──────────────────────────────────────────────

// MockStaffRepository is a mock implementation of StaffRepository.
type MockStaffRepository struct {
	mu    sync.RWMutex
	staff map[string]*domain.Staff

	// Error injection
	GetError error
}

// NewMockStaffRepository creates a new mock staff repository.
func NewMockStaffRepository() *MockStaffRepository {
	return &MockStaffRepository{
		staff: make(map[string]*domain.Staff),
	}
}

// AddStaff adds a staff record to the mock repository.
func (m *MockStaffRepository) AddStaff(s *domain.Staff) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff[s.Code] = s
}

func (m *MockStaffRepository) GetByCode(ctx context.Context, code string) (*domain.Staff, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.staff[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *s
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK TX RUNNER
// ──────────────────────────────────────────────

// MockTxRunner passes the same mock repositories through as the
// transaction-scoped ones. The mocks are already atomic enough for tests.
type MockTxRunner struct {
	Vehicles repository.VehicleRepository
	TripLogs repository.TripLogRepository

	// Error injection
	BeginError error
}

// NewMockTxRunner creates a new mock transaction runner.
func NewMockTxRunner(vehicles repository.VehicleRepository, tripLogs repository.TripLogRepository) *MockTxRunner {
	return &MockTxRunner{Vehicles: vehicles, TripLogs: tripLogs}
}

func (m *MockTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(ctx, repository.TxRepos{Vehicles: m.Vehicles, TripLogs: m.TripLogs})
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of the vehicle lock.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, carID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[carID] {
		return false, nil
	}
	m.locks[carID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, carID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, carID)
	return nil
}
