package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

const vehicleLockTTL = 10 * time.Second

// LifecycleService drives a vehicle through its checkout/check-in cycle and
// guards the mileage and battery invariants. Both writes of a transition (the
// ledger entry and the registry status) happen inside one transaction, and the
// status update is conditional on the previous status, so two racing
// submissions cannot both succeed.
type LifecycleService struct {
	tx          repository.TxRunner
	vehicleRepo repository.VehicleRepository
	tripLogRepo repository.TripLogRepository
	directory   *DirectoryService
	lockStore   redis.LockStoreInterface
	now         func() time.Time
}

// NewLifecycleService creates a new LifecycleService. lockStore may be nil;
// the conditional status update remains the authority either way.
func NewLifecycleService(
	tx repository.TxRunner,
	vehicleRepo repository.VehicleRepository,
	tripLogRepo repository.TripLogRepository,
	directory *DirectoryService,
	lockStore redis.LockStoreInterface,
) *LifecycleService {
	return &LifecycleService{
		tx:          tx,
		vehicleRepo: vehicleRepo,
		tripLogRepo: tripLogRepo,
		directory:   directory,
		lockStore:   lockStore,
		now:         time.Now,
	}
}

// CheckoutRequest contains the parameters for taking a vehicle out.
// Pointer fields are required or not depending on the vehicle class.
type CheckoutRequest struct {
	CarID     string
	StaffCode string

	// Gasoline path.
	StartMileage *float64
	Location     string

	// EV path.
	BatteryBefore *float64
	StationType   string
	StationName   string
}

// CheckoutResult contains the outcome of a successful checkout.
type CheckoutResult struct {
	Log        *domain.TripLog
	DriverName string
}

// Checkout transitions a vehicle from available to busy, appending an open
// trip log. No writes happen unless every precondition passes.
func (s *LifecycleService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if req.CarID == "" {
		return nil, ErrInvalidCarID
	}

	// The staff code must resolve before anything is written.
	staff, err := s.directory.Lookup(ctx, req.StaffCode)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	if vehicle.Status == domain.VehicleStatusBusy {
		return nil, ErrAlreadyInProgress
	}

	log := &domain.TripLog{
		ID:             uuid.New().String(),
		CarID:          vehicle.ID,
		DriverName:     staff.FullName,
		DriverPosition: staff.Position,
		StartTime:      s.now(),
		CreatedAt:      s.now(),
	}

	if vehicle.IsElectric() {
		if err := s.fillChargeCheckout(ctx, log, req); err != nil {
			return nil, err
		}
	} else {
		if err := fillTripCheckout(log, req); err != nil {
			return nil, err
		}
	}

	if err := s.lockVehicle(ctx, vehicle.ID); err != nil {
		return nil, err
	}
	defer s.unlockVehicle(vehicle.ID)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.TripLogs.Create(ctx, log); err != nil {
			return err
		}

		claimed, err := repos.Vehicles.TransitionStatus(ctx, vehicle.ID, domain.VehicleStatusAvailable, domain.VehicleStatusBusy)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAlreadyInProgress
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{Log: log, DriverName: staff.FullName}, nil
}

func fillTripCheckout(log *domain.TripLog, req CheckoutRequest) error {
	if req.StartMileage == nil {
		return fmt.Errorf("%w: start_mileage", ErrMissingField)
	}
	if req.Location == "" {
		return fmt.Errorf("%w: location", ErrMissingField)
	}

	log.SessionType = domain.SessionTypeTrip
	log.StartMileage = *req.StartMileage
	log.Location = req.Location
	return nil
}

func (s *LifecycleService) fillChargeCheckout(ctx context.Context, log *domain.TripLog, req CheckoutRequest) error {
	if req.BatteryBefore == nil {
		return fmt.Errorf("%w: battery_before", ErrMissingField)
	}
	if req.StationType == "" {
		return fmt.Errorf("%w: station_type", ErrMissingField)
	}
	stationType := domain.StationType(req.StationType)
	if stationType != domain.StationTypePEA && stationType != domain.StationTypeOther {
		return ErrInvalidStationType
	}
	if req.StationName == "" {
		return fmt.Errorf("%w: station_name", ErrMissingField)
	}

	log.SessionType = domain.SessionTypeCharge
	log.BatteryBefore = *req.BatteryBefore
	log.StationType = stationType
	log.StationName = req.StationName
	log.Location = req.StationName

	// A charge session defers the mileage reading; carry the last known value
	// forward so the odometer stays continuous in the ledger.
	if req.StartMileage != nil {
		log.StartMileage = *req.StartMileage
		return nil
	}
	last, err := s.tripLogRepo.GetLastCompletedByCarID(ctx, log.CarID)
	if err != nil {
		return err
	}
	if last != nil {
		log.StartMileage = last.EndMileage
	}
	return nil
}

// CheckInRequest contains the parameters for returning a vehicle.
type CheckInRequest struct {
	CarID string

	// Gasoline path.
	EndMileage *float64
	FuelLiters *float64
	FuelCost   *float64

	// EV path.
	BatteryAfter *float64
}

// CheckIn transitions a vehicle from busy back to available, completing the
// open trip log.
func (s *LifecycleService) CheckIn(ctx context.Context, req CheckInRequest) (*domain.TripLog, error) {
	if req.CarID == "" {
		return nil, ErrInvalidCarID
	}

	open, err := s.tripLogRepo.GetOpenByCarID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoActiveSession
	}

	switch open.SessionType {
	case domain.SessionTypeCharge:
		if req.BatteryAfter == nil {
			return nil, fmt.Errorf("%w: battery_after", ErrMissingField)
		}
		if *req.BatteryAfter <= open.BatteryBefore {
			return nil, ErrBatteryRegression
		}
		open.BatteryAfter = *req.BatteryAfter
		// A charge session does not move the vehicle.
		open.EndMileage = open.StartMileage
	default:
		if req.EndMileage == nil {
			return nil, fmt.Errorf("%w: end_mileage", ErrMissingField)
		}
		if *req.EndMileage < open.StartMileage {
			return nil, ErrMileageRegression
		}
		open.EndMileage = *req.EndMileage
		if req.FuelLiters != nil {
			open.FuelLiters = *req.FuelLiters
		}
		if req.FuelCost != nil {
			open.FuelCost = *req.FuelCost
		}
	}

	open.EndTime = s.now()
	open.IsCompleted = true

	if err := s.lockVehicle(ctx, req.CarID); err != nil {
		return nil, err
	}
	defer s.unlockVehicle(req.CarID)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.TripLogs.Complete(ctx, open); err != nil {
			return err
		}

		released, err := repos.Vehicles.TransitionStatus(ctx, req.CarID, domain.VehicleStatusBusy, domain.VehicleStatusAvailable)
		if err != nil {
			return err
		}
		if !released {
			return ErrAlreadyReturned
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return open, nil
}

// CheckoutDefaults proposes the start mileage for the next checkout. When a
// completed log exists, its end mileage is carried forward and presented as
// locked; otherwise the operator supplies the initial reading.
type CheckoutDefaults struct {
	StartMileage float64
	Locked       bool
}

// Defaults returns the mileage-continuity default for a vehicle.
func (s *LifecycleService) Defaults(ctx context.Context, carID string) (*CheckoutDefaults, error) {
	if carID == "" {
		return nil, ErrInvalidCarID
	}

	last, err := s.tripLogRepo.GetLastCompletedByCarID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return &CheckoutDefaults{}, nil
	}
	return &CheckoutDefaults{StartMileage: last.EndMileage, Locked: true}, nil
}

// Resolution is what a scanned QR deep link resolves to: the vehicle, its open
// log when busy, and the checkout defaults when available.
type Resolution struct {
	Vehicle  *domain.Vehicle
	OpenLog  *domain.TripLog
	Defaults *CheckoutDefaults
}

// Resolve loads everything the checkout/check-in form needs for one vehicle.
func (s *LifecycleService) Resolve(ctx context.Context, carID string) (*Resolution, error) {
	if carID == "" {
		return nil, ErrInvalidCarID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	res := &Resolution{Vehicle: vehicle}

	if vehicle.Status == domain.VehicleStatusBusy {
		res.OpenLog, err = s.tripLogRepo.GetOpenByCarID(ctx, carID)
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	res.Defaults, err = s.Defaults(ctx, carID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *LifecycleService) lockVehicle(ctx context.Context, carID string) error {
	if s.lockStore == nil {
		return nil
	}
	ok, err := s.lockStore.AcquireVehicleLock(ctx, carID, vehicleLockTTL)
	if err != nil {
		// Redis being down must not block transitions; the conditional
		// update still serializes them.
		return nil
	}
	if !ok {
		return ErrAlreadyInProgress
	}
	return nil
}

func (s *LifecycleService) unlockVehicle(carID string) {
	if s.lockStore == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.lockStore.ReleaseVehicleLock(ctx, carID)
}
