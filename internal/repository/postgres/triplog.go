package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// TripLogRepository is a PostgreSQL implementation of repository.TripLogRepository.
type TripLogRepository struct {
	q Querier
}

// NewTripLogRepository creates a new PostgreSQL trip log repository.
func NewTripLogRepository(db *sql.DB) *TripLogRepository {
	return &TripLogRepository{q: db}
}

// NewTripLogRepositoryWithTx creates a trip log repository using a transaction.
func NewTripLogRepositoryWithTx(tx *sql.Tx) *TripLogRepository {
	return &TripLogRepository{q: tx}
}

const tripLogColumns = `
	id, car_id, session_type, driver_name, driver_position, location,
	start_mileage, end_mileage, start_time, end_time,
	fuel_liters, fuel_cost, battery_before, battery_after, station_type, station_name,
	is_completed, created_at
`

// Create persists a new open trip log.
func (r *TripLogRepository) Create(ctx context.Context, log *domain.TripLog) error {
	query := `
		INSERT INTO trip_logs (` + tripLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	var endMileage sql.NullFloat64
	if log.IsCompleted {
		endMileage = sql.NullFloat64{Float64: log.EndMileage, Valid: true}
	}

	var endTime sql.NullTime
	if !log.EndTime.IsZero() {
		endTime = sql.NullTime{Time: log.EndTime, Valid: true}
	}

	var stationType sql.NullString
	if log.StationType != "" {
		stationType = sql.NullString{String: string(log.StationType), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		log.ID,
		log.CarID,
		log.SessionType,
		log.DriverName,
		log.DriverPosition,
		log.Location,
		log.StartMileage,
		endMileage,
		log.StartTime,
		endTime,
		log.FuelLiters,
		log.FuelCost,
		log.BatteryBefore,
		log.BatteryAfter,
		stationType,
		log.StationName,
		log.IsCompleted,
		log.CreatedAt,
	)

	return err
}

func scanTripLog(scan func(dest ...any) error) (*domain.TripLog, error) {
	var log domain.TripLog
	var endMileage sql.NullFloat64
	var endTime sql.NullTime
	var stationType sql.NullString

	err := scan(
		&log.ID,
		&log.CarID,
		&log.SessionType,
		&log.DriverName,
		&log.DriverPosition,
		&log.Location,
		&log.StartMileage,
		&endMileage,
		&log.StartTime,
		&endTime,
		&log.FuelLiters,
		&log.FuelCost,
		&log.BatteryBefore,
		&log.BatteryAfter,
		&stationType,
		&log.StationName,
		&log.IsCompleted,
		&log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endMileage.Valid {
		log.EndMileage = endMileage.Float64
	}
	if endTime.Valid {
		log.EndTime = endTime.Time
	}
	if stationType.Valid {
		log.StationType = domain.StationType(stationType.String)
	}

	return &log, nil
}

// GetByID retrieves a trip log by ID.
func (r *TripLogRepository) GetByID(ctx context.Context, id string) (*domain.TripLog, error) {
	query := `SELECT ` + tripLogColumns + ` FROM trip_logs WHERE id = $1`

	log, err := scanTripLog(r.q.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

// GetOpenByCarID retrieves the open log for a vehicle.
// Returns nil if no open log exists.
func (r *TripLogRepository) GetOpenByCarID(ctx context.Context, carID string) (*domain.TripLog, error) {
	query := `
		SELECT ` + tripLogColumns + `
		FROM trip_logs
		WHERE car_id = $1 AND is_completed = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	log, err := scanTripLog(r.q.QueryRowContext(ctx, query, carID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}

// GetLastCompletedByCarID retrieves the most recently completed log for a vehicle.
// Returns nil if the vehicle has no completed logs.
func (r *TripLogRepository) GetLastCompletedByCarID(ctx context.Context, carID string) (*domain.TripLog, error) {
	query := `
		SELECT ` + tripLogColumns + `
		FROM trip_logs
		WHERE car_id = $1 AND is_completed = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`

	log, err := scanTripLog(r.q.QueryRowContext(ctx, query, carID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}

// Complete writes the end fields of an open log and marks it completed. The
// is_completed guard keeps completed logs immutable.
func (r *TripLogRepository) Complete(ctx context.Context, log *domain.TripLog) error {
	query := `
		UPDATE trip_logs
		SET end_mileage = $1, end_time = $2, fuel_liters = $3, fuel_cost = $4,
		    battery_after = $5, is_completed = TRUE
		WHERE id = $6 AND is_completed = FALSE
	`

	result, err := r.q.ExecContext(ctx, query,
		log.EndMileage,
		log.EndTime,
		log.FuelLiters,
		log.FuelCost,
		log.BatteryAfter,
		log.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetCompleted retrieves all completed logs.
func (r *TripLogRepository) GetCompleted(ctx context.Context) ([]*domain.TripLog, error) {
	query := `SELECT ` + tripLogColumns + ` FROM trip_logs WHERE is_completed = TRUE ORDER BY created_at`

	return r.queryLogs(ctx, query)
}

// GetCompletedByCarInRange retrieves completed logs for a vehicle whose start
// time falls in [from, to), oldest first.
func (r *TripLogRepository) GetCompletedByCarInRange(ctx context.Context, carID string, from, to time.Time) ([]*domain.TripLog, error) {
	query := `
		SELECT ` + tripLogColumns + `
		FROM trip_logs
		WHERE car_id = $1 AND is_completed = TRUE AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`

	return r.queryLogs(ctx, query, carID, from, to)
}

// GetRecent retrieves the most recent logs regardless of completion, newest first.
func (r *TripLogRepository) GetRecent(ctx context.Context, limit int) ([]*domain.TripLog, error) {
	query := `SELECT ` + tripLogColumns + ` FROM trip_logs ORDER BY created_at DESC LIMIT $1`

	return r.queryLogs(ctx, query, limit)
}

func (r *TripLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]*domain.TripLog, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.TripLog
	for rows.Next() {
		log, err := scanTripLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// Ensure TripLogRepository implements repository.TripLogRepository.
var _ repository.TripLogRepository = (*TripLogRepository)(nil)
