package domain

import "time"

// SessionType distinguishes a road trip from an EV charge session. Both share
// the same log shape and the same open/completed lifecycle; the vehicle status
// flag does not distinguish them, the ledger does.
type SessionType string

const (
	SessionTypeTrip   SessionType = "TRIP"
	SessionTypeCharge SessionType = "CHARGE"
)

// StationType identifies who operates an EV charging station.
type StationType string

const (
	StationTypePEA   StationType = "PEA"
	StationTypeOther StationType = "OTHER"
)

// TripLog is one entry in the trip ledger. A log is created open at checkout
// and completed exactly once at check-in; it is immutable afterwards. At most
// one open log exists per vehicle.
type TripLog struct {
	ID             string
	CarID          string
	SessionType    SessionType
	DriverName     string
	DriverPosition string
	Location       string
	StartMileage   float64
	EndMileage     float64 // zero until completed
	StartTime      time.Time
	EndTime        time.Time // zero until completed

	// Gasoline path.
	FuelLiters float64
	FuelCost   float64

	// EV path.
	BatteryBefore float64
	BatteryAfter  float64
	StationType   StationType
	StationName   string

	IsCompleted bool
	CreatedAt   time.Time
}

// Distance returns the mileage covered by a completed log.
func (l *TripLog) Distance() float64 {
	if !l.IsCompleted {
		return 0
	}
	return l.EndMileage - l.StartMileage
}
