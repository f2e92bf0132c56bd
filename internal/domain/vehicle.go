package domain

// VehicleStatus represents the current availability of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusBusy      VehicleStatus = "busy"
)

// VehicleClass represents the drivetrain of a vehicle. It is stored on the
// vehicle record at creation time and never derived from the plate number.
type VehicleClass string

const (
	VehicleClassGasoline VehicleClass = "GASOLINE"
	VehicleClassElectric VehicleClass = "ELECTRIC"
)

// Vehicle represents a fleet vehicle in the system.
type Vehicle struct {
	ID          string
	PlateNumber string
	Model       string
	CarType     string
	FuelType    string
	Class       VehicleClass
	Status      VehicleStatus
}

// IsElectric reports whether the vehicle follows the EV charge-session path.
func (v *Vehicle) IsElectric() bool {
	return v.Class == VehicleClassElectric
}
