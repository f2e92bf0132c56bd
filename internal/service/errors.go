package service

import "errors"

var (
	// ErrInvalidCarID is returned when the vehicle ID is empty.
	ErrInvalidCarID = errors.New("invalid car id")

	// ErrInvalidStaffCode is returned when the staff code is shorter than the
	// directory's minimum of 4 characters.
	ErrInvalidStaffCode = errors.New("staff code must be at least 4 characters")

	// ErrStaffNotFound is returned when the staff code does not resolve in the
	// directory.
	ErrStaffNotFound = errors.New("staff code not found")

	// ErrMissingField is returned when a path-required input is absent. It is
	// wrapped with the field name.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidStationType is returned when the EV station type is neither
	// PEA nor OTHER.
	ErrInvalidStationType = errors.New("invalid station type")

	// ErrMileageRegression is returned when the end mileage is below the start
	// mileage of the open log.
	ErrMileageRegression = errors.New("end mileage below start mileage")

	// ErrBatteryRegression is returned when the battery level after charging
	// is not above the level recorded at plug-in.
	ErrBatteryRegression = errors.New("battery level did not increase")

	// ErrAlreadyInProgress is returned when a checkout loses the claim on a
	// vehicle because a concurrent checkout won.
	ErrAlreadyInProgress = errors.New("vehicle already in use")

	// ErrAlreadyReturned is returned when a check-in finds the vehicle already
	// released by a concurrent check-in.
	ErrAlreadyReturned = errors.New("vehicle already returned")

	// ErrNoActiveSession is returned when a check-in finds no open log for the
	// vehicle.
	ErrNoActiveSession = errors.New("no active session for vehicle")

	// ErrInvalidReportMonth is returned when the report month is out of range.
	ErrInvalidReportMonth = errors.New("invalid report month")
)
