package service

import (
	"context"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// Rows per printed page. The EV form variant drops the repair columns, which
// buys one extra row.
const (
	gasolineRowsPerPage = 10
	electricRowsPerPage = 11
)

// gasolineFuelTypes are the fuel-type checkboxes on the gasoline form.
var gasolineFuelTypes = []string{
	"Gasohol 95",
	"Gasohol 91",
	"Gasohol E20",
	"Gasohol E85",
	"Diesel",
}

// ReportVariant selects the column set of the printable form.
type ReportVariant string

const (
	ReportVariantGasoline ReportVariant = "GASOLINE"
	ReportVariantElectric ReportVariant = "ELECTRIC"
)

// UsageReport is the printable monthly usage document for one vehicle.
type UsageReport struct {
	CarID       string        `json:"car_id"`
	PlateNumber string        `json:"plate_number"`
	Model       string        `json:"model"`
	CarType     string        `json:"car_type"`
	Variant     ReportVariant `json:"variant"`
	Year        int           `json:"year"`
	Month       int           `json:"month"`

	// Gasoline variant only.
	FuelTypes []FuelTypeOption `json:"fuel_types,omitempty"`

	Pages  []ReportPage `json:"pages"`
	Totals ReportTotals `json:"totals"`
}

// FuelTypeOption is one fuel-type checkbox on the form header.
type FuelTypeOption struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// ReportPage is one fixed-size page of rows. The final page is padded with
// empty rows so the printed table keeps its height.
type ReportPage struct {
	Number int         `json:"number"`
	Rows   []ReportRow `json:"rows"`
}

// ReportRow is one table row. Which fields render depends on the variant.
type ReportRow struct {
	Empty bool `json:"empty,omitempty"`

	Date         string  `json:"date,omitempty"`
	DriverName   string  `json:"driver_name,omitempty"`
	Location     string  `json:"location,omitempty"`
	StartMileage float64 `json:"start_mileage,omitempty"`
	EndMileage   float64 `json:"end_mileage,omitempty"`

	FuelLiters float64 `json:"fuel_liters,omitempty"`
	FuelCost   float64 `json:"fuel_cost,omitempty"`

	BatteryBefore float64 `json:"battery_before,omitempty"`
	BatteryAfter  float64 `json:"battery_after,omitempty"`
	StationType   string  `json:"station_type,omitempty"`
	StationName   string  `json:"station_name,omitempty"`
}

// ReportTotals are the running totals printed on the final page.
type ReportTotals struct {
	Trips         int     `json:"trips"`
	Distance      float64 `json:"distance_km"`
	FuelLiters    float64 `json:"fuel_liters"`
	FuelCost      float64 `json:"fuel_cost"`
	BatteryGained float64 `json:"battery_gained,omitempty"`
}

// ReportService renders monthly usage reports.
type ReportService struct {
	vehicleRepo repository.VehicleRepository
	tripLogRepo repository.TripLogRepository
}

// NewReportService creates a new ReportService.
func NewReportService(vehicleRepo repository.VehicleRepository, tripLogRepo repository.TripLogRepository) *ReportService {
	return &ReportService{vehicleRepo: vehicleRepo, tripLogRepo: tripLogRepo}
}

// MonthlyUsage builds the usage report for a vehicle and calendar month.
func (s *ReportService) MonthlyUsage(ctx context.Context, carID string, year, month int) (*UsageReport, error) {
	if carID == "" {
		return nil, ErrInvalidCarID
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, ErrInvalidReportMonth
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	logs, err := s.tripLogRepo.GetCompletedByCarInRange(ctx, carID, from, to)
	if err != nil {
		return nil, err
	}

	return BuildUsageReport(vehicle, logs, year, month), nil
}

// BuildUsageReport paginates a month of completed logs into the printable
// document. Pure formatting.
func BuildUsageReport(vehicle *domain.Vehicle, logs []*domain.TripLog, year, month int) *UsageReport {
	report := &UsageReport{
		CarID:       vehicle.ID,
		PlateNumber: vehicle.PlateNumber,
		Model:       vehicle.Model,
		CarType:     vehicle.CarType,
		Variant:     ReportVariantGasoline,
		Year:        year,
		Month:       month,
	}

	rowsPerPage := gasolineRowsPerPage
	if vehicle.IsElectric() {
		report.Variant = ReportVariantElectric
		rowsPerPage = electricRowsPerPage
	} else {
		for _, name := range gasolineFuelTypes {
			report.FuelTypes = append(report.FuelTypes, FuelTypeOption{
				Name:    name,
				Checked: vehicle.FuelType == name,
			})
		}
	}

	report.Totals.Trips = len(logs)
	for _, log := range logs {
		report.Totals.Distance += log.Distance()
		report.Totals.FuelLiters += log.FuelLiters
		report.Totals.FuelCost += log.FuelCost
		if log.SessionType == domain.SessionTypeCharge {
			report.Totals.BatteryGained += log.BatteryAfter - log.BatteryBefore
		}
	}

	pageCount := (len(logs) + rowsPerPage - 1) / rowsPerPage
	if pageCount == 0 {
		pageCount = 1
	}

	for p := 0; p < pageCount; p++ {
		page := ReportPage{Number: p + 1, Rows: make([]ReportRow, 0, rowsPerPage)}
		for i := p * rowsPerPage; i < (p+1)*rowsPerPage; i++ {
			if i < len(logs) {
				page.Rows = append(page.Rows, buildRow(logs[i]))
			} else {
				page.Rows = append(page.Rows, ReportRow{Empty: true})
			}
		}
		report.Pages = append(report.Pages, page)
	}

	return report
}

func buildRow(log *domain.TripLog) ReportRow {
	row := ReportRow{
		Date:         log.StartTime.Format("2006-01-02"),
		DriverName:   log.DriverName,
		Location:     log.Location,
		StartMileage: log.StartMileage,
		EndMileage:   log.EndMileage,
	}

	if log.SessionType == domain.SessionTypeCharge {
		row.BatteryBefore = log.BatteryBefore
		row.BatteryAfter = log.BatteryAfter
		row.StationType = string(log.StationType)
		row.StationName = log.StationName
	} else {
		row.FuelLiters = log.FuelLiters
		row.FuelCost = log.FuelCost
	}

	return row
}
