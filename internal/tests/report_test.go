package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/service"
)

func gasolineVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:          "car-1",
		PlateNumber: "1กข 1234",
		Model:       "Toyota Hilux",
		CarType:     "pickup",
		FuelType:    "Diesel",
		Class:       domain.VehicleClassGasoline,
	}
}

func electricVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:          "car-2",
		PlateNumber: "2ขค 5678",
		Model:       "MG EP",
		CarType:     "sedan",
		Class:       domain.VehicleClassElectric,
	}
}

func monthOfTrips(n int) []*domain.TripLog {
	logs := make([]*domain.TripLog, 0, n)
	mileage := 1000.0
	for i := 0; i < n; i++ {
		start := time.Date(2026, 8, i+1, 9, 0, 0, 0, time.UTC)
		logs = append(logs, &domain.TripLog{
			ID:           fmt.Sprintf("log-%d", i),
			CarID:        "car-1",
			SessionType:  domain.SessionTypeTrip,
			DriverName:   "Somchai Jaidee",
			Location:     "Site A",
			StartMileage: mileage,
			EndMileage:   mileage + 10,
			StartTime:    start,
			FuelLiters:   2,
			FuelCost:     80,
			IsCompleted:  true,
			CreatedAt:    start,
		})
		mileage += 10
	}
	return logs
}

func TestBuildUsageReport_Gasoline(t *testing.T) {
	t.Parallel()
	report := service.BuildUsageReport(gasolineVehicle(), monthOfTrips(3), 2026, 8)

	if report.Variant != service.ReportVariantGasoline {
		t.Errorf("Expected gasoline variant, got %s", report.Variant)
	}
	if report.Year != 2026 || report.Month != 8 {
		t.Errorf("Expected 2026-08, got %d-%d", report.Year, report.Month)
	}

	// The fuel-type checkbox matching the vehicle is pre-checked.
	if len(report.FuelTypes) != 5 {
		t.Fatalf("Expected 5 fuel-type options, got %d", len(report.FuelTypes))
	}
	checked := 0
	for _, ft := range report.FuelTypes {
		if ft.Checked {
			checked++
			if ft.Name != "Diesel" {
				t.Errorf("Expected Diesel to be checked, got %s", ft.Name)
			}
		}
	}
	if checked != 1 {
		t.Errorf("Expected exactly one checked fuel type, got %d", checked)
	}

	if report.Totals.Trips != 3 || report.Totals.Distance != 30 {
		t.Errorf("Expected 3 trips over 30 km, got %d over %f", report.Totals.Trips, report.Totals.Distance)
	}
	if report.Totals.FuelLiters != 6 || report.Totals.FuelCost != 240 {
		t.Errorf("Expected 6 L at 240, got %f L at %f", report.Totals.FuelLiters, report.Totals.FuelCost)
	}

	if len(report.Pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(report.Pages))
	}
	page := report.Pages[0]
	if len(page.Rows) != 10 {
		t.Fatalf("Expected the gasoline page padded to 10 rows, got %d", len(page.Rows))
	}
	if page.Rows[0].Empty || page.Rows[0].Date != "2026-08-01" {
		t.Errorf("Unexpected first row: %+v", page.Rows[0])
	}
	if page.Rows[0].FuelLiters != 2 || page.Rows[0].FuelCost != 80 {
		t.Errorf("Expected fuel columns filled, got %+v", page.Rows[0])
	}
	if page.Rows[0].BatteryAfter != 0 || page.Rows[0].StationName != "" {
		t.Errorf("Expected battery columns blank on the gasoline form, got %+v", page.Rows[0])
	}
	for i := 3; i < 10; i++ {
		if !page.Rows[i].Empty {
			t.Errorf("Expected row %d to be padding", i)
		}
	}
}

func TestBuildUsageReport_Pagination(t *testing.T) {
	t.Parallel()
	report := service.BuildUsageReport(gasolineVehicle(), monthOfTrips(12), 2026, 8)

	if len(report.Pages) != 2 {
		t.Fatalf("Expected 2 pages for 12 trips, got %d", len(report.Pages))
	}
	if report.Pages[0].Number != 1 || report.Pages[1].Number != 2 {
		t.Error("Expected pages numbered from 1")
	}
	if len(report.Pages[0].Rows) != 10 || len(report.Pages[1].Rows) != 10 {
		t.Error("Expected every page to hold exactly 10 rows")
	}
	if report.Pages[1].Rows[0].Date != "2026-08-11" {
		t.Errorf("Expected page 2 to continue at the 11th trip, got %+v", report.Pages[1].Rows[0])
	}
	for i := 2; i < 10; i++ {
		if !report.Pages[1].Rows[i].Empty {
			t.Errorf("Expected row %d of the final page to be padding", i)
		}
	}
}

func TestBuildUsageReport_EmptyMonth(t *testing.T) {
	t.Parallel()
	report := service.BuildUsageReport(gasolineVehicle(), nil, 2026, 2)

	// Even an unused month prints one blank page.
	if len(report.Pages) != 1 {
		t.Fatalf("Expected 1 blank page, got %d", len(report.Pages))
	}
	for _, row := range report.Pages[0].Rows {
		if !row.Empty {
			t.Error("Expected all rows to be padding in an empty month")
		}
	}
	if report.Totals.Trips != 0 {
		t.Errorf("Expected zero totals, got %+v", report.Totals)
	}
}

func TestBuildUsageReport_Electric(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC)
	logs := []*domain.TripLog{
		{
			ID: "log-1", CarID: "car-2", SessionType: domain.SessionTypeCharge,
			DriverName: "Suda Rakdee", Location: "PEA HQ",
			StartMileage: 300, EndMileage: 300,
			BatteryBefore: 20, BatteryAfter: 80,
			StationType: domain.StationTypePEA, StationName: "PEA HQ",
			StartTime: start, IsCompleted: true, CreatedAt: start,
		},
		{
			ID: "log-2", CarID: "car-2", SessionType: domain.SessionTypeCharge,
			DriverName: "Suda Rakdee", Location: "Mall Charger",
			StartMileage: 300, EndMileage: 300,
			BatteryBefore: 50, BatteryAfter: 90,
			StationType: domain.StationTypeOther, StationName: "Mall Charger",
			StartTime: start.AddDate(0, 0, 3), IsCompleted: true, CreatedAt: start.AddDate(0, 0, 3),
		},
	}

	report := service.BuildUsageReport(electricVehicle(), logs, 2026, 8)

	if report.Variant != service.ReportVariantElectric {
		t.Errorf("Expected electric variant, got %s", report.Variant)
	}
	if len(report.FuelTypes) != 0 {
		t.Error("Expected no fuel-type checkboxes on the EV form")
	}

	if len(report.Pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(report.Pages))
	}
	if len(report.Pages[0].Rows) != 11 {
		t.Fatalf("Expected the EV page padded to 11 rows, got %d", len(report.Pages[0].Rows))
	}

	row := report.Pages[0].Rows[0]
	if row.BatteryBefore != 20 || row.BatteryAfter != 80 {
		t.Errorf("Expected battery columns 20 -> 80, got %+v", row)
	}
	if row.StationType != "PEA" || row.StationName != "PEA HQ" {
		t.Errorf("Expected station columns filled, got %+v", row)
	}
	if row.FuelLiters != 0 || row.FuelCost != 0 {
		t.Errorf("Expected fuel columns blank on the EV form, got %+v", row)
	}

	// 60 + 40 percentage points gained across the month.
	if report.Totals.BatteryGained != 100 {
		t.Errorf("Expected 100 battery points gained, got %f", report.Totals.BatteryGained)
	}
	if report.Totals.Distance != 0 {
		t.Errorf("Expected zero distance for charge-only usage, got %f", report.Totals.Distance)
	}
}

func TestMonthlyUsage(t *testing.T) {
	t.Parallel()
	vehicles := NewMockVehicleRepository()
	logs := NewMockTripLogRepository()
	vehicles.AddVehicle(gasolineVehicle())
	for _, log := range monthOfTrips(2) {
		logs.AddLog(log)
	}
	// A trip outside the month must not appear.
	logs.AddLog(&domain.TripLog{
		ID: "log-july", CarID: "car-1", SessionType: domain.SessionTypeTrip,
		DriverName: "Somchai Jaidee", Location: "Site A",
		StartMileage: 900, EndMileage: 950,
		StartTime:   time.Date(2026, 7, 20, 9, 0, 0, 0, time.UTC),
		IsCompleted: true,
	})

	reports := service.NewReportService(vehicles, logs)

	report, err := reports.MonthlyUsage(context.Background(), "car-1", 2026, 8)
	if err != nil {
		t.Fatalf("MonthlyUsage failed: %v", err)
	}
	if report.Totals.Trips != 2 {
		t.Errorf("Expected 2 trips inside August, got %d", report.Totals.Trips)
	}
	if report.PlateNumber != "1กข 1234" {
		t.Errorf("Expected plate from the registry, got %s", report.PlateNumber)
	}
}

func TestMonthlyUsage_InvalidMonth(t *testing.T) {
	t.Parallel()
	vehicles := NewMockVehicleRepository()
	vehicles.AddVehicle(gasolineVehicle())
	reports := service.NewReportService(vehicles, NewMockTripLogRepository())

	for _, month := range []int{0, 13, -1} {
		_, err := reports.MonthlyUsage(context.Background(), "car-1", 2026, month)
		if !errors.Is(err, service.ErrInvalidReportMonth) {
			t.Errorf("Expected ErrInvalidReportMonth for month %d, got %v", month, err)
		}
	}
}
