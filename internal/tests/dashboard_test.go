package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/service"
)

func summaryFixtures() ([]*domain.TripLog, []*domain.Vehicle, time.Time) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	vehicles := []*domain.Vehicle{
		{ID: "car-1", PlateNumber: "1กข 1234", Model: "Toyota Hilux", CarType: "pickup", Status: domain.VehicleStatusBusy},
		{ID: "car-2", PlateNumber: "2ขค 5678", Model: "MG EP", CarType: "sedan", Class: domain.VehicleClassElectric, Status: domain.VehicleStatusAvailable},
		{ID: "car-3", PlateNumber: "3คง 9012", Model: "Isuzu D-Max", CarType: "pickup", Status: domain.VehicleStatusAvailable},
	}

	logs := []*domain.TripLog{
		{
			ID: "log-1", CarID: "car-1", SessionType: domain.SessionTypeTrip,
			DriverName: "Somchai Jaidee", Location: "Site A",
			StartMileage: 1000, EndMileage: 1050, FuelCost: 200,
			IsCompleted: true, CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID: "log-2", CarID: "car-1", SessionType: domain.SessionTypeTrip,
			DriverName: "Somchai Jaidee", Location: "Site A",
			StartMileage: 1050, EndMileage: 1080, FuelCost: 100,
			IsCompleted: true, CreatedAt: now.AddDate(0, 0, -1).Add(-5 * time.Hour),
		},
		{
			ID: "log-3", CarID: "car-3", SessionType: domain.SessionTypeTrip,
			DriverName: "Suda Rakdee", Location: "Site B",
			StartMileage: 500, EndMileage: 520, FuelCost: 100,
			IsCompleted: true, CreatedAt: now.AddDate(0, 0, -2).Add(-7 * time.Hour),
		},
		{
			ID: "log-4", CarID: "car-2", SessionType: domain.SessionTypeCharge,
			DriverName: "Suda Rakdee", Location: "PEA HQ",
			StartMileage: 300, EndMileage: 300, BatteryBefore: 20, BatteryAfter: 80,
			StationType: domain.StationTypePEA, StationName: "PEA HQ",
			IsCompleted: true, CreatedAt: now.AddDate(0, 0, -10),
		},
	}

	return logs, vehicles, now
}

func TestBuildSummary_Totals(t *testing.T) {
	t.Parallel()
	logs, vehicles, now := summaryFixtures()

	summary := service.BuildSummary(logs, vehicles, nil, now)

	if summary.TotalTrips != 4 {
		t.Errorf("Expected 4 trips, got %d", summary.TotalTrips)
	}
	// 50 + 30 + 20 + 0 (the charge session covers no distance).
	if summary.TotalDistance != 100 {
		t.Errorf("Expected total distance 100, got %f", summary.TotalDistance)
	}
	if summary.TotalFuelCost != 400 {
		t.Errorf("Expected total fuel cost 400, got %f", summary.TotalFuelCost)
	}
	if summary.AvgCostPerKm != 4 {
		t.Errorf("Expected avg cost 4 per km, got %f", summary.AvgCostPerKm)
	}

	if summary.TotalVehicles != 3 || summary.ActiveVehicles != 1 || summary.AvailableVehicles != 2 {
		t.Errorf("Unexpected vehicle counts: %d total, %d active, %d available",
			summary.TotalVehicles, summary.ActiveVehicles, summary.AvailableVehicles)
	}
}

func TestBuildSummary_EmptyLedger(t *testing.T) {
	t.Parallel()
	_, vehicles, now := summaryFixtures()

	summary := service.BuildSummary(nil, vehicles, nil, now)

	if summary.TotalTrips != 0 || summary.TotalDistance != 0 {
		t.Error("Expected zero totals for an empty ledger")
	}
	// No division by zero distance.
	if summary.AvgCostPerKm != 0 {
		t.Errorf("Expected zero avg cost for an empty ledger, got %f", summary.AvgCostPerKm)
	}
	if len(summary.DailyTrend) != 7 {
		t.Errorf("Expected 7 trend buckets even when empty, got %d", len(summary.DailyTrend))
	}
}

func TestBuildSummary_TopLists(t *testing.T) {
	t.Parallel()
	logs, vehicles, now := summaryFixtures()

	summary := service.BuildSummary(logs, vehicles, nil, now)

	if len(summary.TopLocations) != 3 {
		t.Fatalf("Expected 3 locations, got %d", len(summary.TopLocations))
	}
	if summary.TopLocations[0].Name != "Site A" || summary.TopLocations[0].Count != 2 {
		t.Errorf("Expected Site A with 2 trips on top, got %+v", summary.TopLocations[0])
	}
	if summary.TopLocations[0].Percent != 50 {
		t.Errorf("Expected Site A at 50%%, got %f", summary.TopLocations[0].Percent)
	}

	// Drivers rank by distance covered, not trip count.
	if len(summary.TopDrivers) != 2 {
		t.Fatalf("Expected 2 drivers, got %d", len(summary.TopDrivers))
	}
	if summary.TopDrivers[0].Name != "Somchai Jaidee" || summary.TopDrivers[0].Distance != 80 {
		t.Errorf("Expected Somchai Jaidee with 80 km on top, got %+v", summary.TopDrivers[0])
	}
	if summary.TopDrivers[1].Name != "Suda Rakdee" || summary.TopDrivers[1].Trips != 2 {
		t.Errorf("Expected Suda Rakdee with 2 trips second, got %+v", summary.TopDrivers[1])
	}
}

func TestBuildSummary_TopListsCapped(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	var logs []*domain.TripLog
	for i := 0; i < 8; i++ {
		logs = append(logs, &domain.TripLog{
			ID:          fmt.Sprintf("log-%d", i),
			CarID:       "car-1",
			DriverName:  fmt.Sprintf("Driver %d", i),
			Location:    fmt.Sprintf("Location %d", i),
			IsCompleted: true,
			CreatedAt:   now,
		})
	}

	summary := service.BuildSummary(logs, nil, nil, now)

	if len(summary.TopLocations) != 5 {
		t.Errorf("Expected top locations capped at 5, got %d", len(summary.TopLocations))
	}
	if len(summary.TopDrivers) != 5 {
		t.Errorf("Expected top drivers capped at 5, got %d", len(summary.TopDrivers))
	}
}

func TestBuildSummary_TrendAndTimeOfDay(t *testing.T) {
	t.Parallel()
	logs, vehicles, now := summaryFixtures()

	summary := service.BuildSummary(logs, vehicles, nil, now)

	if len(summary.DailyTrend) != 7 {
		t.Fatalf("Expected 7 trend buckets, got %d", len(summary.DailyTrend))
	}
	last := summary.DailyTrend[6]
	if last.Date != "2026-08-31" || last.Count != 1 {
		t.Errorf("Expected today's bucket 2026-08-31 with 1 trip, got %+v", last)
	}
	if summary.DailyTrend[5].Count != 1 || summary.DailyTrend[4].Count != 1 {
		t.Error("Expected one trip in each of the two previous days")
	}
	// The 10-day-old charge session falls outside the window.
	total := 0
	for _, p := range summary.DailyTrend {
		total += p.Count
	}
	if total != 3 {
		t.Errorf("Expected 3 trips inside the 7-day window, got %d", total)
	}

	// log-1 at 13:00 and log-4 at 15:00 are afternoon; log-2 at 10:00 and
	// log-3 at 08:00 are morning.
	if summary.TimeOfDay.Morning != 2 || summary.TimeOfDay.Afternoon != 2 {
		t.Errorf("Expected 2/2 morning/afternoon split, got %+v", summary.TimeOfDay)
	}
}

func TestBuildSummary_VehicleTable(t *testing.T) {
	t.Parallel()
	logs, vehicles, now := summaryFixtures()

	summary := service.BuildSummary(logs, vehicles, nil, now)

	if len(summary.Vehicles) != 3 {
		t.Fatalf("Expected 3 vehicle rows, got %d", len(summary.Vehicles))
	}
	// Sorted by distance descending.
	if summary.Vehicles[0].PlateNumber != "1กข 1234" || summary.Vehicles[0].Distance != 80 {
		t.Errorf("Expected car-1 with 80 km first, got %+v", summary.Vehicles[0])
	}
	if summary.Vehicles[0].FuelCost != 300 {
		t.Errorf("Expected car-1 fuel cost 300, got %f", summary.Vehicles[0].FuelCost)
	}

	if len(summary.CarTypes) != 2 {
		t.Fatalf("Expected 2 car types, got %d", len(summary.CarTypes))
	}
	// Sorted by name: pickup before sedan.
	if summary.CarTypes[0].Name != "pickup" || summary.CarTypes[0].Total != 2 || summary.CarTypes[0].Active != 1 {
		t.Errorf("Unexpected pickup utilization: %+v", summary.CarTypes[0])
	}
}

func TestBuildSummary_RecentFeed(t *testing.T) {
	t.Parallel()
	logs, vehicles, now := summaryFixtures()

	recents := []*domain.TripLog{
		{ID: "log-open", CarID: "car-1", DriverName: "Somchai Jaidee", Location: "Site C", StartMileage: 1080, CreatedAt: now},
		logs[0],
	}

	summary := service.BuildSummary(logs, vehicles, recents, now)

	if len(summary.Recent) != 2 {
		t.Fatalf("Expected 2 recent entries, got %d", len(summary.Recent))
	}
	if summary.Recent[0].Completed {
		t.Error("Expected the open log to show as not completed")
	}
	if summary.Recent[0].Distance != 0 {
		t.Error("Expected no distance for an open log")
	}
	if summary.Recent[0].PlateNumber != "1กข 1234" {
		t.Errorf("Expected plate resolved from the registry, got %s", summary.Recent[0].PlateNumber)
	}
	if summary.Recent[1].Distance != 50 {
		t.Errorf("Expected distance 50 on the completed entry, got %f", summary.Recent[1].Distance)
	}
}

func TestDashboardRefresh(t *testing.T) {
	t.Parallel()
	vehicles := NewMockVehicleRepository()
	logs := NewMockTripLogRepository()
	vehicles.AddVehicle(&domain.Vehicle{ID: "car-1", PlateNumber: "1กข 1234", Status: domain.VehicleStatusAvailable})
	logs.AddLog(&domain.TripLog{
		ID: "log-1", CarID: "car-1", DriverName: "Somchai Jaidee", Location: "Site A",
		StartMileage: 1000, EndMileage: 1050, IsCompleted: true, CreatedAt: time.Now(),
	})

	dashboard := service.NewDashboardService(vehicles, logs, nil)

	summary, err := dashboard.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalTrips != 1 || summary.TotalDistance != 50 {
		t.Errorf("Expected 1 trip over 50 km, got %d over %f", summary.TotalTrips, summary.TotalDistance)
	}
}
