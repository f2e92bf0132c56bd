package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

const (
	topListSize    = 5
	trendDays      = 7
	recentFeedSize = 6
)

// FleetSummary is the aggregated dashboard view over completed logs and the
// current vehicle registry.
type FleetSummary struct {
	TotalTrips        int     `json:"total_trips"`
	TotalDistance     float64 `json:"total_distance_km"`
	TotalFuelCost     float64 `json:"total_fuel_cost"`
	AvgCostPerKm      float64 `json:"avg_cost_per_km"`
	TotalVehicles     int     `json:"total_vehicles"`
	ActiveVehicles    int     `json:"active_vehicles"`
	AvailableVehicles int     `json:"available_vehicles"`

	TopLocations []LocationCount       `json:"top_locations"`
	TopDrivers   []DriverTotals        `json:"top_drivers"`
	CarTypes     []CarTypeUtilization  `json:"car_types"`
	DailyTrend   []DailyTrendPoint     `json:"daily_trend"`
	TimeOfDay    TimeOfDaySplit        `json:"time_of_day"`
	Vehicles     []VehicleUsageTotals  `json:"vehicles"`
	Recent       []RecentActivityEntry `json:"recent"`

	GeneratedAt time.Time `json:"generated_at"`
}

// LocationCount is a per-location trip count.
type LocationCount struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// DriverTotals is a per-driver trip and distance total.
type DriverTotals struct {
	Name     string  `json:"name"`
	Trips    int     `json:"trips"`
	Distance float64 `json:"distance_km"`
}

// CarTypeUtilization reports how many vehicles of a type are currently busy.
type CarTypeUtilization struct {
	Name   string `json:"name"`
	Total  int    `json:"total"`
	Active int    `json:"active"`
}

// DailyTrendPoint is one calendar-day bucket of the 7-day trend.
type DailyTrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TimeOfDaySplit splits trips into morning and afternoon starts.
type TimeOfDaySplit struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
}

// VehicleUsageTotals is the per-vehicle efficiency table row.
type VehicleUsageTotals struct {
	PlateNumber string  `json:"plate_number"`
	Model       string  `json:"model"`
	Trips       int     `json:"trips"`
	Distance    float64 `json:"distance_km"`
	FuelCost    float64 `json:"fuel_cost"`
}

// RecentActivityEntry is one row of the recent-activity feed.
type RecentActivityEntry struct {
	CarID       string    `json:"car_id"`
	PlateNumber string    `json:"plate_number"`
	DriverName  string    `json:"driver_name"`
	Location    string    `json:"location"`
	Completed   bool      `json:"completed"`
	Distance    float64   `json:"distance_km,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardService produces the fleet summary, serving it from the Redis
// cache when fresh.
type DashboardService struct {
	vehicleRepo repository.VehicleRepository
	tripLogRepo repository.TripLogRepository
	cacheStore  *redis.CacheStore
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService. cacheStore may be nil.
func NewDashboardService(vehicleRepo repository.VehicleRepository, tripLogRepo repository.TripLogRepository, cacheStore *redis.CacheStore) *DashboardService {
	return &DashboardService{
		vehicleRepo: vehicleRepo,
		tripLogRepo: tripLogRepo,
		cacheStore:  cacheStore,
		now:         time.Now,
	}
}

// Summary returns the current fleet summary, preferring the cached copy.
func (s *DashboardService) Summary(ctx context.Context) (*FleetSummary, error) {
	if s.cacheStore != nil {
		data, err := s.cacheStore.GetSummary(ctx)
		if err == nil && data != nil {
			var summary FleetSummary
			if err := json.Unmarshal(data, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the summary and stores it in the cache.
func (s *DashboardService) Refresh(ctx context.Context) (*FleetSummary, error) {
	logs, err := s.tripLogRepo.GetCompleted(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	recents, err := s.tripLogRepo.GetRecent(ctx, recentFeedSize)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(logs, vehicles, recents, s.now())

	if s.cacheStore != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = s.cacheStore.SetSummary(ctx, data)
		}
	}

	return summary, nil
}

// BuildSummary reduces completed logs and the vehicle registry into the
// dashboard summary. It is pure and deterministic for a fixed now.
func BuildSummary(logs []*domain.TripLog, vehicles []*domain.Vehicle, recents []*domain.TripLog, now time.Time) *FleetSummary {
	summary := &FleetSummary{GeneratedAt: now}

	vehiclesByID := make(map[string]*domain.Vehicle, len(vehicles))
	summary.TotalVehicles = len(vehicles)
	for _, v := range vehicles {
		vehiclesByID[v.ID] = v
		if v.Status == domain.VehicleStatusBusy {
			summary.ActiveVehicles++
		}
	}
	summary.AvailableVehicles = summary.TotalVehicles - summary.ActiveVehicles

	// Totals.
	summary.TotalTrips = len(logs)
	for _, log := range logs {
		summary.TotalDistance += log.Distance()
		summary.TotalFuelCost += log.FuelCost
	}
	if summary.TotalDistance > 0 {
		summary.AvgCostPerKm = summary.TotalFuelCost / summary.TotalDistance
	}

	// 7-day trend, one bucket per calendar day ending today.
	trendIndex := make(map[string]int, trendDays)
	summary.DailyTrend = make([]DailyTrendPoint, trendDays)
	for i := 0; i < trendDays; i++ {
		day := now.AddDate(0, 0, i-(trendDays-1)).Format("2006-01-02")
		summary.DailyTrend[i] = DailyTrendPoint{Date: day}
		trendIndex[day] = i
	}

	locCounts := make(map[string]int)
	driverTotals := make(map[string]*DriverTotals)
	typeTotals := make(map[string]*CarTypeUtilization)
	vehicleTotals := make(map[string]*VehicleUsageTotals)

	for _, v := range vehicles {
		carType := v.CarType
		if carType == "" {
			carType = "general"
		}
		t, ok := typeTotals[carType]
		if !ok {
			t = &CarTypeUtilization{Name: carType}
			typeTotals[carType] = t
		}
		t.Total++
		if v.Status == domain.VehicleStatusBusy {
			t.Active++
		}

		vehicleTotals[v.ID] = &VehicleUsageTotals{PlateNumber: v.PlateNumber, Model: v.Model}
	}

	for _, log := range logs {
		locCounts[log.Location]++

		d, ok := driverTotals[log.DriverName]
		if !ok {
			d = &DriverTotals{Name: log.DriverName}
			driverTotals[log.DriverName] = d
		}
		d.Trips++
		d.Distance += log.Distance()

		if i, ok := trendIndex[log.CreatedAt.Format("2006-01-02")]; ok {
			summary.DailyTrend[i].Count++
		}

		if log.CreatedAt.Hour() < 12 {
			summary.TimeOfDay.Morning++
		} else {
			summary.TimeOfDay.Afternoon++
		}

		if vt, ok := vehicleTotals[log.CarID]; ok {
			vt.Trips++
			vt.Distance += log.Distance()
			vt.FuelCost += log.FuelCost
		}
	}

	for name, count := range locCounts {
		percent := 0.0
		if len(logs) > 0 {
			percent = float64(count) / float64(len(logs)) * 100
		}
		summary.TopLocations = append(summary.TopLocations, LocationCount{Name: name, Count: count, Percent: percent})
	}
	sort.Slice(summary.TopLocations, func(i, j int) bool {
		if summary.TopLocations[i].Count != summary.TopLocations[j].Count {
			return summary.TopLocations[i].Count > summary.TopLocations[j].Count
		}
		return summary.TopLocations[i].Name < summary.TopLocations[j].Name
	})
	if len(summary.TopLocations) > topListSize {
		summary.TopLocations = summary.TopLocations[:topListSize]
	}

	for _, d := range driverTotals {
		summary.TopDrivers = append(summary.TopDrivers, *d)
	}
	sort.Slice(summary.TopDrivers, func(i, j int) bool {
		if summary.TopDrivers[i].Distance != summary.TopDrivers[j].Distance {
			return summary.TopDrivers[i].Distance > summary.TopDrivers[j].Distance
		}
		return summary.TopDrivers[i].Name < summary.TopDrivers[j].Name
	})
	if len(summary.TopDrivers) > topListSize {
		summary.TopDrivers = summary.TopDrivers[:topListSize]
	}

	for _, t := range typeTotals {
		summary.CarTypes = append(summary.CarTypes, *t)
	}
	sort.Slice(summary.CarTypes, func(i, j int) bool {
		return summary.CarTypes[i].Name < summary.CarTypes[j].Name
	})

	for _, vt := range vehicleTotals {
		summary.Vehicles = append(summary.Vehicles, *vt)
	}
	sort.Slice(summary.Vehicles, func(i, j int) bool {
		if summary.Vehicles[i].Distance != summary.Vehicles[j].Distance {
			return summary.Vehicles[i].Distance > summary.Vehicles[j].Distance
		}
		return summary.Vehicles[i].PlateNumber < summary.Vehicles[j].PlateNumber
	})

	for _, log := range recents {
		entry := RecentActivityEntry{
			CarID:      log.CarID,
			DriverName: log.DriverName,
			Location:   log.Location,
			Completed:  log.IsCompleted,
			CreatedAt:  log.CreatedAt,
		}
		if log.IsCompleted {
			entry.Distance = log.Distance()
		}
		if v, ok := vehiclesByID[log.CarID]; ok {
			entry.PlateNumber = v.PlateNumber
		}
		summary.Recent = append(summary.Recent, entry)
	}

	return summary
}
