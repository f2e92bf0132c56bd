package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// VehicleHandler handles HTTP requests for vehicles and their lifecycle
// transitions.
type VehicleHandler struct {
	lifecycleService *service.LifecycleService
	vehicleRepo      repository.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(lifecycleService *service.LifecycleService, vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{
		lifecycleService: lifecycleService,
		vehicleRepo:      vehicleRepo,
	}
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model"`
	CarType     string `json:"car_type"`
	FuelType    string `json:"fuel_type"`
	Class       string `json:"vehicle_class"`
	Status      string `json:"status"`
}

// TripLogResponse is the HTTP representation of a trip log.
type TripLogResponse struct {
	ID             string  `json:"id"`
	CarID          string  `json:"car_id"`
	SessionType    string  `json:"session_type"`
	DriverName     string  `json:"driver_name"`
	DriverPosition string  `json:"driver_position,omitempty"`
	Location       string  `json:"location"`
	StartMileage   float64 `json:"start_mileage"`
	EndMileage     float64 `json:"end_mileage,omitempty"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time,omitempty"`
	FuelLiters     float64 `json:"fuel_liters,omitempty"`
	FuelCost       float64 `json:"fuel_cost,omitempty"`
	BatteryBefore  float64 `json:"battery_before,omitempty"`
	BatteryAfter   float64 `json:"battery_after,omitempty"`
	StationType    string  `json:"station_type,omitempty"`
	StationName    string  `json:"station_name,omitempty"`
	IsCompleted    bool    `json:"is_completed"`
}

// CheckoutDefaultsResponse carries the mileage-continuity default.
type CheckoutDefaultsResponse struct {
	StartMileage float64 `json:"start_mileage"`
	Locked       bool    `json:"locked"`
}

// ResolutionResponse is the deep-link resolution payload.
type ResolutionResponse struct {
	Vehicle  VehicleResponse           `json:"vehicle"`
	OpenLog  *TripLogResponse          `json:"open_log,omitempty"`
	Defaults *CheckoutDefaultsResponse `json:"checkout_defaults,omitempty"`
}

func vehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Model:       v.Model,
		CarType:     v.CarType,
		FuelType:    v.FuelType,
		Class:       string(v.Class),
		Status:      string(v.Status),
	}
}

func tripLogResponse(log *domain.TripLog) *TripLogResponse {
	resp := &TripLogResponse{
		ID:             log.ID,
		CarID:          log.CarID,
		SessionType:    string(log.SessionType),
		DriverName:     log.DriverName,
		DriverPosition: log.DriverPosition,
		Location:       log.Location,
		StartMileage:   log.StartMileage,
		StartTime:      log.StartTime.Format(timeLayout),
		FuelLiters:     log.FuelLiters,
		FuelCost:       log.FuelCost,
		BatteryBefore:  log.BatteryBefore,
		BatteryAfter:   log.BatteryAfter,
		StationType:    string(log.StationType),
		StationName:    log.StationName,
		IsCompleted:    log.IsCompleted,
	}
	if log.IsCompleted {
		resp.EndMileage = log.EndMileage
	}
	if !log.EndTime.IsZero() {
		resp.EndTime = log.EndTime.Format(timeLayout)
	}
	return resp
}

// GetAll handles GET /v1/vehicles - the status board.
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var response []VehicleResponse
	for _, v := range vehicles {
		response = append(response, vehicleResponse(v))
	}

	c.JSON(http.StatusOK, response)
}

// Resolve handles GET /v1/vehicles/:id - the QR deep-link target.
func (h *VehicleHandler) Resolve(c *gin.Context) {
	carID := c.Param("id")

	res, err := h.lifecycleService.Resolve(c.Request.Context(), carID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := ResolutionResponse{Vehicle: vehicleResponse(res.Vehicle)}
	if res.OpenLog != nil {
		response.OpenLog = tripLogResponse(res.OpenLog)
	}
	if res.Defaults != nil {
		response.Defaults = &CheckoutDefaultsResponse{
			StartMileage: res.Defaults.StartMileage,
			Locked:       res.Defaults.Locked,
		}
	}

	respondJSON(c, http.StatusOK, response)
}

// CheckoutRequest is the HTTP request body for checking a vehicle out.
type CheckoutRequest struct {
	StaffCode     string   `json:"staff_code"`
	StartMileage  *float64 `json:"start_mileage"`
	Location      string   `json:"location"`
	BatteryBefore *float64 `json:"battery_before"`
	StationType   string   `json:"station_type"`
	StationName   string   `json:"station_name"`
}

// CheckoutResponse is the HTTP response for a successful checkout.
type CheckoutResponse struct {
	DriverName string           `json:"driver_name"`
	Log        *TripLogResponse `json:"log"`
}

// Checkout handles POST /v1/vehicles/:id/checkout
func (h *VehicleHandler) Checkout(c *gin.Context) {
	carID := c.Param("id")

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.lifecycleService.Checkout(c.Request.Context(), service.CheckoutRequest{
		CarID:         carID,
		StaffCode:     req.StaffCode,
		StartMileage:  req.StartMileage,
		Location:      req.Location,
		BatteryBefore: req.BatteryBefore,
		StationType:   req.StationType,
		StationName:   req.StationName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CheckoutResponse{
		DriverName: result.DriverName,
		Log:        tripLogResponse(result.Log),
	})
}

// CheckInRequest is the HTTP request body for returning a vehicle.
type CheckInRequest struct {
	EndMileage   *float64 `json:"end_mileage"`
	FuelLiters   *float64 `json:"fuel_liters"`
	FuelCost     *float64 `json:"fuel_cost"`
	BatteryAfter *float64 `json:"battery_after"`
}

// CheckIn handles POST /v1/vehicles/:id/checkin
func (h *VehicleHandler) CheckIn(c *gin.Context) {
	carID := c.Param("id")

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	log, err := h.lifecycleService.CheckIn(c.Request.Context(), service.CheckInRequest{
		CarID:        carID,
		EndMileage:   req.EndMileage,
		FuelLiters:   req.FuelLiters,
		FuelCost:     req.FuelCost,
		BatteryAfter: req.BatteryAfter,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripLogResponse(log))
}
