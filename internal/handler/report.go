package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet/internal/service"
)

// ReportHandler handles HTTP requests for printable reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyUsage handles GET /v1/reports/usage?car_id=&year=&month=
func (h *ReportHandler) MonthlyUsage(c *gin.Context) {
	carID := c.Query("car_id")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid year"})
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid month"})
		return
	}

	report, err := h.reportService.MonthlyUsage(c.Request.Context(), carID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, report)
}
