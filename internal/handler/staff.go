package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/service"
)

// StaffHandler handles HTTP requests for the employee directory.
type StaffHandler struct {
	directoryService *service.DirectoryService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(directoryService *service.DirectoryService) *StaffHandler {
	return &StaffHandler{directoryService: directoryService}
}

// StaffResponse is the HTTP response for a directory lookup.
type StaffResponse struct {
	Code     string `json:"code"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
}

// Lookup handles GET /v1/staff/:code
func (h *StaffHandler) Lookup(c *gin.Context) {
	code := c.Param("code")

	staff, err := h.directoryService.Lookup(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StaffResponse{
		Code:     staff.Code,
		FullName: staff.FullName,
		Position: staff.Position,
	})
}
