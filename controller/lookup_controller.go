package controller

import (
	"net/http"

	"gearguard-backend/services"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

// LookupController serves the read-only directory, calendar and report endpoints
type LookupController struct {
	directory services.DirectoryServiceInterface
	calendar  services.CalendarServiceInterface
	reports   services.ReportServiceInterface
	logger    logger.Logger
}

func NewLookupController(
	directory services.DirectoryServiceInterface,
	calendar services.CalendarServiceInterface,
	reports services.ReportServiceInterface,
	logger logger.Logger,
) *LookupController {
	return &LookupController{
		directory: directory,
		calendar:  calendar,
		reports:   reports,
		logger:    logger,
	}
}

// ListTechnicians handles GET /users/technicians
// @Summary List technicians
// @Tags Directory
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Technician}
// @Router /users/technicians [get]
func (h *LookupController) ListTechnicians(c *gin.Context) {
	techs, err := h.directory.ListTechnicians(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Technicians retrieved successfully", techs)
}

// ListEvents handles GET /calendar/events
// @Summary List calendar events
// @Tags Calendar
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.CalendarEvent}
// @Router /calendar/events [get]
func (h *LookupController) ListEvents(c *gin.Context) {
	events, err := h.calendar.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Calendar events retrieved successfully", events)
}

// Summary handles GET /reports/summary
// @Summary Dashboard counters
// @Tags Reports
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ReportSummary}
// @Router /reports/summary [get]
func (h *LookupController) Summary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Report generated successfully", summary)
}
