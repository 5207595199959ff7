package controller

import (
	"net/http"
	"strconv"

	"gearguard-backend/middelware"
	"gearguard-backend/models"
	"gearguard-backend/services"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

// RequestController serves the maintenance request workflow.
// Authorization and field rules live in the service; the controller only passes the resolved role.
type RequestController struct {
	requestService services.MaintenanceRequestServiceInterface
	logger         logger.Logger
}

func NewRequestController(requestService services.MaintenanceRequestServiceInterface, logger logger.Logger) *RequestController {
	return &RequestController{
		requestService: requestService,
		logger:         logger,
	}
}

// ListRequests handles GET /maintenance-requests
// @Summary List maintenance requests
// @Description Newest first. Filters are optional; overdue=true keeps requests past their due date that are not Repaired.
// @Tags Maintenance Requests
// @Produce json
// @Param status query string false "Status filter"
// @Param equipmentId query string false "Equipment filter"
// @Param assignedToEmail query string false "Assignee filter"
// @Param overdue query bool false "Only overdue requests"
// @Success 200 {object} models.APIResponse{data=[]models.MaintenanceRequest}
// @Failure 400 {object} models.APIResponse
// @Router /maintenance-requests [get]
func (h *RequestController) ListRequests(c *gin.Context) {
	filter := models.RequestFilter{
		Status:          c.Query("status"),
		EquipmentID:     c.Query("equipmentId"),
		AssignedToEmail: c.Query("assignedToEmail"),
	}
	if raw := c.Query("overdue"); raw != "" {
		overdue, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, h.logger, models.NewFieldError("overdue", "overdue must be true or false"))
			return
		}
		filter.OverdueOnly = overdue
	}

	items, err := h.requestService.ListRequests(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Maintenance requests retrieved successfully", items)
}

// CreateRequest handles POST /maintenance-requests
// @Summary Create a maintenance request
// @Description Technicians may not assign the request or schedule it
// @Tags Maintenance Requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param X-User-Role header string false "Caller role when no bearer token is sent"
// @Param request body models.CreateRequestInput true "Request"
// @Success 201 {object} models.APIResponse{data=models.MaintenanceRequest}
// @Failure 400 {object} models.APIResponse
// @Failure 403 {object} models.APIResponse
// @Router /maintenance-requests [post]
func (h *RequestController) CreateRequest(c *gin.Context) {
	var in models.CreateRequestInput
	if !bindJSON(c, nil, h.logger, &in) {
		return
	}

	item, err := h.requestService.CreateRequest(c.Request.Context(), middelware.RoleFromContext(c), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Maintenance request created successfully", item)
}

// UpdateRequest handles PATCH /maintenance-requests/:id
// @Summary Update a maintenance request
// @Description Only workflow fields can change. A field sent as null is cleared.
// @Tags Maintenance Requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param X-User-Role header string false "Caller role when no bearer token is sent"
// @Param id path string true "Request ID"
// @Param request body models.UpdateRequestInput true "Patch"
// @Success 200 {object} models.APIResponse{data=models.MaintenanceRequest}
// @Failure 400 {object} models.APIResponse
// @Failure 403 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /maintenance-requests/{id} [patch]
func (h *RequestController) UpdateRequest(c *gin.Context) {
	var in models.UpdateRequestInput
	if !bindJSON(c, nil, h.logger, &in) {
		return
	}

	item, err := h.requestService.UpdateRequest(c.Request.Context(), middelware.RoleFromContext(c), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Maintenance request updated successfully", item)
}

// DeleteRequest handles DELETE /maintenance-requests/:id
// @Summary Delete a maintenance request
// @Tags Maintenance Requests
// @Security BearerAuth
// @Param X-User-Role header string false "Caller role when no bearer token is sent"
// @Param id path string true "Request ID"
// @Success 204
// @Failure 403 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /maintenance-requests/{id} [delete]
func (h *RequestController) DeleteRequest(c *gin.Context) {
	if err := h.requestService.DeleteRequest(c.Request.Context(), middelware.RoleFromContext(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
