package controller

import (
	"net/http"

	"gearguard-backend/models"
	"gearguard-backend/services"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           logger.Logger
	validator        *validator.Validate
}

func NewEquipmentController(equipmentService services.EquipmentServiceInterface, logger logger.Logger) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		logger:           logger,
		validator:        newValidator(),
	}
}

// ListEquipment handles GET /equipment
// @Summary List equipment
// @Tags Equipment
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Equipment}
// @Router /equipment [get]
func (h *EquipmentController) ListEquipment(c *gin.Context) {
	items, err := h.equipmentService.ListEquipment(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Equipment retrieved successfully", items)
}

// CreateEquipment handles POST /equipment
// @Summary Create equipment
// @Description New equipment starts Operational with today's lastMaintenance
// @Tags Equipment
// @Accept json
// @Produce json
// @Param request body models.CreateEquipmentRequest true "Equipment"
// @Success 201 {object} models.APIResponse{data=models.Equipment}
// @Failure 400 {object} models.APIResponse
// @Router /equipment [post]
func (h *EquipmentController) CreateEquipment(c *gin.Context) {
	var req models.CreateEquipmentRequest
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	item, err := h.equipmentService.CreateEquipment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Equipment created successfully", item)
}

// UpdateEquipment handles PUT /equipment/:id
// @Summary Replace equipment fields
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body models.UpdateEquipmentRequest true "Equipment"
// @Success 200 {object} models.APIResponse{data=models.Equipment}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /equipment/{id} [put]
func (h *EquipmentController) UpdateEquipment(c *gin.Context) {
	var req models.UpdateEquipmentRequest
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	item, err := h.equipmentService.UpdateEquipment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Equipment updated successfully", item)
}

// DeleteEquipment handles DELETE /equipment/:id
// @Summary Delete equipment
// @Tags Equipment
// @Param id path string true "Equipment ID"
// @Success 204
// @Router /equipment/{id} [delete]
func (h *EquipmentController) DeleteEquipment(c *gin.Context) {
	if err := h.equipmentService.DeleteEquipment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
