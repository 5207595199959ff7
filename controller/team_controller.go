package controller

import (
	"net/http"

	"gearguard-backend/models"
	"gearguard-backend/services"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	teamService services.TeamServiceInterface
	logger      logger.Logger
}

func NewTeamController(teamService services.TeamServiceInterface, logger logger.Logger) *TeamController {
	return &TeamController{
		teamService: teamService,
		logger:      logger,
	}
}

// ListTeams handles GET /teams
// @Summary List teams
// @Description Members are returned with their display names (null when the email is unknown)
// @Tags Teams
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.TeamView}
// @Router /teams [get]
func (h *TeamController) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Teams retrieved successfully", teams)
}

// CreateTeam handles POST /teams
// @Summary Create a team
// @Description Every member must be a Technician; the invalid emails are listed in error.invalid
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body models.TeamRequest true "Team"
// @Success 201 {object} models.APIResponse{data=models.Team}
// @Failure 400 {object} models.APIResponse
// @Router /teams [post]
func (h *TeamController) CreateTeam(c *gin.Context) {
	var req models.TeamRequest
	if !bindJSON(c, nil, h.logger, &req) {
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Team created successfully", team)
}

// UpdateTeam handles PUT /teams/:id
// @Summary Update a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param request body models.TeamRequest true "Team"
// @Success 200 {object} models.APIResponse{data=models.Team}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /teams/{id} [put]
func (h *TeamController) UpdateTeam(c *gin.Context) {
	var req models.TeamRequest
	if !bindJSON(c, nil, h.logger, &req) {
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Team updated successfully", team)
}

// DeleteTeam handles DELETE /teams/:id
// @Summary Delete a team
// @Tags Teams
// @Param id path string true "Team ID"
// @Success 204
// @Router /teams/{id} [delete]
func (h *TeamController) DeleteTeam(c *gin.Context) {
	if err := h.teamService.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
