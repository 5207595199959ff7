package controller

import (
	"net/http"
	"strings"
	"time"

	"gearguard-backend/docs"
	"gearguard-backend/middelware"
	"gearguard-backend/models"
	"gearguard-backend/services"
	"gearguard-backend/utils/logger"
	"gearguard-backend/utils/swagger"

	"github.com/gin-gonic/gin"
)

// SweepReporter exposes the maintenance worker state on /health
type SweepReporter interface {
	Status() *models.SweepStatus
}

type Controller struct {
	Auth      *AuthController
	Equipment *EquipmentController
	Request   *RequestController
	Team      *TeamController
	Lookup    *LookupController

	config     *models.Config
	jwtManager *middelware.JWTManager
	limiter    *middelware.RateLimiter
	sweep      SweepReporter
}

func NewController(
	cfg *models.Config,
	svc services.ServiceContainerInterface,
	jwtManager *middelware.JWTManager,
	limiter *middelware.RateLimiter,
	log logger.Logger,
) *Controller {
	return &Controller{
		Auth:       NewAuthController(svc.GetAuthService(), log),
		Equipment:  NewEquipmentController(svc.GetEquipmentService(), log),
		Request:    NewRequestController(svc.GetMaintenanceRequestService(), log),
		Team:       NewTeamController(svc.GetTeamService(), log),
		Lookup:     NewLookupController(svc.GetDirectoryService(), svc.GetCalendarService(), svc.GetReportService(), log),
		config:     cfg,
		jwtManager: jwtManager,
		limiter:    limiter,
	}
}

// SetSweepReporter makes /health include the worker totals and last sweep
func (c *Controller) SetSweepReporter(r SweepReporter) {
	c.sweep = r
}

// RegisterRoutes mounts the API under basePath plus /health and the swagger pages
func (c *Controller) RegisterRoutes(r *gin.Engine, basePath string) {
	r.GET("/health", c.Health)
	r.GET("/swagger", swagger.ServeSwaggerUI(swagger.SwaggerConfig{
		Title:    c.config.AppName + " API",
		LoginURL: joinPath(basePath, "/auth/login"),
	}))
	r.GET("/swagger/doc.json", swagger.ServeDoc(docs.SwaggerInfo.InstanceName()))

	api := r.Group(basePath)
	api.GET("/health", c.Health)

	auth := api.Group("/auth", c.limiter.Middleware())
	auth.POST("/login", c.Auth.Login)
	auth.POST("/register", c.Auth.Register)
	auth.POST("/forgot", c.Auth.ForgotPassword)
	auth.POST("/reset", c.Auth.ResetPassword)

	protected := api.Group("", c.jwtManager.RoleResolver())

	equipment := protected.Group("/equipment")
	equipment.GET("", c.Equipment.ListEquipment)
	equipment.POST("", c.Equipment.CreateEquipment)
	equipment.PUT("/:id", c.Equipment.UpdateEquipment)
	equipment.DELETE("/:id", c.Equipment.DeleteEquipment)

	requests := protected.Group("/maintenance-requests")
	requests.GET("", c.Request.ListRequests)
	requests.POST("", c.Request.CreateRequest)
	requests.PATCH("/:id", c.Request.UpdateRequest)
	requests.DELETE("/:id", c.Request.DeleteRequest)

	teams := protected.Group("/teams")
	teams.GET("", c.Team.ListTeams)
	teams.POST("", c.Team.CreateTeam)
	teams.PUT("/:id", c.Team.UpdateTeam)
	teams.DELETE("/:id", c.Team.DeleteTeam)

	protected.GET("/users/technicians", c.Lookup.ListTechnicians)
	protected.GET("/calendar/events", c.Lookup.ListEvents)
	protected.GET("/reports/summary", c.Lookup.Summary)
}

// Health handles GET /health
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (c *Controller) Health(ctx *gin.Context) {
	status := models.HealthStatus{
		Status:  "ok",
		Ts:      time.Now().Unix(),
		Version: c.config.AppVersion,
		Service: c.config.AppName,
		Store:   c.config.StoreDriver,
	}
	if c.sweep != nil {
		status.Sweep = c.sweep.Status()
	}
	respondSuccess(ctx, http.StatusOK, "healthy", status)
}

func joinPath(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
