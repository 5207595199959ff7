package controller

import (
	"net/http"

	"gearguard-backend/models"
	"gearguard-backend/services"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const forgotPasswordMessage = "If the email exists, a reset link was created."

type AuthController struct {
	authService services.AuthServiceInterface
	logger      logger.Logger
	validator   *validator.Validate
}

func NewAuthController(authService services.AuthServiceInterface, logger logger.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
		validator:   newValidator(),
	}
}

// Login handles POST /auth/login
// @Summary User login
// @Description Check credentials and return an access token with the user profile
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse "Invalid email or password"
// @Failure 429 {object} models.APIResponse
// @Router /auth/login [post]
func (h *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", resp)
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create an account. Unknown roles are stored as Technician.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration details"
// @Success 201 {object} models.APIResponse{data=models.UserProfile}
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	profile, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "User registered successfully", profile)
}

// ForgotPassword handles POST /auth/forgot
// @Summary Request a password reset
// @Description The response is the same whether or not the email exists
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /auth/forgot [post]
func (h *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondSuccess(c, http.StatusOK, forgotPasswordMessage, nil)
}

// ResetPassword handles POST /auth/reset
// @Summary Reset a password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse "Invalid or expired reset token"
// @Router /auth/reset [post]
func (h *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Password has been reset", nil)
}
