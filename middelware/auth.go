package middelware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Context keys set by RoleResolver
const (
	ContextUserRole  = "user_role"
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"

	// RoleHeader carries the caller role when no bearer token is sent
	RoleHeader = "X-User-Role"
)

// JWTManager handles JWT token operations
type JWTManager struct {
	Config *models.Config
	Logger logger.Logger
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger) *JWTManager {
	return &JWTManager{
		Config: cfg,
		Logger: log,
		now:    time.Now,
	}
}

// GenerateToken signs an access token for the user and returns it with its lifetime
func (j *JWTManager) GenerateToken(user *models.User) (string, time.Duration, error) {
	if user == nil {
		return "", 0, errors.New("user is required")
	}

	now := j.now()
	ttl := j.Config.JWTExpiresIn
	claims := models.JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", 0, err
	}

	j.Logger.Debugf("Generated JWT token for user: %s", user.ID)
	return tokenString, ttl, nil
}

// ValidateToken parses and verifies a token, returning its claims
func (j *JWTManager) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.Config.JWTSecret), nil
	},
		jwt.WithIssuer(j.Config.AppName),
		jwt.WithAudience(j.Config.AppName),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RoleResolver resolves the caller role once per request.
// A bearer token wins over the role header and a bad token is rejected with 401.
// Requests with neither proceed with RoleNone.
func (j *JWTManager) RoleResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Set(ContextUserRole, models.ParseRole(c.GetHeader(RoleHeader)))
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Invalid Authorization header format", "Authorization header must be in format: Bearer <token>")
			return
		}

		claims, err := j.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			j.Logger.Warnf("Token validation failed: %v", err)
			abortUnauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// RoleFromContext returns the role stored by RoleResolver
func RoleFromContext(c *gin.Context) models.Role {
	value, ok := c.Get(ContextUserRole)
	if !ok {
		return models.RoleNone
	}
	role, _ := value.(models.Role)
	return role
}

func abortUnauthorized(c *gin.Context, message, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
		Status:  "error",
		Code:    http.StatusUnauthorized,
		Message: message,
		Error: &models.APIError{
			Type:    string(models.KindAuthentication),
			Details: details,
		},
	})
}
