package middelware

import (
	"net/http"
	"strings"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware provides request logging
type LoggingMiddleware struct {
	logger logger.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(log logger.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: log,
	}
}

// StructuredLogger logs each request with level chosen by response status
func (m *LoggingMiddleware) StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if strings.HasSuffix(path, "/health") {
			return
		}

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    path,
			"query":   c.Request.URL.RawQuery,
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if role := RoleFromContext(c); role != models.RoleNone {
			fields["role"] = role.String()
		}
		if userID, ok := c.Get(ContextUserID); ok {
			fields["user_id"] = userID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		log := m.logger.WithFields(fields)
		switch {
		case status >= http.StatusInternalServerError:
			log.Errorf("%s %s -> %d", c.Request.Method, path, status)
		case status >= http.StatusBadRequest:
			log.Warnf("%s %s -> %d", c.Request.Method, path, status)
		default:
			log.Infof("%s %s -> %d", c.Request.Method, path, status)
		}
	}
}

// Recovery turns a panic into a 500 envelope
func (m *LoggingMiddleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		m.logger.Errorf("Panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
			Error: &models.APIError{
				Type:    string(models.KindInternal),
				Details: "An unexpected error occurred",
			},
		})
	})
}
