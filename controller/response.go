package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"gearguard-backend/models"
	"gearguard-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// newValidator reports field names by their json tag
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// formatValidationErrors formats validation errors into readable messages
// and returns the first offending field
func formatValidationErrors(err error) (string, string) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), ""
	}

	var messages []string
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, fieldError.Field()+" is required")
		case "min":
			messages = append(messages, fieldError.Field()+" must be at least "+fieldError.Param())
		case "email":
			messages = append(messages, fieldError.Field()+" must be a valid email")
		default:
			messages = append(messages, fieldError.Field()+" is invalid")
		}
	}

	field := ""
	if len(validationErrors) > 0 {
		field = validationErrors[0].Field()
	}
	return strings.Join(messages, "; "), field
}

// bindJSON decodes and validates the body, writing a 400 envelope on failure
func bindJSON(c *gin.Context, v *validator.Validate, log logger.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debugf("Failed to bind JSON: %v", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    string(models.KindValidation),
				Details: err.Error(),
			},
		})
		return false
	}

	if v == nil {
		return true
	}
	if err := v.Struct(req); err != nil {
		details, field := formatValidationErrors(err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: details,
			Error: &models.APIError{
				Type:    string(models.KindValidation),
				Details: details,
				Field:   field,
			},
		})
		return false
	}
	return true
}

// respondError maps a service error onto the envelope.
// Internal errors are logged and replaced with a generic message.
func respondError(c *gin.Context, log logger.Logger, err error) {
	appErr := models.AsAppError(err)
	code := appErr.StatusCode()

	message := appErr.Message
	details := appErr.Message
	if code >= http.StatusInternalServerError {
		log.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		message = "Internal server error"
		details = "An unexpected error occurred"
	}

	c.JSON(code, models.APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Error: &models.APIError{
			Type:    string(appErr.Kind),
			Details: details,
			Field:   appErr.Field,
			Invalid: appErr.Invalid,
		},
	})
}

func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, models.APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}
