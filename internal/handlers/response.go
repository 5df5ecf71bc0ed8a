package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tenxdevs/hymns-backend/internal/platform/apierr"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
)

func init() {
	// Report validation failures under the wire field names, not Go ones.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func RespondFieldErrors(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

// RespondBindingError maps a bind failure to a 400: validator failures get a
// field error map, anything else (malformed JSON, bad coercion) gets the
// fallback message.
func RespondBindingError(c *gin.Context, err error, fallback string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldErrorMessage(fe)
		}
		RespondFieldErrors(c, fields)
		return
	}
	RespondError(c, http.StatusBadRequest, fallback)
}

// RespondServiceError translates a typed service error 1:1; unknown errors
// become a generic 500 with the original cause kept for logging only.
func RespondServiceError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Error())
		return
	}
	if log != nil {
		log.Error("Unexpected handler error", "error", err, "path", c.FullPath())
	}
	RespondError(c, http.StatusInternalServerError, fallback)
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Cannot exceed " + fe.Param() + " characters"
	case "min":
		return "At least " + fe.Param() + " entry is required"
	case "lte":
		return "Cannot exceed " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Invalid value"
	}
}
