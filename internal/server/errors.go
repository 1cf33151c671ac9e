package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	authdomain "github.com/artmafra/notas/internal/auth/domain"
	invoicedomain "github.com/artmafra/notas/internal/invoice/domain"
	servicedomain "github.com/artmafra/notas/internal/service/domain"
	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ErrorHandlingMiddleware maps errors attached to the gin context onto a
// single-field JSON body. Internal errors keep a generic message; the real
// cause is logged by the request logger.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{"error": message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, err.Error()
	case isNotFoundError(err):
		return http.StatusNotFound, err.Error()
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, ErrRateLimited.Error()
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, ErrServiceUnavailable.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, supplierdomain.ErrInvalidCNPJ),
		errors.Is(err, supplierdomain.ErrInvalidName),
		errors.Is(err, supplierdomain.ErrInvalidTaxRegime),
		errors.Is(err, supplierdomain.ErrDuplicate),
		errors.Is(err, servicedomain.ErrInvalidCode),
		errors.Is(err, servicedomain.ErrInvalidDescription),
		errors.Is(err, servicedomain.ErrInvalidRate),
		errors.Is(err, servicedomain.ErrDuplicate),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidNumber),
		errors.Is(err, invoicedomain.ErrInvalidDate),
		errors.Is(err, invoicedomain.ErrInvalidValue),
		errors.Is(err, invoicedomain.ErrInvalidMaterial),
		errors.Is(err, invoicedomain.ErrUnsupportedOverrides),
		errors.Is(err, invoicedomain.ErrDuplicate),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrWeakPassword),
		errors.Is(err, authdomain.ErrInvalidUserID),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, auditdomain.ErrInvalidPageToken),
		errors.Is(err, auditdomain.ErrInvalidTimeRange),
		errors.Is(err, auditdomain.ErrInvalidAction):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, supplierdomain.ErrNotFound),
		errors.Is(err, servicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrSupplierNotFound),
		errors.Is(err, invoicedomain.ErrServiceNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrUserInactive),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return true
	default:
		return false
	}
}

// classifyErrorForLog buckets an error for the request log. The status code
// already carries the coarse outcome; this adds the sentinel text.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	switch {
	case isValidationError(err):
		return "validation", err.Error()
	case isNotFoundError(err):
		return "not_found", err.Error()
	case isUnauthorizedError(err):
		return "unauthorized", err.Error()
	case errors.Is(err, ErrRateLimited):
		return "rate_limited", err.Error()
	case errors.Is(err, ErrServiceUnavailable):
		return "unavailable", err.Error()
	default:
		return "internal", err.Error()
	}
}
