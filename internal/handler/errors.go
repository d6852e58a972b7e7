package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"hostel_complaints/internal/middleware"
	"hostel_complaints/internal/model"
	"hostel_complaints/internal/service"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-playground/validator/v10"
)

// statusFor maps a service error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrDuplicateUser):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnknownBlock),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrComplaintNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Store failures and unknown
// errors are logged and reported with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status != http.StatusInternalServerError {
		body := gin.H{"error": publicMessage(err)}
		var fields validation.Errors
		if errors.As(err, &fields) {
			body["fields"] = fields
		}
		c.JSON(status, body)
		return
	}

	logger.Error("request failed",
		"error", err,
		"path", c.FullPath(),
		"request_id", c.GetString(middleware.RequestIDKey),
	)
	if errors.Is(err, service.ErrAccountSetupIncomplete) {
		c.JSON(status, gin.H{"error": service.ErrAccountSetupIncomplete.Error()})
		return
	}
	c.JSON(status, gin.H{"error": "Internal Server Error"})
}

// publicMessage strips wrapped causes so only the kind reaches the client
func publicMessage(err error) string {
	for _, kind := range []error{
		service.ErrInvalidToken,
		service.ErrInvalidCredentials,
		service.ErrDuplicateUser,
		service.ErrValidation,
		service.ErrUnknownBlock,
		service.ErrInvalidRole,
		service.ErrForbidden,
		service.ErrComplaintNotFound,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}

// respondBindError reports a malformed body without echoing decoder or
// validator internals. Missing required fields are listed by JSON name.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, strings.ToLower(fe.Field()))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: missing required fields", "fields": missing})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

func principalOrAbort(c *gin.Context) (*model.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return nil, false
	}
	return p, true
}
