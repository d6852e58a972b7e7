package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"hostel_complaints/internal/model"
	"hostel_complaints/internal/service"
	"hostel_complaints/internal/utils"

	"github.com/gin-gonic/gin"
)

const AuthPrincipalKey = "authPrincipal"

// AuthMiddleware resolves the Authorization header into a principal and
// stores it on the context for the handlers behind it.
func AuthMiddleware(identity service.IdentityService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.ExtractToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		principal, err := identity.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			logger.Error("failed to resolve principal",
				"error", err,
				"request_id", c.GetString(RequestIDKey),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		c.Set(AuthPrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal stored by AuthMiddleware
func GetPrincipal(c *gin.Context) (*model.Principal, bool) {
	val, exists := c.Get(AuthPrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := val.(*model.Principal)
	return p, ok && p != nil
}
