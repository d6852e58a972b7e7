package middleware

import (
	"net/http"
	"slices"

	"hostel_complaints/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles
func RoleMiddleware(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Principal not found, ensure auth middleware runs first"})
			return
		}

		if !slices.Contains(allowedRoles, p.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// WardenMiddleware checks if the user is a warden
func WardenMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleWarden)
}

// StudentMiddleware checks if the user is a student
func StudentMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleStudent)
}
