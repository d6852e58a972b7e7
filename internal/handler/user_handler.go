package handler

import (
	"log/slog"
	"net/http"

	"hostel_complaints/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's own profile and the block directory
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: s, logger: logger}
}

func (h *UserHandler) UserType(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"userType": p.Role})
}

func (h *UserHandler) Me(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	details, err := h.service.Details(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *UserHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.service.Blocks(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// RegisterUserRoutes registers the public block listing and the
// authenticated /users/me routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/blocks", h.ListBlocks)

	users := rg.Group("/users")
	users.Use(authMW)
	{
		users.GET("/me/type", h.UserType)
		users.GET("/me", h.Me)
	}
}
