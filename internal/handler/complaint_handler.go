package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"hostel_complaints/internal/model"
	"hostel_complaints/internal/service"

	"github.com/gin-gonic/gin"
)

// ComplaintHandler handles complaint related requests
type ComplaintHandler struct {
	service service.ComplaintService
	logger  *slog.Logger
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(s service.ComplaintService, logger *slog.Logger) *ComplaintHandler {
	return &ComplaintHandler{service: s, logger: logger}
}

func parseComplaintID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return 0, false
	}
	return id, true
}

func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req model.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	complaint, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	complaints, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *ComplaintHandler) ToggleComplaint(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}

	complaint, err := h.service.Toggle(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), p, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted successfully"})
}

// RegisterComplaintRoutes registers complaint routes behind authMW. Filing is
// gated by studentMW, toggle and delete by wardenMW.
func (h *ComplaintHandler) RegisterComplaintRoutes(rg *gin.RouterGroup, authMW, studentMW, wardenMW gin.HandlerFunc) {
	complaints := rg.Group("/complaints")
	complaints.Use(authMW)
	{
		complaints.GET("", h.ListComplaints)
		complaints.POST("", studentMW, h.CreateComplaint)
		complaints.PUT("/:id", wardenMW, h.ToggleComplaint)
		complaints.DELETE("/:id", wardenMW, h.DeleteComplaint)
	}
}
