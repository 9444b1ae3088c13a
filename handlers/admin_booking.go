package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pawfolio/middleware"
	"pawfolio/models"
	"pawfolio/services/scheduling"
)

// AdminBookingHandler exposes the booking engine's orchestrator
// operations over the admin API.
type AdminBookingHandler struct {
	Orchestrator *scheduling.Orchestrator
	// AutoAssignDefault is applied when a request does not say whether
	// series propagation may auto-assign sitters.
	AutoAssignDefault bool
}

func actorID(c *gin.Context) string {
	return c.GetString(middleware.ActorIDKey)
}

func (h *AdminBookingHandler) policyFrom(c *gin.Context) scheduling.AutoAssignmentPolicy {
	switch c.Query("autoAssign") {
	case "true":
		return scheduling.AutoAssignmentPolicy{Enabled: true}
	case "false":
		return scheduling.AutoAssignmentPolicy{Enabled: false}
	}
	return scheduling.AutoAssignmentPolicy{Enabled: h.AutoAssignDefault}
}

// CreateBooking handles POST /api/admin/bookings.
func (h *AdminBookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Orchestrator.CreateBooking(c.Request.Context(), actorID(c), req)
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// CreateRecurringSeries handles POST /api/admin/bookings/recurring.
func (h *AdminBookingHandler) CreateRecurringSeries(c *gin.Context) {
	var req models.CreateRecurringSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Orchestrator.CreateRecurringSeries(c.Request.Context(), actorID(c), req)
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetBooking handles GET /api/admin/bookings/:id.
func (h *AdminBookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Orchestrator.GetBooking(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus handles PATCH /api/admin/bookings/:id/status.
func (h *AdminBookingHandler) UpdateBookingStatus(c *gin.Context) {
	var body struct {
		NewStatus models.BookingStatus `json:"newStatus" binding:"required"`
		Reason    string               `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req := models.UpdateBookingStatusRequest{
		BookingID: c.Param("id"),
		NewStatus: body.NewStatus,
		Reason:    body.Reason,
	}
	booking, report, err := h.Orchestrator.UpdateBookingStatus(c.Request.Context(), actorID(c), req, h.policyFrom(c))
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking, "propagation": report})
}

// AssignSitter handles POST /api/admin/bookings/:id/sitter.
func (h *AdminBookingHandler) AssignSitter(c *gin.Context) {
	var body struct {
		SitterID string `json:"sitterId" binding:"required"`
		Replace  bool   `json:"replace,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req := models.AssignSitterRequest{
		BookingID: c.Param("id"),
		SitterID:  body.SitterID,
		Replace:   body.Replace,
	}
	booking, report, err := h.Orchestrator.AssignSitter(c.Request.Context(), actorID(c), req, h.policyFrom(c))
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking, "propagation": report})
}

// UnassignSitter handles DELETE /api/admin/bookings/:id/sitter.
func (h *AdminBookingHandler) UnassignSitter(c *gin.Context) {
	booking, err := h.Orchestrator.UnassignSitter(c.Request.Context(), actorID(c), c.Param("id"), c.Query("reason"))
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// BulkAssignSeries handles POST /api/admin/series/:id/bulk-assign.
func (h *AdminBookingHandler) BulkAssignSeries(c *gin.Context) {
	var body struct {
		SitterID string `json:"sitterId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req := models.BulkAssignSeriesRequest{SeriesID: c.Param("id"), SitterID: body.SitterID}
	outcomes, err := h.Orchestrator.BulkAssignSeries(c.Request.Context(), actorID(c), req)
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes})
}

// RecommendSitters handles GET /api/admin/bookings/:id/recommendations.
func (h *AdminBookingHandler) RecommendSitters(c *gin.Context) {
	recs, err := h.Orchestrator.RecommendSitters(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
