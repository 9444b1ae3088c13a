package routes

import (
	"pawfolio/handlers"
	"pawfolio/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminBookingRoutes registers the booking engine's admin endpoints.
func RegisterAdminBookingRoutes(r *gin.Engine, h *handlers.AdminBookingHandler) {
	api := r.Group("/api/admin")
	api.Use(middleware.RateLimitMiddleware())
	api.Use(middleware.AdminAuthMiddleware())
	{
		api.POST("/bookings", h.CreateBooking)
		api.POST("/bookings/recurring", h.CreateRecurringSeries)
		api.GET("/bookings/:id", h.GetBooking)
		api.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
		api.POST("/bookings/:id/sitter", h.AssignSitter)
		api.DELETE("/bookings/:id/sitter", h.UnassignSitter)
		api.GET("/bookings/:id/recommendations", h.RecommendSitters)
		api.POST("/series/:id/bulk-assign", h.BulkAssignSeries)
	}
}

// RegisterHealthRoutes registers the unauthenticated health endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}
