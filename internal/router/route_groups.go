package router

import (
	"salon_backend/internal/handlers"
	"salon_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up login, admin code and registration. They are
// rate limited per client when limiter is set.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler, limiter *middleware.RateLimiter) {
	if limiter != nil {
		group.Use(middleware.RateLimit(limiter))
	}
	group.POST("/login", authHandler.LoginUser)
	group.POST("/admin", authHandler.LoginAdmin)
	group.POST("/register", authHandler.RegisterUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupStateRoutes sets up the aggregated state routes.
func SetupStateRoutes(apiGroup *gin.RouterGroup, stateHandler *handlers.StateHandler) {
	stateRoutes := apiGroup.Group("/state")
	{
		stateRoutes.GET("", stateHandler.GetState)
		stateRoutes.POST("/reload", stateHandler.ReloadState)
	}
}

// SetupPublicAppointmentRoutes sets up the client booking routes.
func SetupPublicAppointmentRoutes(apiGroup *gin.RouterGroup, appointmentHandler *handlers.AppointmentHandler) {
	appointmentRoutes := apiGroup.Group("/appointments")
	{
		appointmentRoutes.GET("", appointmentHandler.GetAppointments)
		appointmentRoutes.GET("/upcoming", appointmentHandler.GetUpcomingAppointments)
		appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
		appointmentRoutes.DELETE("/:id", appointmentHandler.CancelAppointment)
	}
}

// SetupAdminAppointmentRoutes sets up the appointment review routes.
func SetupAdminAppointmentRoutes(adminGroup *gin.RouterGroup, appointmentHandler *handlers.AppointmentHandler) {
	appointmentRoutes := adminGroup.Group("/appointments")
	{
		appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		appointmentRoutes.GET("/:id/contact", appointmentHandler.GetAppointmentContact)
	}
}

// SetupPublicContentRoutes sets up the read-only price list, announcement
// and partnership routes.
func SetupPublicContentRoutes(apiGroup *gin.RouterGroup, contentHandler *handlers.ContentHandler) {
	apiGroup.GET("/services", contentHandler.GetServices)
	apiGroup.GET("/announcements", contentHandler.GetAnnouncements)
	apiGroup.GET("/partnerships", contentHandler.GetPartnerships)
}

// SetupAdminContentRoutes sets up the content management routes.
func SetupAdminContentRoutes(adminGroup *gin.RouterGroup, contentHandler *handlers.ContentHandler) {
	adminGroup.PUT("/services/:id/price", contentHandler.UpdateServicePrice)

	announcementRoutes := adminGroup.Group("/announcements")
	{
		announcementRoutes.POST("", contentHandler.CreateAnnouncement)
		announcementRoutes.DELETE("/:id", contentHandler.DeleteAnnouncement)
	}

	partnershipRoutes := adminGroup.Group("/partnerships")
	{
		partnershipRoutes.POST("", contentHandler.CreatePartnership)
		partnershipRoutes.DELETE("/:id", contentHandler.DeletePartnership)
	}
}

func SetupUserRoutes(adminGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	adminGroup.GET("/users/:id", authHandler.GetUserByID)
}

func SetupAssistantRoutes(adminGroup *gin.RouterGroup, assistantHandler *handlers.AssistantHandler) {
	adminGroup.POST("/assistant/complete", assistantHandler.Complete)
}
