package router

import (
	"net/http"

	"salon_backend/internal/appstate"
	"salon_backend/internal/handlers"
	"salon_backend/internal/middleware"
	"salon_backend/internal/models"
	"salon_backend/internal/services"
	"salon_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the components the HTTP layer is built on.
type Dependencies struct {
	State       *appstate.State
	Session     *services.SessionManager
	Issuer      *utils.TokenIssuer
	Assistant   services.Completer
	AuthLimiter *middleware.RateLimiter
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Session, deps.Issuer)
	appointmentHandler := handlers.NewAppointmentHandler(deps.State)
	contentHandler := handlers.NewContentHandler(deps.State)
	stateHandler := handlers.NewStateHandler(deps.State, deps.Session)
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant)

	engine.GET("/ping", ping)

	apiV1 := engine.Group("/api/v1")
	apiV1.GET("/ping", ping)

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler, deps.AuthLimiter)
	SetupStateRoutes(apiV1, stateHandler)
	SetupPublicAppointmentRoutes(apiV1, appointmentHandler)
	SetupPublicContentRoutes(apiV1, contentHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(deps.Issuer, deps.Session))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		admin := authenticated.Group("")
		admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			SetupAdminAppointmentRoutes(admin, appointmentHandler)
			SetupAdminContentRoutes(admin, contentHandler)
			SetupUserRoutes(admin, authHandler)
			SetupAssistantRoutes(admin, assistantHandler)
		}
	}
}

func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
