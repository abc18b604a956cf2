package middleware

import (
	"net/http"
	"strings"

	"salon_backend/internal/models"
	"salon_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUserName = "userName"
	ContextUserRole = "userRole"
)

// CurrentSession exposes the identity that is logged in right now.
type CurrentSession interface {
	Current() *models.User
}

// AuthMiddleware creates a Gin middleware for JWT authentication. A token is
// only accepted while its user is still the active session, so logging out
// or switching users invalidates earlier tokens.
func AuthMiddleware(issuer *utils.TokenIssuer, session CurrentSession) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Faça login para continuar.", "Authorization header required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Faça login para continuar.", "Use Bearer <token>"))
			return
		}

		claims, err := issuer.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Sessão inválida ou expirada.", err.Error()))
			return
		}

		current := session.Current()
		if current == nil || current.ID != claims.UserID {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Sessão encerrada. Faça login novamente.", "token does not match the active session"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextUserRole, string(models.RoleOf(current)))

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the session role set by AuthMiddleware is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...models.SessionRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Acesso negado.", "role not found; AuthMiddleware must run first"))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(role, string(r)) {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Você não tem permissão para acessar este recurso.", "role "+role+" not allowed"))
	}
}
