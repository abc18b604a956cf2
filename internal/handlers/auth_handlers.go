package handlers

import (
	"net/http"

	"salon_backend/internal/models"
	"salon_backend/internal/services"
	"salon_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthResponse DTO
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// AuthHandler holds the session manager and the token issuer.
type AuthHandler struct {
	session *services.SessionManager
	issuer  *utils.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(session *services.SessionManager, issuer *utils.TokenIssuer) *AuthHandler {
	return &AuthHandler{session: session, issuer: issuer}
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.issuer.GenerateAccessToken(user.ID, user.Name, string(models.RoleOf(user)))
	if err != nil {
		utils.LogError(err, "Failed to generate access token", map[string]interface{}{"user_id": user.ID})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Não foi possível iniciar a sessão.", "Internal error"))
		return
	}
	c.JSON(status, AuthResponse{User: user, AccessToken: token})
}

// LoginUser handles client login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req models.Credentials
	if !bindJSON(c, "LoginUser", &req) {
		return
	}

	user, err := h.session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, "LoginUser", err, "Não foi possível fazer login.")
		return
	}
	if user == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Email ou senha inválidos.", ""))
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

// LoginAdmin handles the shared administrator passcode.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req models.AdminCodeRequest
	if !bindJSON(c, "LoginAdmin", &req) {
		return
	}

	user, err := h.session.LoginAdmin(c.Request.Context(), req.Code)
	if err != nil {
		respondServiceError(c, "LoginAdmin", err, "Não foi possível fazer login.")
		return
	}
	if user == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Código de administrador inválido.", ""))
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

// RegisterUser handles client registration.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req models.RegistrationPayload
	if !bindJSON(c, "RegisterUser", &req) {
		return
	}

	user, err := h.session.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, "RegisterUser", err, "Não foi possível criar a conta.")
		return
	}
	if user == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Não foi possível criar a conta. O email pode já estar em uso.", ""))
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

// LogoutUser ends the session. Tokens issued before stop working.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	h.session.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada."})
}

// GetCurrentUser returns the active identity.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user := h.session.Current()
	if user == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Faça login para continuar.", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "role": models.RoleOf(user)})
}

// GetUserByID returns a registered client for the admin views.
func (h *AuthHandler) GetUserByID(c *gin.Context) {
	user, ok := h.session.GetUserByID(c.Request.Context(), c.Param("id"))
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cliente não encontrado.", ""))
		return
	}
	c.JSON(http.StatusOK, user)
}
