package handlers

import (
	"net/http"

	"salon_backend/internal/appstate"
	"salon_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StateHandler exposes the aggregated application state.
type StateHandler struct {
	state   *appstate.State
	session *services.SessionManager
}

func NewStateHandler(state *appstate.State, session *services.SessionManager) *StateHandler {
	return &StateHandler{state: state, session: session}
}

// GetState returns every collection plus the load status and current role.
func (h *StateHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state": h.state.Snapshot(),
		"user":  h.session.Current(),
		"role":  h.session.Role(),
	})
}

// ReloadState fetches all collections again.
func (h *StateHandler) ReloadState(c *gin.Context) {
	if err := h.state.Load(c.Request.Context()); err != nil {
		respondServiceError(c, "ReloadState", err, "Não foi possível carregar os dados.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.state.Snapshot()})
}
