package handlers

import (
	"net/http"

	"salon_backend/internal/models"
	"salon_backend/internal/services"
	"salon_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AssistantHandler forwards admin prompts to the text assistant.
type AssistantHandler struct {
	completer services.Completer
}

func NewAssistantHandler(completer services.Completer) *AssistantHandler {
	return &AssistantHandler{completer: completer}
}

// Complete handles one prompt. Assistant failures carry their own message.
func (h *AssistantHandler) Complete(c *gin.Context) {
	var req models.AssistantRequest
	if !bindJSON(c, "AssistantComplete", &req) {
		return
	}
	if utils.IsEmpty(req.Prompt) {
		utils.RespondValidationFailed(c, "Escreva uma pergunta para o assistente.", "prompt is required")
		return
	}

	text, err := h.completer.Complete(c.Request.Context(), req.Prompt)
	if err != nil {
		respondServiceError(c, "AssistantComplete", err, "Falha ao comunicar com o assistente de IA.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
