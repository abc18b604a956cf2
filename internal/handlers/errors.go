package handlers

import (
	"context"
	"errors"
	"net/http"

	"salon_backend/internal/appstate"
	"salon_backend/internal/services"
	"salon_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors to API errors with user-facing
// pt-BR messages. fallback is shown for unexpected failures.
func respondServiceError(c *gin.Context, op string, err error, fallback string) {
	utils.LogError(err, op+": request failed", map[string]interface{}{"path": c.FullPath()})

	var aerr *services.AssistantError
	switch {
	case errors.As(err, &aerr):
		status, code := http.StatusBadGateway, utils.ErrCodeUpstream
		if errors.Is(err, services.ErrAssistantUnavailable) {
			status, code = http.StatusServiceUnavailable, utils.ErrCodeUnavailable
		} else if errors.Is(err, services.ErrValidation) {
			status, code = http.StatusBadRequest, utils.ErrCodeValidationFailed
		}
		utils.RespondWithError(c, utils.NewAPIError(status, code, aerr.Message, err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, "Verifique os dados informados.", err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		utils.RespondValidationFailed(c, "Status de agendamento inválido.", err.Error())
	case errors.Is(err, services.ErrAppointmentNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Agendamento não encontrado.", err.Error()))
	case errors.Is(err, services.ErrServiceNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Serviço não encontrado.", err.Error()))
	case errors.Is(err, appstate.ErrLoadFailed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeUnavailable, "Não foi possível carregar os dados. Tente novamente.", err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeUnavailable, "A operação foi interrompida. Tente novamente.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, fallback, "Internal error"))
	}
}

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, op string, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogError(err, op+": Failed to bind JSON")
		utils.RespondValidationFailed(c, "Dados inválidos. Preencha todos os campos.", err.Error())
		return false
	}
	return true
}
