package handlers

import (
	"net/http"

	"salon_backend/internal/appstate"
	"salon_backend/internal/models"
	"salon_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the price list, announcements and partnerships.
type ContentHandler struct {
	state *appstate.State
}

func NewContentHandler(state *appstate.State) *ContentHandler {
	return &ContentHandler{state: state}
}

func (h *ContentHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.state.Snapshot().Services})
}

// UpdateServicePrice handles a price change from the admin panel.
func (h *ContentHandler) UpdateServicePrice(c *gin.Context) {
	var req models.UpdatePriceRequest
	if !bindJSON(c, "UpdateServicePrice", &req) {
		return
	}
	if *req.Price < 0 {
		utils.RespondValidationFailed(c, "O preço não pode ser negativo.", "price must be >= 0")
		return
	}

	svc, err := h.state.UpdateServicePrice(c.Request.Context(), models.ServiceType(c.Param("id")), *req.Price)
	if err != nil {
		respondServiceError(c, "UpdateServicePrice", err, "Não foi possível atualizar o preço.")
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *ContentHandler) GetAnnouncements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.state.Snapshot().Announcements})
}

func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	var req models.CreateAnnouncementRequest
	if !bindJSON(c, "CreateAnnouncement", &req) {
		return
	}
	an, err := h.state.AddAnnouncement(c.Request.Context(), req.Content)
	if err != nil {
		respondServiceError(c, "CreateAnnouncement", err, "Não foi possível publicar o aviso.")
		return
	}
	c.JSON(http.StatusCreated, an)
}

func (h *ContentHandler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if err := h.state.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		respondServiceError(c, "DeleteAnnouncement", err, "Não foi possível remover o aviso.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *ContentHandler) GetPartnerships(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.state.Snapshot().Partnerships})
}

func (h *ContentHandler) CreatePartnership(c *gin.Context) {
	var req models.CreatePartnershipRequest
	if !bindJSON(c, "CreatePartnership", &req) {
		return
	}
	p, err := h.state.AddPartnership(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondServiceError(c, "CreatePartnership", err, "Não foi possível adicionar a parceria.")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ContentHandler) DeletePartnership(c *gin.Context) {
	id := c.Param("id")
	if err := h.state.DeletePartnership(c.Request.Context(), id); err != nil {
		respondServiceError(c, "DeletePartnership", err, "Não foi possível remover a parceria.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
