package handlers

import (
	"net/http"
	"time"

	"salon_backend/internal/appstate"
	"salon_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves the booking views.
type AppointmentHandler struct {
	state *appstate.State
	now   func() time.Time
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(state *appstate.State) *AppointmentHandler {
	return &AppointmentHandler{state: state, now: time.Now}
}

// GetAppointments returns every cached appointment.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.state.Snapshot().Appointments})
}

// GetUpcomingAppointments returns appointments from now on, soonest first.
func (h *AppointmentHandler) GetUpcomingAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.state.UpcomingAppointments(h.now())})
}

// CreateAppointment handles a booking request.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var form models.AppointmentForm
	if !bindJSON(c, "CreateAppointment", &form) {
		return
	}

	appt, err := h.state.AddAppointment(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, "CreateAppointment", err, "Não foi possível solicitar o agendamento.")
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// CancelAppointment removes an appointment. Unknown ids succeed.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := h.state.CancelAppointment(c.Request.Context(), id); err != nil {
		respondServiceError(c, "CancelAppointment", err, "Não foi possível cancelar o agendamento.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UpdateAppointmentStatus records the admin's review decision.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if !bindJSON(c, "UpdateAppointmentStatus", &req) {
		return
	}

	appt, err := h.state.UpdateAppointmentStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, "UpdateAppointmentStatus", err, "Não foi possível atualizar o agendamento.")
		return
	}
	c.JSON(http.StatusOK, appt)
}

// GetAppointmentContact returns the client data and the messaging link.
func (h *AppointmentHandler) GetAppointmentContact(c *gin.Context) {
	contact, err := h.state.ContactFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetAppointmentContact", err, "Não foi possível carregar o contato.")
		return
	}
	c.JSON(http.StatusOK, contact)
}
