package models

// AppointmentStatus defines the type for appointment statuses. The values are
// the strings persisted by the salon app and must not change.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pendente"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmado"
	AppointmentStatusCancelled AppointmentStatus = "Recusado"
)

// IsValidAppointmentStatus checks if the provided status is one of the three
// known values.
func IsValidAppointmentStatus(status AppointmentStatus) bool {
	switch status {
	case AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled:
		return true
	default:
		return false
	}
}

// DateLayout is the calendar date format of Appointment.Date.
const DateLayout = "2006-01-02"

// AvailableTimes are the bookable time slots, in display order.
var AvailableTimes = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// IsAvailableTime reports whether t is one of AvailableTimes.
func IsAvailableTime(t string) bool {
	for _, slot := range AvailableTimes {
		if slot == t {
			return true
		}
	}
	return false
}

// Appointment represents a booking request for one service.
type Appointment struct {
	ID          string            `json:"id"`
	ClientName  string            `json:"clientName"`
	ClientPhone string            `json:"clientPhone"`
	Service     ServiceType       `json:"service"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
	UserID      string            `json:"userId,omitempty"` // set only for authenticated clients
}

// NewAppointment is everything the facade needs to create an appointment;
// id and status are assigned by the facade.
type NewAppointment struct {
	ClientName  string
	ClientPhone string
	Service     ServiceType
	Date        string
	Time        string
	UserID      string
}

// AppointmentForm is the booking form submitted by a client.
type AppointmentForm struct {
	ClientName  string      `json:"clientName"`
	ClientPhone string      `json:"clientPhone"`
	Service     ServiceType `json:"service"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
}

// UpdateStatusRequest is the body of an admin review decision.
type UpdateStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

// ClientInfo is the display data for the client behind an appointment.
type ClientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Found bool   `json:"found"`
}

// AppointmentContact bundles the client display data and the prefilled
// messaging link for one appointment.
type AppointmentContact struct {
	Appointment Appointment `json:"appointment"`
	Client      ClientInfo  `json:"client"`
	MessageLink string      `json:"messageLink"`
}
