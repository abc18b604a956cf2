package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon_backend/internal/models"
	"salon_backend/internal/repositories"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

// AppointmentService is the facade over the appointments collection.
type AppointmentService interface {
	GetAppointments(ctx context.Context) ([]models.Appointment, error)
	AddAppointment(ctx context.Context, data models.NewAppointment) (*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (string, error)
}

type appointmentService struct {
	appointments *repositories.Collection[models.Appointment]
	latency      time.Duration
}

// NewAppointmentService creates a new instance of AppointmentService.
func NewAppointmentService(appointments *repositories.Collection[models.Appointment], latency time.Duration) AppointmentService {
	return &appointmentService{appointments: appointments, latency: latency}
}

func (s *appointmentService) GetAppointments(ctx context.Context) ([]models.Appointment, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.appointments.All(ctx), nil
}

// AddAppointment stores a new appointment with a fresh id and Pending status.
// Slots are not checked for conflicts; two clients may request the same one.
func (s *appointmentService) AddAppointment(ctx context.Context, data models.NewAppointment) (*models.Appointment, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	appt := models.Appointment{
		ID:          newID("apt_"),
		ClientName:  data.ClientName,
		ClientPhone: data.ClientPhone,
		Service:     data.Service,
		Date:        data.Date,
		Time:        data.Time,
		Status:      models.AppointmentStatusPending,
		UserID:      data.UserID,
	}
	err := s.appointments.Mutate(ctx, func(items []models.Appointment) ([]models.Appointment, error) {
		return append(items, appt), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add appointment: %w", err)
	}
	return &appt, nil
}

func (s *appointmentService) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !models.IsValidAppointmentStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	var updated models.Appointment
	err := s.appointments.Mutate(ctx, func(items []models.Appointment) ([]models.Appointment, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Status = status
				updated = items[i]
				return items, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrAppointmentNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CancelAppointment removes the appointment and returns its id. Removing an
// unknown id succeeds and changes nothing.
func (s *appointmentService) CancelAppointment(ctx context.Context, id string) (string, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return "", err
	}
	err := s.appointments.Mutate(ctx, func(items []models.Appointment) ([]models.Appointment, error) {
		kept := items[:0]
		for _, a := range items {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		return kept, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
