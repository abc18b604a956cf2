package services

import (
	"time"

	"salon_backend/internal/repositories"
)

// Facade bundles the record operations behind a request/response surface
// with simulated network latency.
type Facade struct {
	Services      ServiceCatalogService
	Appointments  AppointmentService
	Announcements AnnouncementService
	Partnerships  PartnershipService
}

// NewFacade wires every facade service to the record store.
func NewFacade(records *repositories.RecordStore, latency time.Duration) *Facade {
	return &Facade{
		Services:      NewServiceCatalogService(records.Services, latency),
		Appointments:  NewAppointmentService(records.Appointments, latency),
		Announcements: NewAnnouncementService(records.Announcements, latency),
		Partnerships:  NewPartnershipService(records.Partnerships, latency),
	}
}
