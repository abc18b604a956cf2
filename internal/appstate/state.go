// Package appstate holds the in-memory view of the salon data that the UI
// reads from. It loads everything once through the facade and then keeps
// the cache in step with each confirmed mutation.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"salon_backend/internal/models"
	"salon_backend/internal/services"
	"salon_backend/pkg/utils"

	"golang.org/x/sync/errgroup"
)

var ErrLoadFailed = errors.New("failed to load salon data")

// Fallback display values for appointments whose client account is gone.
const (
	UnknownClientName  = "Cliente não encontrado"
	UnknownClientPhone = "Telefone não disponível"
)

// Session is the part of the session manager the state depends on.
type Session interface {
	Current() *models.User
	GetUserByID(ctx context.Context, id string) (*models.User, bool)
}

// Snapshot is a copy of the cached collections and load status.
type Snapshot struct {
	Loading       bool                  `json:"loading"`
	Error         string                `json:"error,omitempty"`
	Services      []models.Service      `json:"services"`
	Appointments  []models.Appointment  `json:"appointments"`
	Announcements []models.Announcement `json:"announcements"`
	Partnerships  []models.Partnership  `json:"partnerships"`
}

// State is the application state aggregator. It is safe for concurrent use.
type State struct {
	facade  *services.Facade
	session Session
	now     func() time.Time

	mu            sync.RWMutex
	loading       bool
	err           error
	services      []models.Service
	appointments  []models.Appointment
	announcements []models.Announcement
	partnerships  []models.Partnership
}

// New creates a State in the loading state. Call Load to fill it.
func New(facade *services.Facade, session Session) *State {
	return &State{
		facade:        facade,
		session:       session,
		now:           time.Now,
		loading:       true,
		services:      []models.Service{},
		appointments:  []models.Appointment{},
		announcements: []models.Announcement{},
		partnerships:  []models.Partnership{},
	}
}

// Load fetches the four collections concurrently. If any fetch fails the
// cache is left as it was and Err reports ErrLoadFailed.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var (
		svcs  []models.Service
		appts []models.Appointment
		ans   []models.Announcement
		parts []models.Partnership
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		svcs, err = s.facade.Services.GetServices(gctx)
		return err
	})
	g.Go(func() (err error) {
		appts, err = s.facade.Appointments.GetAppointments(gctx)
		return err
	})
	g.Go(func() (err error) {
		ans, err = s.facade.Announcements.GetAnnouncements(gctx)
		return err
	})
	g.Go(func() (err error) {
		parts, err = s.facade.Partnerships.GetPartnerships(gctx)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		utils.LogError(err, "Failed to load salon data")
		s.err = ErrLoadFailed
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	s.err = nil
	s.services = nonNil(svcs)
	s.appointments = nonNil(appts)
	s.announcements = nonNil(ans)
	s.partnerships = nonNil(parts)
	utils.LogInfo("Salon data loaded", map[string]interface{}{
		"services":      len(s.services),
		"appointments":  len(s.appointments),
		"announcements": len(s.announcements),
		"partnerships":  len(s.partnerships),
	})
	return nil
}

// Loading reports whether a load is in progress or has not run yet.
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns ErrLoadFailed after a failed load, nil otherwise.
func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Loading:       s.loading,
		Services:      append([]models.Service{}, s.services...),
		Appointments:  append([]models.Appointment{}, s.appointments...),
		Announcements: append([]models.Announcement{}, s.announcements...),
		Partnerships:  append([]models.Partnership{}, s.partnerships...),
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}

// --- Appointments ---

// AddAppointment validates a booking form and submits it. The appointment is
// owned by the current user only when a client is logged in.
func (s *State) AddAppointment(ctx context.Context, form models.AppointmentForm) (*models.Appointment, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	data := models.NewAppointment{
		ClientName:  strings.TrimSpace(form.ClientName),
		ClientPhone: strings.TrimSpace(form.ClientPhone),
		Service:     form.Service,
		Date:        form.Date,
		Time:        form.Time,
	}
	if u := s.session.Current(); models.RoleOf(u) == models.RoleClient {
		data.UserID = u.ID
	}

	appt, err := s.facade.Appointments.AddAppointment(ctx, data)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.appointments = append(s.appointments, *appt)
	s.mu.Unlock()
	return appt, nil
}

func (s *State) validateForm(form models.AppointmentForm) error {
	if utils.IsEmpty(form.ClientName) || utils.IsEmpty(form.ClientPhone) ||
		form.Service == "" || form.Date == "" || form.Time == "" {
		return fmt.Errorf("%w: all fields are required", services.ErrValidation)
	}
	if !s.hasService(form.Service) {
		return fmt.Errorf("%w: unknown service %q", services.ErrValidation, form.Service)
	}
	if !models.IsAvailableTime(form.Time) {
		return fmt.Errorf("%w: %q is not an available time", services.ErrValidation, form.Time)
	}
	day, err := time.Parse(models.DateLayout, form.Date)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", services.ErrValidation)
	}
	if day.Format(models.DateLayout) < s.now().Format(models.DateLayout) {
		return fmt.Errorf("%w: date is in the past", services.ErrValidation)
	}
	return nil
}

func (s *State) hasService(id models.ServiceType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.ID == id {
			return true
		}
	}
	return false
}

func (s *State) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	updated, err := s.facade.Appointments.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.appointments {
		if s.appointments[i].ID == updated.ID {
			s.appointments[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *State) CancelAppointment(ctx context.Context, id string) error {
	removed, err := s.facade.Appointments.CancelAppointment(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.appointments = filterOut(s.appointments, removed, func(a models.Appointment) string { return a.ID })
	s.mu.Unlock()
	return nil
}

// UpcomingAppointments returns appointments at or after now, soonest first.
// Entries whose date or time cannot be parsed are skipped.
func (s *State) UpcomingAppointments(now time.Time) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type dated struct {
		at   time.Time
		appt models.Appointment
	}
	var upcoming []dated
	for _, a := range s.appointments {
		at, err := time.ParseInLocation(models.DateLayout+" 15:04", a.Date+" "+a.Time, now.Location())
		if err != nil || at.Before(now) {
			continue
		}
		upcoming = append(upcoming, dated{at: at, appt: a})
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].at.Before(upcoming[j].at) })

	out := make([]models.Appointment, 0, len(upcoming))
	for _, d := range upcoming {
		out = append(out, d.appt)
	}
	return out
}

// ContactFor returns the client display data of an appointment together with
// a prefilled messaging link.
func (s *State) ContactFor(ctx context.Context, id string) (*models.AppointmentContact, error) {
	appt, ok := s.findAppointment(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", services.ErrAppointmentNotFound, id)
	}

	client := models.ClientInfo{Name: UnknownClientName, Phone: UnknownClientPhone}
	name, phone := appt.ClientName, appt.ClientPhone
	if appt.UserID != "" {
		if u, found := s.session.GetUserByID(ctx, appt.UserID); found {
			client = models.ClientInfo{Name: u.Name, Phone: u.Phone, Found: true}
			name, phone = u.Name, u.Phone
		}
	}

	date := appt.Date
	if d, err := time.Parse(models.DateLayout, appt.Date); err == nil {
		date = utils.FormatLongDatePtBR(d)
	}
	message := fmt.Sprintf("Olá, %s! Sobre o seu agendamento de %s para o dia %s às %s.",
		utils.FirstName(name), appt.Service, date, appt.Time)

	return &models.AppointmentContact{
		Appointment: appt,
		Client:      client,
		MessageLink: utils.WhatsAppLink(phone, message),
	}, nil
}

func (s *State) findAppointment(id string) (models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return models.Appointment{}, false
}

// --- Price list ---

func (s *State) UpdateServicePrice(ctx context.Context, id models.ServiceType, price float64) (*models.Service, error) {
	updated, err := s.facade.Services.UpdateServicePrice(ctx, id, price)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.services {
		if s.services[i].ID == updated.ID {
			s.services[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// --- Announcements and partnerships ---

func (s *State) AddAnnouncement(ctx context.Context, content string) (*models.Announcement, error) {
	if utils.IsEmpty(content) {
		return nil, fmt.Errorf("%w: content is required", services.ErrValidation)
	}
	an, err := s.facade.Announcements.AddAnnouncement(ctx, strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.announcements = append([]models.Announcement{*an}, s.announcements...)
	s.mu.Unlock()
	return an, nil
}

func (s *State) DeleteAnnouncement(ctx context.Context, id string) error {
	removed, err := s.facade.Announcements.DeleteAnnouncement(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.announcements = filterOut(s.announcements, removed, func(a models.Announcement) string { return a.ID })
	s.mu.Unlock()
	return nil
}

func (s *State) AddPartnership(ctx context.Context, name, description string) (*models.Partnership, error) {
	if utils.IsEmpty(name) || utils.IsEmpty(description) {
		return nil, fmt.Errorf("%w: name and description are required", services.ErrValidation)
	}
	p, err := s.facade.Partnerships.AddPartnership(ctx, strings.TrimSpace(name), strings.TrimSpace(description))
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.partnerships = append(s.partnerships, *p)
	s.mu.Unlock()
	return p, nil
}

func (s *State) DeletePartnership(ctx context.Context, id string) error {
	removed, err := s.facade.Partnerships.DeletePartnership(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.partnerships = filterOut(s.partnerships, removed, func(p models.Partnership) string { return p.ID })
	s.mu.Unlock()
	return nil
}

func filterOut[T any](items []T, id string, idOf func(T) string) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
