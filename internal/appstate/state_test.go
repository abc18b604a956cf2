package appstate

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"salon_backend/internal/models"
	"salon_backend/internal/repositories"
	"salon_backend/internal/services"
	"salon_backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	state   *State
	session *services.SessionManager
	facade  *services.Facade
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend())
	records := repositories.NewRecordStore(store)
	records.Initialize(ctx)
	facade := services.NewFacade(records, 0)
	session := services.NewSessionManager(ctx, repositories.NewAuthRepository(records.Users), store,
		services.SessionConfig{BcryptCost: bcrypt.MinCost})

	st := New(facade, session)
	st.now = func() time.Time { return time.Date(2030, 1, 10, 8, 0, 0, 0, time.UTC) }
	if err := st.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	return fixture{state: st, session: session, facade: facade}
}

func validForm() models.AppointmentForm {
	return models.AppointmentForm{
		ClientName:  "Maria Souza",
		ClientPhone: "(11) 98888-7777",
		Service:     models.ServiceManicure,
		Date:        "2030-01-14",
		Time:        "14:00",
	}
}

func TestStartsLoading(t *testing.T) {
	st := New(&services.Facade{}, nil)
	if !st.Loading() {
		t.Fatal("new state should be loading")
	}
}

func TestLoadPopulatesCache(t *testing.T) {
	f := newFixture(t)
	snap := f.state.Snapshot()
	if snap.Loading || snap.Error != "" {
		t.Fatalf("unexpected status %+v", snap)
	}
	if len(snap.Services) != 3 || snap.Appointments == nil || len(snap.Appointments) != 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

type failingServices struct{}

func (failingServices) GetServices(context.Context) ([]models.Service, error) {
	return nil, errors.New("network down")
}

func (failingServices) UpdateServicePrice(context.Context, models.ServiceType, float64) (*models.Service, error) {
	return nil, errors.New("network down")
}

func TestLoadFailureKeepsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.facade.Announcements.AddAnnouncement(ctx, "Oi"); err != nil {
		t.Fatalf("add: %v", err)
	}

	broken := *f.facade
	broken.Services = failingServices{}
	st := New(&broken, f.session)
	st.services = []models.Service{{ID: models.ServiceManicure}}

	err := st.Load(ctx)
	if !errors.Is(err, ErrLoadFailed) || !errors.Is(st.Err(), ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v / %v", err, st.Err())
	}
	if st.Loading() {
		t.Fatal("loading flag should be cleared after a failed load")
	}
	snap := st.Snapshot()
	if len(snap.Services) != 1 || len(snap.Announcements) != 0 {
		t.Fatalf("cache should be untouched, got %+v", snap)
	}
	if _, err := st.UpdateServicePrice(ctx, models.ServiceManicure, 10); err == nil {
		t.Fatal("expected facade error")
	}
	if st.Snapshot().Services[0].Price != 0 {
		t.Fatal("cache changed after failed mutation")
	}
}

func TestAddAppointmentOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	anon, err := f.state.AddAppointment(ctx, validForm())
	if err != nil {
		t.Fatalf("anonymous add: %v", err)
	}
	if anon.UserID != "" {
		t.Fatalf("anonymous booking must not be owned, got %q", anon.UserID)
	}

	if _, err := f.session.LoginAdmin(ctx, services.DefaultAdminCode); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	byAdmin, _ := f.state.AddAppointment(ctx, validForm())
	if byAdmin.UserID != "" {
		t.Fatalf("admin booking must not be owned, got %q", byAdmin.UserID)
	}

	client, err := f.session.Register(ctx, models.RegistrationPayload{Name: "Ana", Email: "ana@x.com", Phone: "1", Password: "pw"})
	if err != nil || client == nil {
		t.Fatalf("register = %+v, %v", client, err)
	}
	owned, _ := f.state.AddAppointment(ctx, validForm())
	if owned.UserID != client.ID {
		t.Fatalf("client booking should be owned by %s, got %q", client.ID, owned.UserID)
	}
	if got := len(f.state.Snapshot().Appointments); got != 3 {
		t.Fatalf("expected 3 cached appointments, got %d", got)
	}
}

func TestUpdateUnknownAppointmentLeavesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.state.AddAppointment(ctx, validForm()); err != nil {
		t.Fatalf("add: %v", err)
	}
	before := f.state.Snapshot().Appointments

	_, err := f.state.UpdateAppointmentStatus(ctx, "apt_missing", models.AppointmentStatusConfirmed)
	if !errors.Is(err, services.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
	if after := f.state.Snapshot().Appointments; !reflect.DeepEqual(before, after) {
		t.Fatalf("cache changed: before %+v, after %+v", before, after)
	}
	stored, err := f.facade.Appointments.GetAppointments(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(before, stored) {
		t.Fatalf("storage changed: before %+v, stored %+v", before, stored)
	}
}

func TestAddAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		modify func(*models.AppointmentForm)
	}{
		{"missing name", func(fm *models.AppointmentForm) { fm.ClientName = " " }},
		{"missing phone", func(fm *models.AppointmentForm) { fm.ClientPhone = "" }},
		{"unknown service", func(fm *models.AppointmentForm) { fm.Service = "Massagem" }},
		{"unavailable time", func(fm *models.AppointmentForm) { fm.Time = "13:00" }},
		{"bad date", func(fm *models.AppointmentForm) { fm.Date = "14/01/2030" }},
		{"past date", func(fm *models.AppointmentForm) { fm.Date = "2030-01-09" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.modify(&form)
			if _, err := f.state.AddAppointment(context.Background(), form); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	today := validForm()
	today.Date = "2030-01-10"
	if _, err := f.state.AddAppointment(context.Background(), today); err != nil {
		t.Fatalf("booking for today should be accepted: %v", err)
	}
}

func TestCacheMatchesReloadAfterMutations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, _ := f.state.AddAppointment(ctx, validForm())
	b, _ := f.state.AddAppointment(ctx, validForm())
	if _, err := f.state.UpdateAppointmentStatus(ctx, a.ID, models.AppointmentStatusConfirmed); err != nil {
		t.Fatalf("status: %v", err)
	}
	if err := f.state.CancelAppointment(ctx, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.state.UpdateServicePrice(ctx, models.ServiceCombo, 70); err != nil {
		t.Fatalf("price: %v", err)
	}
	first, _ := f.state.AddAnnouncement(ctx, "Primeiro")
	_, _ = f.state.AddAnnouncement(ctx, "Segundo")
	if err := f.state.DeleteAnnouncement(ctx, first.ID); err != nil {
		t.Fatalf("delete announcement: %v", err)
	}
	p, _ := f.state.AddPartnership(ctx, "Studio", "Cabelo")
	_, _ = f.state.AddPartnership(ctx, "Spa", "Massagem")
	if err := f.state.DeletePartnership(ctx, p.ID); err != nil {
		t.Fatalf("delete partnership: %v", err)
	}

	cached := f.state.Snapshot()
	fresh := New(f.facade, f.session)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(cached, fresh.Snapshot()) {
		t.Fatalf("cache diverged from storage:\n%+v\n%+v", cached, fresh.Snapshot())
	}
}

func TestUpcomingAppointments(t *testing.T) {
	f := newFixture(t)
	f.state.appointments = []models.Appointment{
		{ID: "late", Date: "2030-01-12", Time: "18:00"},
		{ID: "past", Date: "2030-01-09", Time: "18:00"},
		{ID: "soon", Date: "2030-01-10", Time: "09:00"},
		{ID: "earlier-today", Date: "2030-01-10", Time: "07:00"},
		{ID: "middle", Date: "2030-01-12", Time: "09:00"},
	}
	now := time.Date(2030, 1, 10, 8, 0, 0, 0, time.UTC)

	var ids []string
	for _, a := range f.state.UpcomingAppointments(now) {
		ids = append(ids, a.ID)
	}
	if want := []string{"soon", "middle", "late"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
}

func TestContactFor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	client, _ := f.session.Register(ctx, models.RegistrationPayload{Name: "Joana Lima", Email: "jo@x.com", Phone: "+55 (11) 91234-5678", Password: "pw"})
	owned, _ := f.state.AddAppointment(ctx, validForm())
	f.session.Logout(ctx)
	orphan, _ := f.state.AddAppointment(ctx, validForm())

	contact, err := f.state.ContactFor(ctx, owned.ID)
	if err != nil {
		t.Fatalf("contact: %v", err)
	}
	if !contact.Client.Found || contact.Client.Name != client.Name {
		t.Fatalf("unexpected client %+v", contact.Client)
	}
	if !strings.HasPrefix(contact.MessageLink, "https://wa.me/5511912345678?text=") {
		t.Fatalf("unexpected link %s", contact.MessageLink)
	}
	u, _ := url.Parse(contact.MessageLink)
	want := "Olá, Joana! Sobre o seu agendamento de Manicure para o dia segunda-feira, 14 de janeiro às 14:00."
	if got := u.Query().Get("text"); got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}

	unknown, err := f.state.ContactFor(ctx, orphan.ID)
	if err != nil {
		t.Fatalf("contact: %v", err)
	}
	if unknown.Client.Found || unknown.Client.Name != UnknownClientName || unknown.Client.Phone != UnknownClientPhone {
		t.Fatalf("expected fallback client, got %+v", unknown.Client)
	}

	if _, err := f.state.ContactFor(ctx, "apt_missing"); !errors.Is(err, services.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
