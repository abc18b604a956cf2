package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"salon_backend/internal/models"
	"salon_backend/internal/storage"
)

func newTestRecordStore() (*RecordStore, *storage.MemoryBackend) {
	backend := storage.NewMemoryBackend()
	return NewRecordStore(storage.New(backend)), backend
}

func TestInitializeSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	rs, backend := newTestRecordStore()
	rs.Initialize(ctx)

	services := rs.Services.All(ctx)
	if len(services) != 3 {
		t.Fatalf("expected 3 seeded services, got %d", len(services))
	}
	want := map[models.ServiceType]float64{
		models.ServiceManicure: 30,
		models.ServicePedicure: 40,
		models.ServiceCombo:    65,
	}
	for _, s := range services {
		if want[s.ID] != s.Price {
			t.Errorf("service %s price = %v, want %v", s.ID, s.Price, want[s.ID])
		}
	}

	for _, key := range []string{KeyAppointments, KeyAnnouncements, KeyPartnerships, KeyUsers} {
		v, ok, _ := backend.GetItem(ctx, key)
		if !ok || v != "[]" {
			t.Errorf("%s = %q (ok=%v), want []", key, v, ok)
		}
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	rs, backend := newTestRecordStore()
	_ = backend.SetItem(ctx, KeyServices, `[{"id":"Manicure","name":"Manicure","duration":45,"price":99}]`)
	_ = backend.SetItem(ctx, KeyAnnouncements, `[{"id":"an_1","content":"hello"}]`)

	rs.Initialize(ctx)
	rs.Initialize(ctx)

	services := rs.Services.All(ctx)
	if len(services) != 1 || services[0].Price != 99 {
		t.Fatalf("existing services were overwritten: %+v", services)
	}
	if got := rs.Announcements.All(ctx); len(got) != 1 || got[0].ID != "an_1" {
		t.Fatalf("existing announcements were overwritten: %+v", got)
	}
}

func TestInitializeResetsNullAndCorruptedKeys(t *testing.T) {
	ctx := context.Background()
	rs, backend := newTestRecordStore()
	_ = backend.SetItem(ctx, KeyServices, "null")
	_ = backend.SetItem(ctx, KeyAppointments, "{{{")

	rs.Initialize(ctx)

	if got := rs.Services.All(ctx); len(got) != 3 {
		t.Fatalf("null services should be reseeded, got %+v", got)
	}
	if v, _, _ := backend.GetItem(ctx, KeyAppointments); v != "[]" {
		t.Fatalf("corrupted appointments should be reset, got %q", v)
	}
}

func TestAllNeverReturnsNil(t *testing.T) {
	ctx := context.Background()
	rs, backend := newTestRecordStore()
	_ = backend.SetItem(ctx, KeyAppointments, "not json at all")

	got := rs.Appointments.All(ctx)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMutateErrorLeavesDataUntouched(t *testing.T) {
	ctx := context.Background()
	rs, backend := newTestRecordStore()
	rs.Initialize(ctx)
	before, _, _ := backend.GetItem(ctx, KeyServices)

	boom := errors.New("boom")
	err := rs.Services.Mutate(ctx, func(items []models.Service) ([]models.Service, error) {
		items[0].Price = 1
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	after, _, _ := backend.GetItem(ctx, KeyServices)
	if before != after {
		t.Fatalf("collection changed after failed mutation:\n%s\n%s", before, after)
	}
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	ctx := context.Background()
	rs, _ := newTestRecordStore()
	rs.Initialize(ctx)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = rs.Partnerships.Mutate(ctx, func(items []models.Partnership) ([]models.Partnership, error) {
				return append(items, models.Partnership{ID: fmt.Sprintf("p_%d", i)}), nil
			})
		}(i)
	}
	wg.Wait()

	if got := len(rs.Partnerships.All(ctx)); got != writers {
		t.Fatalf("lost updates: expected %d partnerships, got %d", writers, got)
	}
}

func TestAuthRepository(t *testing.T) {
	ctx := context.Background()
	rs, _ := newTestRecordStore()
	repo := NewAuthRepository(rs.Users)

	jane := models.StoredUser{
		User:         models.User{ID: "usr_1", Name: "Jane", Email: "jane@x.com", Phone: "1"},
		PasswordHash: "hash",
	}
	if err := repo.CreateUser(ctx, jane); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := jane
	dup.ID = "usr_2"
	dup.Email = "JANE@X.COM"
	if err := repo.CreateUser(ctx, dup); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	found, err := repo.FindUserByEmail(ctx, "Jane@X.com")
	if err != nil || found.ID != "usr_1" {
		t.Fatalf("FindUserByEmail = %+v, %v", found, err)
	}
	if _, err := repo.FindUserByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
