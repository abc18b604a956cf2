package repositories

import (
	"context"

	"salon_backend/internal/models"
	"salon_backend/internal/storage"
	"salon_backend/pkg/utils"
)

// RecordStore groups the independently keyed collections of the salon.
type RecordStore struct {
	Services      *Collection[models.Service]
	Appointments  *Collection[models.Appointment]
	Announcements *Collection[models.Announcement]
	Partnerships  *Collection[models.Partnership]
	Users         *Collection[models.StoredUser]

	store *storage.Store
}

// NewRecordStore creates the collections over store. Call Initialize before
// serving requests.
func NewRecordStore(store *storage.Store) *RecordStore {
	return &RecordStore{
		Services:      NewCollection(store, KeyServices, models.DefaultServices),
		Appointments:  NewCollection[models.Appointment](store, KeyAppointments, nil),
		Announcements: NewCollection[models.Announcement](store, KeyAnnouncements, nil),
		Partnerships:  NewCollection[models.Partnership](store, KeyPartnerships, nil),
		Users:         NewCollection[models.StoredUser](store, KeyUsers, nil),
		store:         store,
	}
}

// Store returns the key-value store under the collections.
func (r *RecordStore) Store() *storage.Store {
	return r.store
}

// Initialize seeds every collection that holds no value yet.
func (r *RecordStore) Initialize(ctx context.Context) {
	seeded := map[string]interface{}{
		r.Services.Key():      r.Services.Initialize(ctx),
		r.Appointments.Key():  r.Appointments.Initialize(ctx),
		r.Announcements.Key(): r.Announcements.Initialize(ctx),
		r.Partnerships.Key():  r.Partnerships.Initialize(ctx),
		r.Users.Key():         r.Users.Initialize(ctx),
	}
	utils.LogInfo("Record store initialized", seeded)
}
