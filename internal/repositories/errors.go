package repositories

import "errors"

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDuplicateKey is returned when an insert would break a uniqueness rule.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// Persisted keys, one per collection plus the active session.
const (
	KeyServices      = "veramagrin-services"
	KeyAppointments  = "veramagrin-appointments"
	KeyAnnouncements = "veramagrin-announcements"
	KeyPartnerships  = "veramagrin-partnerships"
	KeyUsers         = "veramagrin-users"
	KeySession       = "veramagrin-currentUser"
)
