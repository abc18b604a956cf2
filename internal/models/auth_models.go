package models

// AdminUserID is the fixed id of the synthetic administrator identity.
const AdminUserID = "admin_user"

// User is the public view of an account. It never carries a secret.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
}

// StoredUser is the persisted representation of a registered client.
// It stays inside the session module; callers only ever see User.
type StoredUser struct {
	User
	PasswordHash string `json:"password_hash"`
}

// Public returns a copy of the user without the secret.
func (u StoredUser) Public() *User {
	user := u.User
	return &user
}

// NewAdminUser materializes the singleton administrator identity.
// It is never read from or written to the users collection.
func NewAdminUser() *User {
	return &User{
		ID:      AdminUserID,
		Name:    "Admin",
		Email:   "",
		Phone:   "",
		IsAdmin: true,
	}
}

// SessionRole describes which kind of identity is active.
type SessionRole string

const (
	RoleAnonymous SessionRole = "anonymous"
	RoleClient    SessionRole = "client"
	RoleAdmin     SessionRole = "admin"
)

// RoleOf maps an identity (possibly nil) to its session role.
func RoleOf(u *User) SessionRole {
	switch {
	case u == nil:
		return RoleAnonymous
	case u.IsAdmin:
		return RoleAdmin
	default:
		return RoleClient
	}
}

// Credentials for client login request
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminCodeRequest for the shared admin passcode
type AdminCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RegistrationPayload for client registration
type RegistrationPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}
