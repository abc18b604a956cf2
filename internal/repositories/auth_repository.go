package repositories

import (
	"context"
	"fmt"

	"salon_backend/internal/models"
	"salon_backend/pkg/utils"
)

// AuthRepository defines the user lookups needed by the session module.
// Returned users always carry the stored secret; stripping is the caller's job.
type AuthRepository interface {
	CreateUser(ctx context.Context, user models.StoredUser) error
	FindUserByEmail(ctx context.Context, email string) (*models.StoredUser, error)
	FindUserByID(ctx context.Context, userID string) (*models.StoredUser, error)
}

// authRepository implements the AuthRepository interface.
type authRepository struct {
	users *Collection[models.StoredUser]
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(users *Collection[models.StoredUser]) AuthRepository {
	return &authRepository{users: users}
}

// CreateUser appends a user. The duplicate check and the insert run as one
// serialized mutation; emails are compared case-insensitively.
func (r *authRepository) CreateUser(ctx context.Context, user models.StoredUser) error {
	email := utils.NormalizeEmail(user.Email)
	return r.users.Mutate(ctx, func(items []models.StoredUser) ([]models.StoredUser, error) {
		for _, u := range items {
			if utils.NormalizeEmail(u.Email) == email {
				return nil, fmt.Errorf("%w: email %s", ErrDuplicateKey, email)
			}
			if u.ID == user.ID {
				return nil, fmt.Errorf("%w: id %s", ErrDuplicateKey, user.ID)
			}
		}
		return append(items, user), nil
	})
}

// FindUserByEmail retrieves a user by email, ignoring case.
func (r *authRepository) FindUserByEmail(ctx context.Context, email string) (*models.StoredUser, error) {
	email = utils.NormalizeEmail(email)
	for _, u := range r.users.All(ctx) {
		if utils.NormalizeEmail(u.Email) == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// FindUserByID retrieves a user by id.
func (r *authRepository) FindUserByID(ctx context.Context, userID string) (*models.StoredUser, error) {
	for _, u := range r.users.All(ctx) {
		if u.ID == userID {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
