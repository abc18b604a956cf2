package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"salon_backend/internal/models"
	"salon_backend/internal/repositories"
	"salon_backend/internal/storage"
	"salon_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminCode is the shared administrator passcode.
const DefaultAdminCode = "1234567"

// SessionConfig tunes the session manager.
type SessionConfig struct {
	AdminCode  string
	Latency    time.Duration
	BcryptCost int
}

// SessionManager owns the current identity: nobody, a registered client or
// the administrator. The identity survives restarts through the session key.
//
// Login, LoginAdmin and Register report bad credentials and duplicate emails
// as a nil user with a nil error; errors are reserved for invalid input and
// storage failures.
type SessionManager struct {
	users repositories.AuthRepository
	store *storage.Store
	cfg   SessionConfig

	mu      sync.RWMutex
	current *models.User
	subs    map[int]func(*models.User)
	nextSub int
}

// NewSessionManager creates a SessionManager and restores the persisted
// session, if any.
func NewSessionManager(ctx context.Context, users repositories.AuthRepository, store *storage.Store, cfg SessionConfig) *SessionManager {
	if cfg.AdminCode == "" {
		cfg.AdminCode = DefaultAdminCode
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	s := &SessionManager{
		users: users,
		store: store,
		cfg:   cfg,
		subs:  make(map[int]func(*models.User)),
	}
	s.current = s.restore(ctx)
	return s
}

func (s *SessionManager) restore(ctx context.Context) *models.User {
	u := storage.Get[*models.User](ctx, s.store, repositories.KeySession, nil)
	if u == nil {
		return nil
	}
	if u.IsAdmin || u.ID == models.AdminUserID {
		return models.NewAdminUser()
	}
	if u.ID == "" {
		utils.LogWarn(nil, "Discarding persisted session without user id")
		return nil
	}
	stored, err := s.users.FindUserByID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.LogWarn(nil, "Discarding persisted session for unknown user", map[string]interface{}{"user_id": u.ID})
		} else {
			utils.LogError(err, "Failed to look up persisted session user", map[string]interface{}{"user_id": u.ID})
		}
		return nil
	}
	utils.LogInfo("Session restored", map[string]interface{}{"user_id": stored.ID})
	return stored.Public()
}

// Current returns a copy of the active identity, or nil when anonymous.
func (s *SessionManager) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.current)
}

// Role returns the role of the active identity.
func (s *SessionManager) Role() models.SessionRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.RoleOf(s.current)
}

// Subscribe registers fn to be called with every new identity (nil on
// logout). The returned func removes the subscription.
func (s *SessionManager) Subscribe(fn func(*models.User)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Login authenticates a client by email (any case) and password.
func (s *SessionManager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := simulateLatency(ctx, s.cfg.Latency); err != nil {
		return nil, err
	}

	stored, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	user := stored.Public()
	s.setCurrent(ctx, user)
	return copyUser(user), nil
}

// LoginAdmin switches to the administrator when code matches the shared
// passcode.
func (s *SessionManager) LoginAdmin(ctx context.Context, code string) (*models.User, error) {
	if err := simulateLatency(ctx, s.cfg.Latency); err != nil {
		return nil, err
	}
	if code != s.cfg.AdminCode {
		return nil, nil
	}
	admin := models.NewAdminUser()
	s.setCurrent(ctx, admin)
	return copyUser(admin), nil
}

// Register creates a client account and logs it in.
func (s *SessionManager) Register(ctx context.Context, payload models.RegistrationPayload) (*models.User, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Name == "" || payload.Email == "" || payload.Phone == "" || payload.Password == "" {
		return nil, fmt.Errorf("%w: name, email, phone and password are required", ErrValidation)
	}
	if !utils.IsValidEmail(payload.Email) {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}

	if err := simulateLatency(ctx, s.cfg.Latency); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	stored := models.StoredUser{
		User: models.User{
			ID:    newID("usr_"),
			Name:  payload.Name,
			Email: payload.Email,
			Phone: payload.Phone,
		},
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, stored); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := stored.Public()
	s.setCurrent(ctx, user)
	return copyUser(user), nil
}

// Logout ends the session and clears the persisted identity.
func (s *SessionManager) Logout(ctx context.Context) {
	s.setCurrent(ctx, nil)
}

// GetUserByID looks up a registered client. The result never carries the
// stored secret.
func (s *SessionManager) GetUserByID(ctx context.Context, id string) (*models.User, bool) {
	stored, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, false
	}
	return stored.Public(), true
}

func (s *SessionManager) setCurrent(ctx context.Context, u *models.User) {
	s.mu.Lock()
	s.current = copyUser(u)
	storage.Set(ctx, s.store, repositories.KeySession, s.current)
	subs := make([]func(*models.User), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(copyUser(u))
	}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
