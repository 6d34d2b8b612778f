// internal/domain/session/session.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/storage"
)

// Persistence substrate keys for the stored credential and profile
const (
	tokenKey = "token"
	userKey  = "user"
)

// RoleAdmin is the role value that grants access to the admin panel
const RoleAdmin = "admin"

// User is the stored profile of the signed-in shopper
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Manager owns the stored session: the bearer token and the user profile.
// The client holds no signing secret, so token validity is decided purely
// from the expiry claim; the backend re-checks the signature on every call.
type Manager struct {
	mu     sync.Mutex
	token  string
	user   *User
	st     storage.Store
	logger *logrus.Logger
}

// NewManager creates a session manager, restoring any stored session.
// Garbage in either key clears the session instead of failing.
func NewManager(ctx context.Context, st storage.Store, logger *logrus.Logger) *Manager {
	m := &Manager{
		st:     st,
		logger: logger,
	}
	m.restore(ctx)
	return m
}

func (m *Manager) restore(ctx context.Context) {
	token, err := m.st.Get(ctx, tokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.WithError(err).Warn("Failed to load stored token")
		}
		return
	}

	userData, err := m.st.Get(ctx, userKey)
	if err != nil {
		m.logger.WithError(err).Warn("Stored token has no matching user, clearing session")
		m.clear(ctx)
		return
	}

	var user User
	if err := json.Unmarshal(userData, &user); err != nil {
		m.logger.WithError(err).Warn("Stored user is corrupt, clearing session")
		m.clear(ctx)
		return
	}

	m.token = string(token)
	m.user = &user

	// An expired or unparseable token is dropped immediately rather than on
	// the first guarded navigation.
	if !m.isTokenValid() {
		m.logger.Info("Stored session has expired, logging out")
		m.clear(ctx)
	}
}

// Establish stores a freshly issued token and user, replacing any session
func (m *Manager) Establish(ctx context.Context, token string, user User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	if err := m.st.Set(ctx, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := m.st.Set(ctx, userKey, userData); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	m.token = token
	m.user = &user
	return nil
}

// Logout clears the stored session
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clear(ctx)
}

// clear removes session state; callers hold the lock (or run before the
// manager is shared, during restore).
func (m *Manager) clear(ctx context.Context) {
	if err := m.st.Delete(ctx, tokenKey); err != nil {
		m.logger.WithError(err).Warn("Failed to delete stored token")
	}
	if err := m.st.Delete(ctx, userKey); err != nil {
		m.logger.WithError(err).Warn("Failed to delete stored user")
	}
	m.token = ""
	m.user = nil
}

// IsValid reports whether the stored credential still grants access. An
// expired or malformed token triggers logout and returns false.
func (m *Manager) IsValid(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" || m.user == nil {
		return false
	}
	if !m.isTokenValid() {
		m.logger.Info("Session token invalid or expired, logging out")
		m.clear(ctx)
		return false
	}
	return true
}

// isTokenValid decodes the expiry claim without verifying the signature and
// requires it to be strictly in the future. Missing claim or parse failure
// counts as invalid.
func (m *Manager) isTokenValid() bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(m.token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// Current returns the guard state as one consistent view: whether the
// session is valid, and the user if so. Expiry discovered here triggers
// logout, same as IsValid.
func (m *Manager) Current(ctx context.Context) (bool, *User) {
	if !m.IsValid(ctx) {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return false, nil
	}
	u := *m.user
	return true, &u
}

// Token returns the stored bearer token, or "" when signed out. Used as the
// token source for authenticated API calls.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
