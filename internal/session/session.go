package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/studiowebux/apiconsole/internal/config"
	"github.com/studiowebux/apiconsole/internal/types"
)

// ErrNoSession is returned when an operation needs a signed-in session
var ErrNoSession = errors.New("not logged in: run 'apiconsole login' first")

// state is the persisted form of a session
type state struct {
	Server       string             `json:"server"`
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token,omitempty"`
	User         *types.UserProfile `json:"user,omitempty"`
	StartedAt    time.Time          `json:"started_at"`
}

// Manager holds the signed-in session: backend, tokens and the current user.
// It is the only writer of the held profile.
type Manager struct {
	mu    sync.RWMutex
	path  string
	state state
}

// NewManager creates a session manager persisting to path.
// An empty path keeps the session in memory only.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load reads the session file. A missing file leaves the session empty.
func (m *Manager) Load() error {
	if m.path == "" {
		return nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
	return nil
}

// save writes the session; callers hold the lock
func (m *Manager) save() error {
	if m.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.path, data, config.SecretFilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Start begins a session after login or registration
func (m *Manager) Start(server string, grant types.AuthGrant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := grant.User
	m.state = state{
		Server:       server,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		User:         &user,
		StartedAt:    time.Now().UTC(),
	}
	return m.save()
}

// End tears the session down and removes the session file
func (m *Manager) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = state{}
	if m.path == "" {
		return nil
	}
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Active reports whether a session holds an access token
func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.AccessToken != ""
}

// Server returns the backend the session was started against
func (m *Manager) Server() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Server
}

// CurrentUser returns a copy of the held profile
func (m *Manager) CurrentUser() (types.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.User == nil {
		return types.UserProfile{}, false
	}
	return *m.state.User, true
}

// SetUser replaces the held profile
func (m *Manager) SetUser(u types.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.User = &u
	return m.save()
}

// AccessToken returns the bearer token for API calls
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.AccessToken
}

// RefreshToken returns the token used to obtain a new access token
func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.RefreshToken
}

// SetAccessToken stores a refreshed access token
func (m *Manager) SetAccessToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.AccessToken = token
	return m.save()
}

// TokenExpiry returns the "exp" claim of the access token. The signature
// is not verified; only the backend can do that.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	return expiryOf(m.AccessToken())
}

// NeedsRefresh reports whether the access token expires within skew of now
// and a refresh token is available
func (m *Manager) NeedsRefresh(now time.Time, skew time.Duration) bool {
	if m.RefreshToken() == "" {
		return false
	}
	exp, ok := m.TokenExpiry()
	if !ok {
		return false
	}
	return !now.Add(skew).Before(exp)
}

func expiryOf(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
