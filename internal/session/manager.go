package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"pelada-manager/internal/api"
	"pelada-manager/internal/domain"
	"pelada-manager/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Fixed storage keys, mirrored from the frontend's local-storage layout
const (
	keyAuthToken   = "session:auth_token"
	keyCurrentUser = "session:current_user"
)

// Manager holds the current token and user, persists them through a Store
// and reacts to the API client's auth-failure callback by clearing the
// session. It is an injected dependency, not a module-level singleton.
type Manager struct {
	api    *api.Client
	store  Store
	logger *logger.Logger

	mu    sync.RWMutex
	user  *domain.User
	token string
}

// NewManager creates a session manager and registers it as the client's
// auth-failure handler
func NewManager(apiClient *api.Client, store Store, log *logger.Logger) *Manager {
	m := &Manager{
		api:    apiClient,
		store:  store,
		logger: log,
	}
	apiClient.OnAuthError(m.HandleAuthFailure)
	return m
}

// SignIn exchanges credentials for a session, persists it and arms the API
// client with the issued token
func (m *Manager) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	resp, err := m.api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(ctx, keyAuthToken, resp.Token); err != nil {
		return nil, err
	}
	if err := m.store.Set(ctx, keyCurrentUser, string(userJSON)); err != nil {
		return nil, err
	}

	m.api.SetToken(resp.Token)

	m.mu.Lock()
	m.user = &resp.User
	m.token = resp.Token
	m.mu.Unlock()

	m.logger.WithField("user_id", resp.User.ID).Info("Signed in")
	return &resp.User, nil
}

// SignOut clears the persisted session. The backend call is best effort; a
// failure there must not leave a zombie session behind locally.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.api.SignOut(ctx); err != nil {
		m.logger.WithError(err).Warn("Backend sign-out failed, clearing local session anyway")
	}
	m.clear(ctx)
}

// Restore loads a previously persisted session. Returns (nil, nil) when no
// usable session exists. Tokens that parse as JWTs with an expired exp claim
// are discarded up front instead of failing on the first 401.
func (m *Manager) Restore(ctx context.Context) (*domain.User, error) {
	token, err := m.store.Get(ctx, keyAuthToken)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if tokenExpired(token) {
		m.logger.Info("Persisted token is expired, discarding session")
		m.clear(ctx)
		return nil, nil
	}

	userJSON, err := m.store.Get(ctx, keyCurrentUser)
	if err == ErrNotFound {
		m.clear(ctx)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		m.logger.WithError(err).Warn("Persisted user record is corrupted, discarding session")
		m.clear(ctx)
		return nil, nil
	}

	m.api.SetToken(token)

	m.mu.Lock()
	m.user = &user
	m.token = token
	m.mu.Unlock()

	m.logger.WithField("user_id", user.ID).Debug("Session restored")
	return &user, nil
}

// HandleAuthFailure clears the session after the API client raised a 401.
// Registered as the client's OnAuthError callback.
func (m *Manager) HandleAuthFailure() {
	m.logger.Warn("Authentication failure reported by API client, clearing session")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.clear(ctx)
}

// CurrentUser returns the signed-in user, or nil
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Token returns the current session token, or empty
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) clear(ctx context.Context) {
	if err := m.store.Delete(ctx, keyAuthToken, keyCurrentUser); err != nil {
		m.logger.Logger.Warn("Failed to clear persisted session", zap.Error(err))
	}
	m.api.ClearToken()

	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens are never considered expired; only the backend can judge
// those.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
