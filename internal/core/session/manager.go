// Package session establishes and tracks console sessions.
//
// A session is process memory only: a registry entry keyed by a session ID
// that travels in a signed bearer token. Restarting the service forgets every
// session by design.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskops/admin-console/internal/core/console"
	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/ports"
	"github.com/taskops/admin-console/internal/metrics"
)

// simulatedAccountID is the identity the login simulation fabricates for
// every operator; created_by and self-assignment use it.
const simulatedAccountID uint = 1

// Manager owns the live session registry and token issue/verification.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*console.State

	verifier ports.CredentialVerifier
	deps     console.Deps
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
}

// NewManager returns a Manager issuing HS256 tokens with the given TTL.
func NewManager(verifier ports.CredentialVerifier, deps console.Deps, secret string, tokenTTL time.Duration, log zerolog.Logger) *Manager {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*console.State),
		verifier: verifier,
		deps:     deps,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Login establishes a session for username. With the no-op verifier wired it
// never fails: the role is derived from the username, the email fabricated,
// and the identity assigned the simulated account ID. A welcome notification
// lands in the fresh console state and both collections begin their first
// synchronisation in the background.
func (m *Manager) Login(ctx context.Context, username, password string) (string, *console.State, error) {
	if err := m.verifier.Verify(ctx, username, password); err != nil {
		return "", nil, err
	}

	sess := domain.Session{
		ID:        uuid.NewString(),
		AccountID: simulatedAccountID,
		Username:  username,
		Email:     username + "@company.com",
		Role:      domain.DeriveRole(username),
		CreatedAt: time.Now().UTC(),
	}

	state := console.NewState(sess, m.deps)
	state.Notes.Success(fmt.Sprintf("Welcome, %s!", username))

	token, err := m.signToken(sess)
	if err != nil {
		state.Close()
		return "", nil, err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = state
	m.mu.Unlock()
	metrics.SessionsActive.Inc()

	// First synchronisation of both collections starts immediately; the
	// dashboard reads 0/0 until it lands. Runs under the session context, so
	// a logout racing the fetch cancels it.
	go state.Refresh()

	m.log.Info().Str("username", username).Str("role", sess.Role).Msg("session established")
	return token, state, nil
}

// Register creates a baseline account through the remote directory without
// establishing a session; the operator returns to the login view afterwards.
func (m *Manager) Register(ctx context.Context, account domain.Account) error {
	account.Role = domain.RoleUser
	if err := m.deps.Directory.Create(ctx, account); err != nil {
		m.log.Error().Err(err).Str("username", account.Username).Msg("registration failed")
		return err
	}
	m.log.Info().Str("username", account.Username).Msg("account registered")
	return nil
}

// Resolve maps a bearer token to its live console state. Any parse failure,
// expired token, or missing registry entry resolves to ErrSessionNotFound.
func (m *Manager) Resolve(token string) (*console.State, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(m.secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrSessionNotFound
	}

	sid, _ := claims["sid"].(string)
	m.mu.Lock()
	state, ok := m.sessions[sid]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state, nil
}

// Logout destroys the session: the registry entry goes away and the console
// state is closed, cancelling any fetch still in flight.
func (m *Manager) Logout(state *console.State) {
	sid := state.Session().ID

	m.mu.Lock()
	_, ok := m.sessions[sid]
	delete(m.sessions, sid)
	m.mu.Unlock()

	state.Close()
	if ok {
		metrics.SessionsActive.Dec()
	}
}

// ForEach runs fn over every live session. Used by the periodic refresh job.
func (m *Manager) ForEach(fn func(*console.State)) {
	m.mu.Lock()
	states := make([]*console.State, 0, len(m.sessions))
	for _, s := range m.sessions {
		states = append(states, s)
	}
	m.mu.Unlock()

	for _, s := range states {
		fn(s)
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) signToken(sess domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sess.ID,
		"username": sess.Username,
		"role":     sess.Role,
		"exp":      time.Now().Add(m.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.secret))
}
