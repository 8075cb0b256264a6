// Package auth holds the single authenticated session of an HRMS process.
package auth

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

// Token is the session token handed out on every successful login.
// It is a fixed demo value, not a generated secret.
const Token = "hrms-demo-token"

// Store is either anonymous or holds exactly one session.
type Store struct {
	mu          sync.RWMutex
	credentials []schema.Credential
	session     *schema.Session
	log         zerolog.Logger
}

// NewStore copies the credential list it validates logins against.
func NewStore(credentials []schema.Credential, log zerolog.Logger) *Store {
	return &Store{
		credentials: slices.Clone(credentials),
		log:         log.With().Str("component", "auth").Logger(),
	}
}

// Login matches email and password exactly. On failure the store keeps its current state.
func (s *Store) Login(ctx context.Context, email, password string) (schema.Session, error) {
	if err := ctx.Err(); err != nil {
		return schema.Session{}, err
	}

	idx := slices.IndexFunc(s.credentials, func(c schema.Credential) bool {
		return c.Email == email && c.Password == password
	})
	if idx < 0 {
		s.log.Info().Str("email", email).Msg("login rejected")
		return schema.Session{}, schema.ErrInvalidCredentials
	}

	sess := schema.Session{User: s.credentials[idx].User, Token: Token}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	s.log.Info().Str("user", sess.User.ID).Str("role", string(sess.User.Role)).Msg("login")
	return sess, nil
}

// Logout discards the session, if any.
func (s *Store) Logout() {
	s.mu.Lock()
	prev := s.session
	s.session = nil
	s.mu.Unlock()

	if prev != nil {
		s.log.Info().Str("user", prev.User.ID).Msg("logout")
	}
}

// IsAuthorized reports whether a session exists and, when roles are given,
// whether its role is one of them.
func (s *Store) IsAuthorized(roles ...schema.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	return slices.Contains(roles, s.session.User.Role)
}

// Current returns the session and whether one exists.
func (s *Store) Current() (schema.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return schema.Session{}, false
	}
	return *s.session, true
}

// Authenticate resolves a bearer token to the current session.
func (s *Store) Authenticate(token string) (schema.Session, error) {
	sess, ok := s.Current()
	if !ok || token == "" || token != sess.Token {
		return schema.Session{}, schema.ErrUnauthorized
	}
	return sess, nil
}
