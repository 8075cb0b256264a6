package auth

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celerix-dev/celerix-hrms/internal/seed"
	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

func newStore() *Store {
	return NewStore(seed.Credentials(), zerolog.Nop())
}

func TestLogin_SeededAccounts(t *testing.T) {
	for _, c := range seed.Credentials() {
		t.Run(string(c.Role), func(t *testing.T) {
			s := newStore()
			sess, err := s.Login(context.Background(), c.Email, c.Password)
			require.NoError(t, err)
			assert.Equal(t, c.Role, sess.User.Role)
			assert.Equal(t, c.ID, sess.User.ID)
			assert.Equal(t, Token, sess.Token)
			assert.True(t, s.IsAuthorized())
		})
	}
}

func TestLogin_Rejections(t *testing.T) {
	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "admin@demo.com", "manager123"},
		{"unknown email", "nobody@demo.com", "admin123"},
		{"email case differs", "Admin@demo.com", "admin123"},
		{"password case differs", "admin@demo.com", "ADMIN123"},
		{"cross account", "manager@demo.com", "admin123"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore()
			_, err := s.Login(context.Background(), tc.email, tc.password)
			assert.ErrorIs(t, err, schema.ErrInvalidCredentials)
			assert.False(t, s.IsAuthorized())
		})
	}
}

func TestLogin_FailureKeepsExistingSession(t *testing.T) {
	s := newStore()
	_, err := s.Login(context.Background(), "manager@demo.com", "manager123")
	require.NoError(t, err)

	_, err = s.Login(context.Background(), "admin@demo.com", "nope")
	require.ErrorIs(t, err, schema.ErrInvalidCredentials)

	sess, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, schema.RoleManager, sess.User.Role)
}

func TestLogin_CancelledContext(t *testing.T) {
	s := newStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Login(ctx, "admin@demo.com", "admin123")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.IsAuthorized())
}

func TestIsAuthorized(t *testing.T) {
	s := newStore()
	assert.False(t, s.IsAuthorized())
	assert.False(t, s.IsAuthorized(schema.RoleAdmin))

	_, err := s.Login(context.Background(), "admin@demo.com", "admin123")
	require.NoError(t, err)
	assert.True(t, s.IsAuthorized())
	assert.True(t, s.IsAuthorized(schema.RoleAdmin))
	assert.True(t, s.IsAuthorized(schema.RoleAdmin, schema.RoleManager))

	_, err = s.Login(context.Background(), "employee@demo.com", "employee123")
	require.NoError(t, err)
	assert.False(t, s.IsAuthorized(schema.RoleAdmin))
	assert.False(t, s.IsAuthorized(schema.RoleAdmin, schema.RoleManager))
	assert.True(t, s.IsAuthorized(schema.RoleEmployee))
}

func TestLogout(t *testing.T) {
	s := newStore()
	s.Logout() // anonymous logout is allowed

	_, err := s.Login(context.Background(), "admin@demo.com", "admin123")
	require.NoError(t, err)
	s.Logout()

	assert.False(t, s.IsAuthorized())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestAuthenticate(t *testing.T) {
	s := newStore()
	_, err := s.Authenticate(Token)
	assert.ErrorIs(t, err, schema.ErrUnauthorized)

	_, err = s.Login(context.Background(), "manager@demo.com", "manager123")
	require.NoError(t, err)

	sess, err := s.Authenticate(Token)
	require.NoError(t, err)
	assert.Equal(t, "u2", sess.User.ID)

	_, err = s.Authenticate("other")
	assert.ErrorIs(t, err, schema.ErrUnauthorized)
	_, err = s.Authenticate("")
	assert.ErrorIs(t, err, schema.ErrUnauthorized)
}
