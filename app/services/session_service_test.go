package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSessionService creates a session service for testing with a symmetric key
func createTestSessionService(t *testing.T) *SessionServiceImpl {
	t.Helper()
	svc, err := NewSessionService("test-secret-key-for-session-signing-32", time.Hour, "test-issuer")
	require.NoError(t, err)
	return svc.(*SessionServiceImpl)
}

func TestNewSessionService(t *testing.T) {
	tests := []struct {
		name        string
		secret      string
		ttl         time.Duration
		expectError bool
	}{
		{name: "valid configuration", secret: "secret", ttl: time.Hour},
		{name: "missing secret", secret: "", ttl: time.Hour, expectError: true},
		{name: "non-positive ttl", secret: "secret", ttl: 0, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewSessionService(tt.secret, tt.ttl, "issuer")
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ttl, svc.TTL())
		})
	}
}

func TestSessionEncodeDecode(t *testing.T) {
	svc := createTestSessionService(t)

	in := &Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         json.RawMessage(`{"id":7,"name":"Ali","mobile":"09120000000","vendor":{"id":42}}`),
		VendorID:     "42",
		IsAdmin:      true,
	}
	in.AddFlash(FlashSuccess, "saved")

	token, err := svc.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	out, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "access", out.AccessToken)
	assert.Equal(t, "refresh", out.RefreshToken)
	assert.Equal(t, "42", out.VendorID)
	assert.True(t, out.IsAdmin)
	assert.True(t, out.IsLoggedIn())
	assert.JSONEq(t, string(in.User), string(out.User))
	assert.Equal(t, "Ali", out.DisplayName())
	assert.Equal(t, []Flash{{Category: FlashSuccess, Message: "saved"}}, out.PopFlashes())
	assert.Empty(t, out.Flashes)
}

func TestSessionDecodeRejectsTampering(t *testing.T) {
	svc := createTestSessionService(t)

	token, err := svc.Encode(&Session{VendorID: "1", AccessToken: "a"})
	require.NoError(t, err)

	other, err := NewSessionService("a-completely-different-signing-secret", time.Hour, "test-issuer")
	require.NoError(t, err)
	_, err = other.Decode(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	wrongIssuer, err := NewSessionService("test-secret-key-for-session-signing-32", time.Hour, "other-issuer")
	require.NoError(t, err)
	_, err = wrongIssuer.Decode(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	_, err = svc.Decode("")
	assert.ErrorIs(t, err, ErrSessionInvalid)

	_, err = svc.Decode("not.a.jwt")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionDecodeExpired(t *testing.T) {
	svc := createTestSessionService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Encode(&Session{VendorID: "1", AccessToken: "a"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Decode(token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestSessionIsLoggedIn(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsLoggedIn())
	assert.False(t, (&Session{OAuthState: "abc"}).IsLoggedIn())
	assert.False(t, (&Session{AccessToken: "a"}).IsLoggedIn())
	assert.True(t, (&Session{AccessToken: "a", VendorID: "9"}).IsLoggedIn())
}

func TestNewOAuthState(t *testing.T) {
	a, err := NewOAuthState()
	require.NoError(t, err)
	b, err := NewOAuthState()
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}
