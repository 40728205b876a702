package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Method
		wantErr bool
	}{
		{name: "email", raw: "email", want: MethodEmail},
		{name: "phone", raw: "phone", want: MethodPhone},
		{name: "carrier pigeon", raw: "carrier-pigeon", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "case sensitive", raw: "Email", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := ParseMethod(tt.raw)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMethod)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, method)
			assert.True(t, method.IsValid())
		})
	}
}

func TestNewIdentificationSession(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		userID  uuid.UUID
		method  Method
		ttl     time.Duration
		wantErr bool
	}{
		{name: "valid session", userID: userID, method: MethodPhone, ttl: 10 * time.Minute},
		{name: "nil user", userID: uuid.Nil, method: MethodPhone, ttl: 10 * time.Minute, wantErr: true},
		{name: "invalid method", userID: userID, method: Method("fax"), ttl: 10 * time.Minute, wantErr: true},
		{name: "zero ttl", userID: userID, method: MethodEmail, ttl: 0, wantErr: true},
		{name: "negative ttl", userID: userID, method: MethodEmail, ttl: -time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := NewIdentificationSession(tt.userID, tt.method, tt.ttl)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, session.UserID)
			assert.Equal(t, tt.method, session.Method)
			assert.NotEmpty(t, session.Token)
			assert.False(t, session.IsExpired(time.Now()))
			assert.Equal(t, tt.ttl, session.ExpiresAt.Sub(session.CreatedAt))

			// token must parse as a UUID
			_, err = uuid.Parse(session.Token)
			assert.NoError(t, err)
		})
	}
}

func TestNewIdentificationSession_TokensAreUnique(t *testing.T) {
	userID := uuid.New()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		session, err := NewIdentificationSession(userID, MethodEmail, 10*time.Minute)
		require.NoError(t, err)
		assert.False(t, seen[session.Token], "duplicate session token generated")
		seen[session.Token] = true
	}
}

func TestIdentificationSession_IsExpired(t *testing.T) {
	session, err := NewIdentificationSession(uuid.New(), MethodPhone, 10*time.Minute)
	require.NoError(t, err)

	assert.False(t, session.IsExpired(session.CreatedAt))
	assert.False(t, session.IsExpired(session.ExpiresAt.Add(-time.Second)))
	// boundary: expires_at <= now means expired
	assert.True(t, session.IsExpired(session.ExpiresAt))
	assert.True(t, session.IsExpired(session.ExpiresAt.Add(time.Hour)))
}

func TestIdentificationSession_RemainingTime(t *testing.T) {
	session, err := NewIdentificationSession(uuid.New(), MethodPhone, 10*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, session.RemainingTime(session.CreatedAt))
	assert.Equal(t, time.Duration(0), session.RemainingTime(session.ExpiresAt))
	assert.Equal(t, time.Duration(0), session.RemainingTime(session.ExpiresAt.Add(time.Minute)))
}
