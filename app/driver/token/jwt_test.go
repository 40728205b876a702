package token

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	cfg := JWTConfig{
		Secret: "test-secret-key",
		Issuer: "identity-service",
		TTL:    24 * time.Hour,
	}

	userID := uuid.New()

	issuer := NewJWTIssuer(cfg, slog.Default())

	signed, err := issuer.Issue(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "identity-service", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(cfg.TTL), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTIssuer_Issue_UniqueTokenIDs(t *testing.T) {
	cfg := JWTConfig{
		Secret: "test-secret-key",
		Issuer: "identity-service",
		TTL:    time.Hour,
	}

	issuer := NewJWTIssuer(cfg, slog.Default())

	first, err := issuer.Issue(context.Background(), uuid.New())
	require.NoError(t, err)
	second, err := issuer.Issue(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestJWTIssuer_Issue_MissingSecret(t *testing.T) {
	issuer := NewJWTIssuer(JWTConfig{Issuer: "identity-service", TTL: time.Hour}, slog.Default())

	signed, err := issuer.Issue(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.Empty(t, signed)
}

func TestJWTIssuer_Issue_WrongKeyFailsVerification(t *testing.T) {
	cfg := JWTConfig{
		Secret: "test-secret-key",
		Issuer: "identity-service",
		TTL:    time.Hour,
	}

	issuer := NewJWTIssuer(cfg, slog.Default())

	signed, err := issuer.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("another-secret"), nil
	})
	assert.Error(t, err)
}
