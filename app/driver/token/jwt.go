package token

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"identity-service/app/port"
)

// JWTConfig holds JWT generation configuration.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// JWTIssuer mints signed access tokens for verified identities.
// Implements port.TokenIssuer.
type JWTIssuer struct {
	cfg    JWTConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig, logger *slog.Logger) port.TokenIssuer {
	return &JWTIssuer{
		cfg:    cfg,
		logger: logger.With("component", "jwt_issuer"),
		now:    time.Now,
	}
}

// Issue generates a signed HS256 token whose subject is the user ID.
func (j *JWTIssuer) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	if j.cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is not configured")
	}

	now := j.now()
	claims := jwt.RegisteredClaims{
		Issuer:    j.cfg.Issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	j.logger.Debug("access token issued", "user_id", userID, "expires_at", claims.ExpiresAt.Time)
	return signed, nil
}
