package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Method is the closed set of identification methods. Raw method strings
// from clients are parsed once at the boundary; everything downstream
// works with the typed value.
type Method string

const (
	MethodEmail Method = "email"
	MethodPhone Method = "phone"
)

// ParseMethod converts a raw method string into a Method.
func ParseMethod(raw string) (Method, error) {
	switch Method(raw) {
	case MethodEmail:
		return MethodEmail, nil
	case MethodPhone:
		return MethodPhone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, raw)
	}
}

// IsValid reports whether the method is a member of the closed set.
func (m Method) IsValid() bool {
	return m == MethodEmail || m == MethodPhone
}

// IdentificationSession is the ephemeral binding of a user to one
// verification attempt. The token, not the user id, is the capability
// handed to the client. A session is usable at most once and only
// before its expiry.
type IdentificationSession struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Method    Method    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewIdentificationSession creates a session with a fresh random token.
func NewIdentificationSession(userID uuid.UUID, method Method, ttl time.Duration) (*IdentificationSession, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}

	now := time.Now()
	return &IdentificationSession{
		Token:     uuid.NewString(),
		UserID:    userID,
		Method:    method,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired returns true if the session has expired at the given time.
func (s *IdentificationSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// RemainingTime returns the time left until expiry, zero if expired.
func (s *IdentificationSession) RemainingTime(now time.Time) time.Duration {
	if s.IsExpired(now) {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
