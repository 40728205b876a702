package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go -package=mocks

import (
	"context"
	"time"

	"identity-service/app/domain"
)

// SessionRepository defines identification session data access.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.IdentificationSession) error

	// GetValidByToken returns the session for a token whose expiry is
	// after now, or (nil, nil) when no such row exists.
	GetValidByToken(ctx context.Context, token string, now time.Time) (*domain.IdentificationSession, error)

	// Delete removes the session row. Returns false when the row was
	// already gone, which a caller must treat as losing a single-use
	// race rather than as a storage failure.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteExpired removes sessions past their expiry. Hygiene only;
	// correctness never depends on it.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
