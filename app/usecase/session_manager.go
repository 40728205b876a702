package usecase

import (
	"context"
	"log/slog"
	"time"

	"identity-service/app/domain"
	"identity-service/app/port"
	apperrors "identity-service/app/utils/errors"
	"identity-service/app/utils/logger"
)

// sessionManager creates and consumes identification sessions.
type sessionManager struct {
	sessions port.SessionRepository
	users    port.UserRepository
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionManager creates a SessionManager with the given session TTL.
func NewSessionManager(sessions port.SessionRepository, users port.UserRepository, ttl time.Duration, log *slog.Logger) port.SessionManager {
	return &sessionManager{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
		logger:   log.With("component", "session_manager"),
		now:      time.Now,
	}
}

// Create persists a fresh session for the user and returns its token.
func (m *sessionManager) Create(ctx context.Context, user *domain.User, method domain.Method) (string, error) {
	session, err := domain.NewIdentificationSession(user.ID, method, m.ttl)
	if err != nil {
		return "", apperrors.ErrInternalError.WithCause(err)
	}

	if err := m.sessions.Create(ctx, session); err != nil {
		return "", apperrors.NewDatabaseError(err)
	}

	m.logger.Info("identification session created",
		"user_id", user.ID,
		"method", session.Method,
		"session_token", logger.TruncateToken(session.Token),
		"expires_at", session.ExpiresAt)
	return session.Token, nil
}

// FetchValid returns the non-expired session for a token and resolves
// its owner. A vanished owner is a storage inconsistency surfaced as
// invalid credentials, never as a raw lookup failure.
func (m *sessionManager) FetchValid(ctx context.Context, token string) (*domain.IdentificationSession, *domain.User, error) {
	session, err := m.sessions.GetValidByToken(ctx, token, m.now())
	if err != nil {
		return nil, nil, apperrors.NewDatabaseError(err)
	}
	if session == nil {
		return nil, nil, apperrors.ErrSessionExpired
	}

	user, err := m.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, apperrors.NewDatabaseError(err)
	}
	if user == nil {
		return nil, nil, apperrors.ErrInvalidCredentials.WithDetails("user not found for session")
	}

	return session, user, nil
}

// Finalize deletes the session, making it single-use. A concurrent
// finalizer that got there first surfaces as an expired session.
func (m *sessionManager) Finalize(ctx context.Context, session *domain.IdentificationSession) error {
	deleted, err := m.sessions.Delete(ctx, session.Token)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if !deleted {
		return apperrors.ErrSessionExpired
	}

	m.logger.Info("identification session finalized",
		"user_id", session.UserID,
		"session_token", logger.TruncateToken(session.Token))
	return nil
}
