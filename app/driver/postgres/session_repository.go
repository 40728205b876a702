package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"identity-service/app/domain"
	"identity-service/app/port"
	"identity-service/app/utils/logger"
)

// SessionRepository implements port.SessionRepository for PostgreSQL
type SessionRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db DatabaseIface, log *slog.Logger) port.SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: log.With("component", "session_repository"),
	}
}

// Create inserts a new identification session row.
func (r *SessionRepository) Create(ctx context.Context, session *domain.IdentificationSession) error {
	query := `
		INSERT INTO identification_sessions (
			token, user_id, method, created_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5
		)`

	_, err := r.db.Exec(ctx, query,
		session.Token,
		session.UserID,
		string(session.Method),
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("failed to create session", "user_id", session.UserID, "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug("session created",
		"session_token", logger.TruncateToken(session.Token),
		"user_id", session.UserID)
	return nil
}

// GetValidByToken returns the session for the token if it has not
// expired at the given instant, or nil when absent or expired.
func (r *SessionRepository) GetValidByToken(ctx context.Context, token string, now time.Time) (*domain.IdentificationSession, error) {
	query := `
		SELECT token, user_id, method, created_at, expires_at
		FROM identification_sessions
		WHERE token = $1 AND expires_at > $2`

	session := &domain.IdentificationSession{}
	var method string
	err := r.db.QueryRow(ctx, query, token, now).Scan(
		&session.Token,
		&session.UserID,
		&method,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get session", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Method = domain.Method(method)
	return session, nil
}

// Delete removes the session row. The boolean reports whether a row was
// actually deleted, which distinguishes the winner of concurrent
// finalizations.
func (r *SessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	query := `DELETE FROM identification_sessions WHERE token = $1`

	tag, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.logger.Error("failed to delete session", "error", err)
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteExpired removes all sessions expired at the given instant and
// returns how many rows were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM identification_sessions WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.logger.Error("failed to delete expired sessions", "error", err)
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
