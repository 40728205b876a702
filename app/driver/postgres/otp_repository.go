package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"identity-service/app/domain"
	"identity-service/app/port"
)

// OtpRepository implements port.OtpRepository for PostgreSQL
type OtpRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewOtpRepository creates a new PostgreSQL one-time code repository
func NewOtpRepository(db DatabaseIface, logger *slog.Logger) port.OtpRepository {
	return &OtpRepository{
		db:     db,
		logger: logger.With("component", "otp_repository"),
	}
}

// Create inserts a new one-time code record.
func (r *OtpRepository) Create(ctx context.Context, record *domain.OtpRecord) error {
	query := `
		INSERT INTO otp_records (
			id, identifier, code_digest, created_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5
		)`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Identifier,
		record.CodeDigest,
		record.CreatedAt,
		record.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("failed to create otp record", "identifier", record.Identifier, "error", err)
		return fmt.Errorf("failed to create otp record: %w", err)
	}

	r.logger.Debug("otp record created", "identifier", record.Identifier, "expires_at", record.ExpiresAt)
	return nil
}

// GetLatestActive returns the newest non-expired record for the
// identifier, or nil when none exists. Older outstanding records are
// intentionally ignored so only the most recent code is honored.
func (r *OtpRepository) GetLatestActive(ctx context.Context, identifier string, now time.Time) (*domain.OtpRecord, error) {
	query := `
		SELECT id, identifier, code_digest, created_at, expires_at
		FROM otp_records
		WHERE identifier = $1 AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`

	record := &domain.OtpRecord{}
	err := r.db.QueryRow(ctx, query, identifier, now).Scan(
		&record.ID,
		&record.Identifier,
		&record.CodeDigest,
		&record.CreatedAt,
		&record.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get otp record", "error", err)
		return nil, fmt.Errorf("failed to get otp record: %w", err)
	}

	return record, nil
}

// Delete removes the record by ID. The boolean reports whether a row
// was actually deleted, making consumption single-use under
// concurrency.
func (r *OtpRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM otp_records WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete otp record", "error", err)
		return false, fmt.Errorf("failed to delete otp record: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteExpired removes all records expired at the given instant and
// returns how many rows were removed.
func (r *OtpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM otp_records WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.logger.Error("failed to delete expired otp records", "error", err)
		return 0, fmt.Errorf("failed to delete expired otp records: %w", err)
	}

	return tag.RowsAffected(), nil
}
