package usecase

import (
	"context"
	"log/slog"
	"time"

	"identity-service/app/domain"
	"identity-service/app/port"
	apperrors "identity-service/app/utils/errors"
)

// otpManager issues and validates one-time codes. Codes are stored as
// bcrypt digests; the plaintext exists only between generation and the
// notifier call.
type otpManager struct {
	otps     port.OtpRepository
	hasher   port.CodeHasher
	notifier port.OtpNotifier
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewOtpManager creates an OtpManager with the given code TTL.
func NewOtpManager(otps port.OtpRepository, hasher port.CodeHasher, notifier port.OtpNotifier, ttl time.Duration, logger *slog.Logger) port.OtpManager {
	return &otpManager{
		otps:     otps,
		hasher:   hasher,
		notifier: notifier,
		ttl:      ttl,
		logger:   logger.With("component", "otp_manager"),
		now:      time.Now,
	}
}

// Issue generates a fresh 6-digit code, persists its digest keyed by the
// user's delivery identifier, and hands the plaintext to the notifier.
func (m *otpManager) Issue(ctx context.Context, user *domain.User) error {
	identifier := user.DeliveryIdentifier()
	if identifier == "" {
		return apperrors.ErrInternalError.WithDetails("user has no delivery identifier")
	}

	code, err := domain.GenerateCode()
	if err != nil {
		return apperrors.ErrInternalError.WithCause(err)
	}

	digest, err := m.hasher.Hash(code)
	if err != nil {
		return apperrors.ErrInternalError.WithCause(err)
	}

	record, err := domain.NewOtpRecord(identifier, digest, m.ttl)
	if err != nil {
		return apperrors.ErrInternalError.WithCause(err)
	}

	if err := m.otps.Create(ctx, record); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if err := m.notifier.Deliver(ctx, user, code); err != nil {
		return apperrors.ErrInternalError.WithCause(err)
	}

	m.logger.Info("one-time code issued",
		"user_id", user.ID,
		"expires_at", record.ExpiresAt)
	return nil
}

// Validate checks the supplied code against the newest non-expired
// record for the user's identifier and consumes the record on success.
// Older outstanding records for the identifier are never honored.
func (m *otpManager) Validate(ctx context.Context, user *domain.User, code string) error {
	if code == "" {
		return apperrors.ErrOtpRequired
	}

	identifier := user.DeliveryIdentifier()
	if identifier == "" {
		return apperrors.ErrInvalidOtp
	}

	record, err := m.otps.GetLatestActive(ctx, identifier, m.now())
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if record == nil {
		return apperrors.ErrInvalidOtp
	}

	if !m.hasher.Verify(code, record.CodeDigest) {
		return apperrors.ErrInvalidOtp
	}

	// Single-use: the conditional delete decides between concurrent
	// verifiers; the loser sees zero rows and fails.
	deleted, err := m.otps.Delete(ctx, record.ID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if !deleted {
		return apperrors.ErrInvalidOtp
	}

	m.logger.Info("one-time code consumed", "user_id", user.ID)
	return nil
}
