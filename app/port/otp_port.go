package port

//go:generate mockgen -source=otp_port.go -destination=../mocks/mock_otp_port.go -package=mocks

import (
	"context"
	"time"

	"identity-service/app/domain"

	"github.com/google/uuid"
)

// OtpRepository defines one-time code record data access.
type OtpRepository interface {
	Create(ctx context.Context, record *domain.OtpRecord) error

	// GetLatestActive returns the most recently created non-expired
	// record for an identifier, or (nil, nil) when none exists.
	GetLatestActive(ctx context.Context, identifier string, now time.Time) (*domain.OtpRecord, error)

	// Delete removes a consumed record. Returns false when the row was
	// already gone, signalling a lost single-use race.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteExpired removes records past their expiry. Hygiene only.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
