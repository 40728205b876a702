package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// One-time codes are 6-digit numbers in [100000, 999999].
const (
	CodeLength = 6

	otpMin   = 100000
	otpRange = 900000
)

// GenerateCode produces a uniformly random 6-digit numeric code. The raw
// code goes to the delivery collaborator only; everything else sees its
// digest.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate one-time code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// OtpRecord is an ephemeral one-time code, stored as a digest. Codes are
// keyed by the owning identifier, not by session: OTP validity is
// per-identifier, session validity is per-token. Multiple records may be
// outstanding for an identifier; only the newest non-expired one is
// honored.
type OtpRecord struct {
	ID         uuid.UUID `json:"id"`
	Identifier string    `json:"identifier"`
	CodeDigest string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// NewOtpRecord creates a record holding the digest of an issued code.
func NewOtpRecord(identifier, codeDigest string, ttl time.Duration) (*OtpRecord, error) {
	if identifier == "" {
		return nil, fmt.Errorf("identifier is required")
	}
	if codeDigest == "" {
		return nil, fmt.Errorf("code digest is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("OTP TTL must be positive")
	}

	now := time.Now()
	return &OtpRecord{
		ID:         uuid.New(),
		Identifier: identifier,
		CodeDigest: codeDigest,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}, nil
}

// IsExpired returns true if the record has expired at the given time.
func (r *OtpRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
