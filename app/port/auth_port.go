package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go -package=mocks

import (
	"context"

	"identity-service/app/domain"

	"github.com/google/uuid"
)

// AuthUsecase defines the two public identification operations.
type AuthUsecase interface {
	// Identify resolves the identifier to a user, issues a one-time code
	// to the delivery collaborator, and returns a session token.
	Identify(ctx context.Context, method, identifier string) (string, error)

	// Verify exchanges a session token plus one-time code for a durable
	// access token, consuming both the code and the session.
	Verify(ctx context.Context, identifierToken, otp string) (string, error)
}

// IdentityResolver maps raw identifiers to stable user records, creating
// them on first sight.
type IdentityResolver interface {
	ResolveByEmail(ctx context.Context, email string) (*domain.User, error)
	ResolveByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// OtpManager issues and validates one-time codes scoped to a user's
// delivery identifier.
type OtpManager interface {
	// Issue generates a code, stores its digest, and hands the plaintext
	// to the delivery collaborator. The raw code never escapes.
	Issue(ctx context.Context, user *domain.User) error

	// Validate checks the supplied code against the newest non-expired
	// record and consumes the record on success.
	Validate(ctx context.Context, user *domain.User, code string) error
}

// SessionManager creates, fetches, and finalizes identification sessions.
type SessionManager interface {
	Create(ctx context.Context, user *domain.User, method domain.Method) (string, error)

	// FetchValid returns the non-expired session for a token along with
	// its resolved owner.
	FetchValid(ctx context.Context, token string) (*domain.IdentificationSession, *domain.User, error)

	// Finalize deletes the session, making the token unusable.
	Finalize(ctx context.Context, session *domain.IdentificationSession) error
}

// TokenIssuer mints a durable access credential bound to a user.
type TokenIssuer interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
}

// CodeHasher is the one-way digest collaborator for codes and passwords.
type CodeHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// OtpNotifier delivers a raw one-time code out-of-band (SMS or email).
// It is the only component that ever sees the plaintext code.
type OtpNotifier interface {
	Deliver(ctx context.Context, user *domain.User, code string) error
}
