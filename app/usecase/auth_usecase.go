package usecase

import (
	"context"
	"log/slog"

	"identity-service/app/domain"
	"identity-service/app/port"
	apperrors "identity-service/app/utils/errors"
)

// AuthUseCase composes the identity resolver, OTP manager, session
// manager, and token issuer into the two public operations. It owns the
// ordering: token issuance happens strictly after OTP validation and
// strictly before session finalization, so a failed issuance leaves the
// session intact and retryable.
type AuthUseCase struct {
	resolver port.IdentityResolver
	otp      port.OtpManager
	sessions port.SessionManager
	issuer   port.TokenIssuer
	logger   *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance with its four
// collaborators injected.
func NewAuthUseCase(resolver port.IdentityResolver, otp port.OtpManager, sessions port.SessionManager, issuer port.TokenIssuer, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{
		resolver: resolver,
		otp:      otp,
		sessions: sessions,
		issuer:   issuer,
		logger:   logger.With("component", "auth_usecase"),
	}
}

// Identify starts an identification attempt: resolve (or create) the
// user behind the identifier, issue a one-time code out-of-band, and
// return a short-lived session token.
func (uc *AuthUseCase) Identify(ctx context.Context, method, identifier string) (string, error) {
	parsed, err := domain.ParseMethod(method)
	if err != nil {
		return "", apperrors.ErrUnsupportedMethod.WithDetails(method)
	}

	var user *domain.User
	switch parsed {
	case domain.MethodEmail:
		user, err = uc.resolver.ResolveByEmail(ctx, identifier)
	case domain.MethodPhone:
		user, err = uc.resolver.ResolveByPhone(ctx, identifier)
	}
	if err != nil {
		return "", err
	}

	if err := uc.otp.Issue(ctx, user); err != nil {
		return "", err
	}

	token, err := uc.sessions.Create(ctx, user, parsed)
	if err != nil {
		return "", err
	}

	uc.logger.Info("identification started", "user_id", user.ID, "method", parsed)
	return token, nil
}

// Verify completes an identification attempt: fetch the session, check
// the one-time code, mint the access token, and destroy the session.
// Any failure before finalization leaves the remaining state intact for
// a retry with a fresh Identify.
func (uc *AuthUseCase) Verify(ctx context.Context, identifierToken, otp string) (string, error) {
	session, user, err := uc.sessions.FetchValid(ctx, identifierToken)
	if err != nil {
		return "", err
	}

	if err := uc.otp.Validate(ctx, user, otp); err != nil {
		return "", err
	}

	accessToken, err := uc.issuer.Issue(ctx, user.ID)
	if err != nil {
		return "", apperrors.NewTokenError(err)
	}

	if err := uc.sessions.Finalize(ctx, session); err != nil {
		return "", err
	}

	uc.logger.Info("identification verified", "user_id", user.ID, "method", session.Method)
	return accessToken, nil
}
