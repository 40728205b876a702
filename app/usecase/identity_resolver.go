package usecase

import (
	"context"
	"log/slog"

	"identity-service/app/domain"
	"identity-service/app/port"
	apperrors "identity-service/app/utils/errors"
)

// identityResolver maps raw identifiers to stable user records.
type identityResolver struct {
	users  port.UserRepository
	logger *slog.Logger
}

// NewIdentityResolver creates an IdentityResolver backed by the user repository.
func NewIdentityResolver(users port.UserRepository, logger *slog.Logger) port.IdentityResolver {
	return &identityResolver{
		users:  users,
		logger: logger.With("component", "identity_resolver"),
	}
}

// ResolveByEmail looks up a user by exact email, creating one on first
// sight. Repeated calls with the same email return the same user.
func (r *identityResolver) ResolveByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if user != nil {
		return user, nil
	}

	user, err = domain.NewUserWithEmail(email)
	if err != nil {
		return nil, apperrors.ErrInvalidInput.WithCause(err)
	}

	return r.create(ctx, user, func() (*domain.User, error) {
		return r.users.GetByEmail(ctx, email)
	})
}

// ResolveByPhone looks up a user by exact phone, creating one on first sight.
func (r *identityResolver) ResolveByPhone(ctx context.Context, phone string) (*domain.User, error) {
	user, err := r.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if user != nil {
		return user, nil
	}

	user, err = domain.NewUserWithPhone(phone)
	if err != nil {
		return nil, apperrors.ErrInvalidInput.WithCause(err)
	}

	return r.create(ctx, user, func() (*domain.User, error) {
		return r.users.GetByPhone(ctx, phone)
	})
}

// create inserts the user; when the insert fails a concurrent request
// may have created the row first, so a single re-fetch decides between
// the race and a genuine storage failure.
func (r *identityResolver) create(ctx context.Context, user *domain.User, refetch func() (*domain.User, error)) (*domain.User, error) {
	if err := r.users.Create(ctx, user); err != nil {
		if existing, ferr := refetch(); ferr == nil && existing != nil {
			return existing, nil
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	r.logger.Info("user created", "user_id", user.ID)
	return user, nil
}
