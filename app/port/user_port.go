package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go -package=mocks

import (
	"context"

	"identity-service/app/domain"

	"github.com/google/uuid"
)

// UserRepository defines user data access. Lookups return (nil, nil)
// when no row matches; errors are reserved for storage failures.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}
