package ports

import (
	"context"

	"github.com/tanit/user-management/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// The backing store is keyed by email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
