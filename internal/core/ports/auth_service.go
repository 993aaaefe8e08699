package ports

import (
	"context"

	"github.com/tanit/user-management/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
