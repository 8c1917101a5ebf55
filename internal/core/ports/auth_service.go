package ports

import (
	"context"

	"github.com/prostore/catalog-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
