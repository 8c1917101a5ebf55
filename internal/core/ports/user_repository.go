package ports

import (
	"context"

	"github.com/prostore/catalog-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids, keyed by ID. Missing ids
	// are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// ClaimBootstrap atomically claims the one-time bootstrap-admin slot.
	// It returns true for exactly one caller over the lifetime of the
	// store; every later call returns false.
	ClaimBootstrap(ctx context.Context) (bool, error)
	// ReleaseBootstrap undoes a successful claim. Used when the signup
	// that won the claim fails to persist its user.
	ReleaseBootstrap(ctx context.Context) error
}
