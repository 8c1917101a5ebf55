package ports

import (
	"context"
	"time"

	"github.com/prostore/catalog-api/internal/core/domain"
)

// CreateProductInput carries the data needed to create a listing.
type CreateProductInput struct {
	Name  string
	Price float64
	Image string
}

// OwnerSummary is the public view of a product's owner attached to
// list responses.
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ProductView is a product plus its owner summary.
type ProductView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Price     float64       `json:"price"`
	Image     string        `json:"image"`
	Owner     *OwnerSummary `json:"owner,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProductService defines use-case operations for the catalog.
// Mutating operations take the resolved actor; List is public.
type ProductService interface {
	List(ctx context.Context) ([]ProductView, error)
	Create(ctx context.Context, actor *domain.User, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, actor *domain.User, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

// CatalogRefresher re-computes the cached catalog view. Implemented by
// the product service and driven by the background dispatcher.
type CatalogRefresher interface {
	RefreshCatalog(ctx context.Context) error
}

// RefreshQueue accepts catalog re-warm requests without blocking the
// request path.
type RefreshQueue interface {
	Enqueue()
}
