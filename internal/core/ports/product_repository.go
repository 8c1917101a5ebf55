package ports

import (
	"context"

	"github.com/prostore/catalog-api/internal/core/domain"
)

// ProductPatch carries a partial update. Nil fields are left unchanged.
type ProductPatch struct {
	Name  *string
	Price *float64
	Image *string
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// Update applies the non-nil patch fields to the product and returns
	// the updated document.
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
