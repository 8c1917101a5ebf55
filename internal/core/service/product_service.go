package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prostore/catalog-api/internal/api/metrics"
	"github.com/prostore/catalog-api/internal/core/domain"
	"github.com/prostore/catalog-api/internal/core/ports"
)

// CatalogCache abstracts the catalog list cache (Redis). A failed cache
// round-trip must never fail the request; implementations report misses
// instead of errors.
type CatalogCache interface {
	GetList(ctx context.Context) ([]ports.ProductView, bool)
	SetList(ctx context.Context, views []ports.ProductView)
	Invalidate(ctx context.Context)
}

// ProductService implements catalog CRUD with owner-or-admin
// authorization on mutations.
type ProductService struct {
	repo     ports.ProductRepository
	users    ports.UserRepository
	cache    CatalogCache
	refreshQ ports.RefreshQueue
	logger   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, users ports.UserRepository, cache CatalogCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, users: users, cache: cache, logger: logger}
}

// SetRefreshQueue wires the background cache re-warm queue. Optional;
// without it mutations only invalidate.
func (s *ProductService) SetRefreshQueue(q ports.RefreshQueue) {
	s.refreshQ = q
}

// List returns every product with its owner summary attached. Reads are
// public and may be served from the cache; staleness is bounded by the
// cache TTL and mutation-time invalidation.
func (s *ProductService) List(ctx context.Context) ([]ports.ProductView, error) {
	if s.cache != nil {
		if views, ok := s.cache.GetList(ctx); ok {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return views, nil
		}
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	views, err := s.buildCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetList(ctx, views)
	}
	return views, nil
}

// Create persists a new product owned by actor.
func (s *ProductService) Create(ctx context.Context, actor *domain.User, input ports.CreateProductInput) (*domain.Product, error) {
	if actor == nil {
		return nil, domain.ErrNoToken
	}
	if input.Name == "" || input.Image == "" || input.Price <= 0 {
		return nil, domain.ErrValidation
	}

	product := &domain.Product{
		Name:    input.Name,
		Price:   input.Price,
		Image:   input.Image,
		OwnerID: actor.ID,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("owner_id", actor.ID).Msg("product created")
	s.afterMutation(ctx)
	return created, nil
}

// Update applies the provided patch fields to the product after the
// owner-or-admin check. Fields absent from the patch are unchanged.
func (s *ProductService) Update(ctx context.Context, actor *domain.User, id string, patch ports.ProductPatch) (*domain.Product, error) {
	product, err := s.authorizeMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if patch.Name == nil && patch.Price == nil && patch.Image == nil {
		return product, nil
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, domain.ErrValidation
	}
	if patch.Image != nil && *patch.Image == "" {
		return nil, domain.ErrValidation
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, domain.ErrValidation
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Str("actor_id", actor.ID).Msg("product updated")
	s.afterMutation(ctx)
	return updated, nil
}

// Delete removes the product after the owner-or-admin check.
func (s *ProductService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authorizeMutation(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("product_id", id).Str("actor_id", actor.ID).Msg("product deleted")
	s.afterMutation(ctx)
	return nil
}

// RefreshCatalog rebuilds the cached catalog view. Called by the
// background dispatcher after mutations.
func (s *ProductService) RefreshCatalog(ctx context.Context) error {
	views, err := s.buildCatalog(ctx)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.SetList(ctx, views)
	}
	return nil
}

// authorizeMutation runs the shared gate sequence for update and
// delete: id format, existence, then the ownership policy. The id check
// runs before any storage access.
func (s *ProductService) authorizeMutation(ctx context.Context, actor *domain.User, id string) (*domain.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domain.ErrInvalidProductID
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == nil {
		return nil, domain.ErrNoToken
	}
	if !actor.CanModify(product.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (s *ProductService) buildCatalog(ctx context.Context) ([]ports.ProductView, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.OwnerID]; ok {
			continue
		}
		seen[p.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, p.OwnerID)
	}

	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ProductView, 0, len(products))
	for _, p := range products {
		view := ports.ProductView{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if owner, ok := owners[p.OwnerID]; ok {
			view.Owner = &ports.OwnerSummary{
				ID:       owner.ID,
				Username: owner.Username,
				Email:    owner.Email,
				Role:     owner.Role,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ProductService) afterMutation(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.refreshQ != nil {
		s.refreshQ.Enqueue()
	}
}
