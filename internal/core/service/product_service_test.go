package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prostore/catalog-api/internal/core/domain"
	"github.com/prostore/catalog-api/internal/core/ports"
)

const (
	productID      = "64b000000000000000000001"
	otherProductID = "64b000000000000000000002"
)

type stubProductRepo struct {
	byID        map[string]*domain.Product
	nextID      int
	findCalls   int
	updateCalls int
	listErr     error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	created := cloneProduct(p)
	created.ID = productID
	r.byID[created.ID] = cloneProduct(created)
	return created, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.findCalls++
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	r.updateCalls++
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubCache struct {
	views       []ports.ProductView
	hasViews    bool
	sets        int
	invalidates int
}

func (c *stubCache) GetList(context.Context) ([]ports.ProductView, bool) {
	if !c.hasViews {
		return nil, false
	}
	return c.views, true
}

func (c *stubCache) SetList(_ context.Context, views []ports.ProductView) {
	c.views = views
	c.hasViews = true
	c.sets++
}

func (c *stubCache) Invalidate(context.Context) {
	c.views = nil
	c.hasViews = false
	c.invalidates++
}

type stubQueue struct{ enqueues int }

func (q *stubQueue) Enqueue() { q.enqueues++ }

type productFixture struct {
	svc   *ProductService
	repo  *stubProductRepo
	users *stubUserRepo
	cache *stubCache
	queue *stubQueue
	owner *domain.User
	admin *domain.User
	other *domain.User
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	users := newStubUserRepo()
	repo := newStubProductRepo()
	cache := &stubCache{}
	queue := &stubQueue{}

	owner := &domain.User{ID: "owner-1", Username: "owner", Email: "owner@example.com", Role: domain.RoleUser}
	admin := &domain.User{ID: "admin-1", Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	other := &domain.User{ID: "other-1", Username: "other", Email: "other@example.com", Role: domain.RoleUser}
	for _, u := range []*domain.User{owner, admin, other} {
		users.byID[u.ID] = cloneUser(u)
	}

	svc := NewProductService(repo, users, cache, zerolog.Nop())
	svc.SetRefreshQueue(queue)

	return &productFixture{svc: svc, repo: repo, users: users, cache: cache, queue: queue, owner: owner, admin: admin, other: other}
}

func (f *productFixture) seedProduct(t *testing.T) *domain.Product {
	t.Helper()
	created, err := f.svc.Create(context.Background(), f.owner, ports.CreateProductInput{
		Name:  "Keyboard",
		Price: 49.99,
		Image: "https://img.example.com/kb.png",
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return created
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestProductService_Create_SetsOwner(t *testing.T) {
	f := newProductFixture(t)

	created := f.seedProduct(t)
	if created.OwnerID != f.owner.ID {
		t.Errorf("OwnerID: want %q, got %q", f.owner.ID, created.OwnerID)
	}
	if created.ID == "" {
		t.Error("expected assigned product id")
	}
}

func TestProductService_Create_RequiresActor(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Create(context.Background(), nil, ports.CreateProductInput{Name: "x", Price: 1, Image: "y"})
	if !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	f := newProductFixture(t)

	cases := []ports.CreateProductInput{
		{Name: "", Price: 1, Image: "img"},
		{Name: "x", Price: 0, Image: "img"},
		{Name: "x", Price: -5, Image: "img"},
		{Name: "x", Price: 1, Image: ""},
	}
	for _, input := range cases {
		if _, err := f.svc.Create(context.Background(), f.owner, input); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Create(%+v): expected ErrValidation, got %v", input, err)
		}
	}
}

func TestProductService_Create_InvalidatesCacheAndEnqueues(t *testing.T) {
	f := newProductFixture(t)

	f.seedProduct(t)
	if f.cache.invalidates != 1 {
		t.Errorf("cache invalidations: want 1, got %d", f.cache.invalidates)
	}
	if f.queue.enqueues != 1 {
		t.Errorf("refresh enqueues: want 1, got %d", f.queue.enqueues)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }

func TestProductService_Update_PartialPatch(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	updated, err := f.svc.Update(context.Background(), f.owner, created.ID, ports.ProductPatch{
		Price: floatPtr(59.99),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 59.99 {
		t.Errorf("Price: want 59.99, got %v", updated.Price)
	}
	if updated.Name != created.Name {
		t.Errorf("Name must be unchanged: want %q, got %q", created.Name, updated.Name)
	}
	if updated.Image != created.Image {
		t.Errorf("Image must be unchanged: want %q, got %q", created.Image, updated.Image)
	}
}

func TestProductService_Update_EmptyPatchIsNoop(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	updated, err := f.svc.Update(context.Background(), f.owner, created.ID, ports.ProductPatch{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != created.Name || updated.Price != created.Price {
		t.Errorf("empty patch must not change the product: %+v", updated)
	}
	if f.repo.updateCalls != 0 {
		t.Errorf("empty patch must not hit storage, got %d update calls", f.repo.updateCalls)
	}
}

func TestProductService_Update_PatchValidation(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	cases := []ports.ProductPatch{
		{Name: strPtr("")},
		{Image: strPtr("")},
		{Price: floatPtr(0)},
		{Price: floatPtr(-1)},
	}
	for _, patch := range cases {
		if _, err := f.svc.Update(context.Background(), f.owner, created.ID, patch); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Update(%+v): expected ErrValidation, got %v", patch, err)
		}
	}
}

func TestProductService_Update_AdminMayModifyOthers(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	updated, err := f.svc.Update(context.Background(), f.admin, created.ID, ports.ProductPatch{
		Name: strPtr("Renamed"),
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name: want %q, got %q", "Renamed", updated.Name)
	}
}

func TestProductService_Update_NonOwnerForbidden(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	_, err := f.svc.Update(context.Background(), f.other, created.ID, ports.ProductPatch{
		Name: strPtr("Hijacked"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.repo.updateCalls != 0 {
		t.Errorf("forbidden update must not hit storage, got %d update calls", f.repo.updateCalls)
	}
}

func TestProductService_Update_InvalidIDBeforeStorage(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Update(context.Background(), f.owner, "not-an-object-id", ports.ProductPatch{
		Name: strPtr("x"),
	})
	if !errors.Is(err, domain.ErrInvalidProductID) {
		t.Fatalf("expected ErrInvalidProductID, got %v", err)
	}
	if f.repo.findCalls != 0 {
		t.Errorf("malformed id must be rejected before storage, got %d find calls", f.repo.findCalls)
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Update(context.Background(), f.owner, otherProductID, ports.ProductPatch{
		Name: strPtr("x"),
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestProductService_Delete_Owner(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)
	f.cache.invalidates = 0
	f.queue.enqueues = 0

	if err := f.svc.Delete(context.Background(), f.owner, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := f.repo.byID[created.ID]; ok {
		t.Error("product still present after delete")
	}
	if f.cache.invalidates != 1 || f.queue.enqueues != 1 {
		t.Errorf("delete must invalidate and enqueue: invalidates=%d enqueues=%d", f.cache.invalidates, f.queue.enqueues)
	}
}

func TestProductService_Delete_NonOwnerForbidden(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	if err := f.svc.Delete(context.Background(), f.other, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := f.repo.byID[created.ID]; !ok {
		t.Error("product must survive a forbidden delete")
	}
}

func TestProductService_Delete_RequiresActor(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	if err := f.svc.Delete(context.Background(), nil, created.ID); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestProductService_Delete_InvalidID(t *testing.T) {
	f := newProductFixture(t)

	if err := f.svc.Delete(context.Background(), f.admin, "nope"); !errors.Is(err, domain.ErrInvalidProductID) {
		t.Fatalf("expected ErrInvalidProductID, got %v", err)
	}
}

func TestProductService_Delete_NotFound(t *testing.T) {
	f := newProductFixture(t)

	if err := f.svc.Delete(context.Background(), f.admin, otherProductID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestProductService_List_AttachesOwner(t *testing.T) {
	f := newProductFixture(t)
	created := f.seedProduct(t)

	views, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views: want 1, got %d", len(views))
	}
	view := views[0]
	if view.ID != created.ID {
		t.Errorf("ID: want %q, got %q", created.ID, view.ID)
	}
	if view.Owner == nil {
		t.Fatal("expected owner summary")
	}
	if view.Owner.ID != f.owner.ID || view.Owner.Username != f.owner.Username {
		t.Errorf("owner summary mismatch: %+v", view.Owner)
	}
}

func TestProductService_List_ServesFromCache(t *testing.T) {
	f := newProductFixture(t)
	f.seedProduct(t)

	// First list populates the cache; second one must not touch storage.
	if _, err := f.svc.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	f.repo.listErr = errors.New("storage down")
	views, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("cached List: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("cached views: want 1, got %d", len(views))
	}
}

func TestProductService_RefreshCatalog_RepopulatesCache(t *testing.T) {
	f := newProductFixture(t)
	f.seedProduct(t)
	f.cache.Invalidate(context.Background())
	sets := f.cache.sets

	if err := f.svc.RefreshCatalog(context.Background()); err != nil {
		t.Fatalf("RefreshCatalog: %v", err)
	}
	if f.cache.sets != sets+1 {
		t.Errorf("expected cache set after refresh, sets=%d", f.cache.sets)
	}
	if !f.cache.hasViews {
		t.Error("cache must hold the rebuilt catalog")
	}
}
