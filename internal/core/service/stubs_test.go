package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory account repository; Create enforces email uniqueness like the
// unique index on the real collection.
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Account
	nextID  int
	findErr error
	updates []ports.AccountChanges
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	clone := *a
	clone.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.byID {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	clone.PasswordHash = ""
	return &clone, nil
}

func (r *stubAccountRepo) Update(_ context.Context, id string, c ports.AccountChanges) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, c)
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.Email != nil {
		a.Email = *c.Email
	}
	if c.PasswordHash != nil {
		a.PasswordHash = *c.PasswordHash
	}
	clone := *a
	clone.PasswordHash = ""
	return &clone, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.byID))
	for _, a := range r.byID {
		clone := *a
		clone.PasswordHash = ""
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubAccountRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

// storedHash returns the persisted digest for id, bypassing the projection.
func (r *stubAccountRepo) storedHash(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].PasswordHash
}

// ---------------------------------------------------------------------------
// In-memory product repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	nextID    int
	listCalls int
	findCalls int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("prod-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	r.listCalls++
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.findCalls++
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, c ports.ProductChanges) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.Stock != nil {
		p.Stock = *c.Stock
	}
	if c.ImageURL != nil {
		p.ImageURL = *c.ImageURL
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

// ---------------------------------------------------------------------------
// In-memory product cache
// ---------------------------------------------------------------------------

type stubProductCache struct {
	gen           int64
	lists         map[int64][]*domain.Product
	items         map[string]*domain.Product
	invalidations int
}

func newStubProductCache() *stubProductCache {
	return &stubProductCache{
		lists: make(map[int64][]*domain.Product),
		items: make(map[string]*domain.Product),
	}
}

func itemKey(gen int64, id string) string {
	return fmt.Sprintf("%d:%s", gen, id)
}

func (c *stubProductCache) Generation(context.Context) (int64, error) {
	return c.gen, nil
}

func (c *stubProductCache) GetList(_ context.Context, gen int64) ([]*domain.Product, bool, error) {
	list, ok := c.lists[gen]
	return list, ok, nil
}

func (c *stubProductCache) SetList(_ context.Context, gen int64, products []*domain.Product) error {
	c.lists[gen] = products
	return nil
}

func (c *stubProductCache) GetProduct(_ context.Context, gen int64, id string) (*domain.Product, bool, error) {
	p, ok := c.items[itemKey(gen, id)]
	return p, ok, nil
}

func (c *stubProductCache) SetProduct(_ context.Context, gen int64, p *domain.Product) error {
	c.items[itemKey(gen, p.ID)] = p
	return nil
}

func (c *stubProductCache) Invalidate(context.Context) error {
	c.gen++
	c.invalidations++
	return nil
}

// interleavingProductRepo runs afterRead once, right after the next
// FindByID or List has loaded its result and before the caller sees it.
type interleavingProductRepo struct {
	*stubProductRepo
	afterRead func()
}

func (r *interleavingProductRepo) fire() {
	if f := r.afterRead; f != nil {
		r.afterRead = nil
		f()
	}
}

func (r *interleavingProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := r.stubProductRepo.FindByID(ctx, id)
	r.fire()
	return p, err
}

func (r *interleavingProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	list, err := r.stubProductRepo.List(ctx)
	r.fire()
	return list, err
}
