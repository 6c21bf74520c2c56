package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// memAccounts is an in-memory AccountRepository with the same uniqueness and
// projection rules as the Mongo collection.
type memAccounts struct {
	mu     sync.Mutex
	byID   map[string]*domain.Account
	nextID int
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: make(map[string]*domain.Account)}
}

func (r *memAccounts) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
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

func (r *memAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a.Public(), nil
}

func (r *memAccounts) Update(_ context.Context, id string, c ports.AccountChanges) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if c.Email != nil {
		for otherID, other := range r.byID {
			if otherID != id && other.Email == *c.Email {
				return nil, domain.ErrEmailInUse
			}
		}
		a.Email = *c.Email
	}
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.PasswordHash != nil {
		a.PasswordHash = *c.PasswordHash
	}
	return a.Public(), nil
}

func (r *memAccounts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memAccounts) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a.Public())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memAccounts) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

type memProducts struct {
	mu     sync.Mutex
	byID   map[string]*domain.Product
	order  []string
	nextID int
}

func newMemProducts() *memProducts {
	return &memProducts{byID: make(map[string]*domain.Product)}
}

func (r *memProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("prod-%d", r.nextID)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

// List returns products in reverse insertion order, i.e. newest first.
func (r *memProducts) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Product, 0, len(r.byID))
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.byID[r.order[i]]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProducts) Update(_ context.Context, id string, c ports.ProductChanges) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memProducts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memProducts) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}
