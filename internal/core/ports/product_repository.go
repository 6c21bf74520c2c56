package ports

import (
	"context"

	"github.com/marketplace/marketplace-api/internal/core/domain"
)

// ProductChanges is a partial update; nil fields are left untouched.
type ProductChanges struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
}

// ProductRepository defines persistence for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// List returns every product, newest first.
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, changes ProductChanges) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ProductCache is an optional read-through cache for the public catalog.
//
// Entries live under a generation. Readers pin the generation with
// Generation before querying the store and write back under that same value;
// Invalidate advances it, so an entry built from a read that raced a write is
// never served afterwards. A miss is reported as (nil, false, nil).
type ProductCache interface {
	Generation(ctx context.Context) (int64, error)
	GetList(ctx context.Context, gen int64) ([]*domain.Product, bool, error)
	SetList(ctx context.Context, gen int64, products []*domain.Product) error
	GetProduct(ctx context.Context, gen int64, id string) (*domain.Product, bool, error)
	SetProduct(ctx context.Context, gen int64, product *domain.Product) error
	Invalidate(ctx context.Context) error
}
