package ports

import (
	"context"

	"github.com/marketplace/marketplace-api/internal/core/domain"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
}

type UpdateProductInput = ProductChanges

type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
