package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// ProductService implements catalog CRUD. The cache is optional; cache
// failures are logged and never fail a request.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

func (s *ProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		imageURL = domain.DefaultImageURL
	}

	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    imageURL,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.invalidate(ctx, "")
	s.logger.Info().Str("product_id", created.ID).Msg("product created")
	return created, nil
}

// ListProducts returns the catalog newest first.
func (s *ProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	gen, cached := s.generation(ctx)
	if cached {
		list, ok, err := s.cache.GetList(ctx, gen)
		if err != nil {
			s.logger.Warn().Err(err).Msg("product list cache read failed")
		} else if ok {
			return list, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if cached {
		if err := s.cache.SetList(ctx, gen, products); err != nil {
			s.logger.Warn().Err(err).Msg("product list cache write failed")
		}
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	gen, cached := s.generation(ctx)
	if cached {
		product, ok, err := s.cache.GetProduct(ctx, gen, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		} else if ok {
			return product, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cached {
		if err := s.cache.SetProduct(ctx, gen, product); err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
		}
	}
	return product, nil
}

// UpdateProduct applies only the supplied fields.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	changes := input
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		changes.Name = &name
	}
	if changes.Description != nil {
		desc := strings.TrimSpace(*changes.Description)
		changes.Description = &desc
	}
	if changes.ImageURL != nil {
		url := strings.TrimSpace(*changes.ImageURL)
		changes.ImageURL = &url
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// generation pins the cache generation before the store is read. The
// returned bool is false when there is no cache or it cannot be reached.
func (s *ProductService) generation(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("product cache generation read failed")
		return 0, false
	}
	return gen, true
}

// invalidate runs after the store write has committed.
func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}
