package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

func intPtr(i int) *int { return &i }

func TestProductService_Create_DefaultsImage(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), nil, zerolog.Nop())

	p, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "  Phone ",
		Description: "A nice phone indeed",
		Price:       100,
		Stock:       5,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.ID == "" || p.Name != "Phone" || p.Stock != 5 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.ImageURL != domain.DefaultImageURL {
		t.Fatalf("expected placeholder image, got %q", p.ImageURL)
	}
	if p.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}
}

func TestProductService_Update_OnlySuppliedFields(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	p, _ := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "Phone",
		Description: "A nice phone indeed",
		Price:       100,
		Stock:       1,
		ImageURL:    "https://img.example.com/phone.png",
	})

	updated, err := svc.UpdateProduct(context.Background(), p.ID, ports.UpdateProductInput{Stock: intPtr(5)})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Stock != 5 {
		t.Fatalf("expected stock 5, got %d", updated.Stock)
	}
	if updated.Name != p.Name || updated.Description != p.Description || updated.Price != p.Price || updated.ImageURL != p.ImageURL {
		t.Fatalf("unrelated fields changed: before %+v after %+v", p, updated)
	}
}

func TestProductService_Update_TrimsImageURL(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	p, _ := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name: "Phone", Description: "A nice phone indeed", Price: 1, ImageURL: "https://img.example.com/a.png",
	})
	next := "  https://img.example.com/b.png "
	updated, err := svc.UpdateProduct(context.Background(), p.ID, ports.UpdateProductInput{ImageURL: &next})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.ImageURL != "https://img.example.com/b.png" {
		t.Fatalf("expected trimmed url, got %q", updated.ImageURL)
	}
}

func TestProductService_NotFound(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.GetProduct(ctx, "missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("GetProduct: expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.UpdateProduct(ctx, "missing", ports.UpdateProductInput{Stock: intPtr(1)}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("UpdateProduct: expected ErrProductNotFound, got %v", err)
	}
	if err := svc.DeleteProduct(ctx, "missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("DeleteProduct: expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	p, _ := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Phone", Description: "A nice phone indeed"})
	if err := svc.DeleteProduct(context.Background(), p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := svc.GetProduct(context.Background(), p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("product still present: %v", err)
	}
}

func TestProductService_CacheReadThroughAndInvalidation(t *testing.T) {
	repo := newStubProductRepo()
	cache := newStubProductCache()
	svc := NewProductService(repo, cache, zerolog.Nop())
	ctx := context.Background()

	p, _ := svc.CreateProduct(ctx, ports.CreateProductInput{Name: "Phone", Description: "A nice phone indeed", Price: 10})

	for i := 0; i < 3; i++ {
		list, err := svc.ListProducts(ctx)
		if err != nil || len(list) != 1 {
			t.Fatalf("ListProducts: %v (%d items)", err, len(list))
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected 1 repository list call, got %d", repo.listCalls)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.GetProduct(ctx, p.ID); err != nil {
			t.Fatalf("GetProduct: %v", err)
		}
	}
	if repo.findCalls != 1 {
		t.Fatalf("expected 1 repository find call, got %d", repo.findCalls)
	}

	if _, err := svc.UpdateProduct(ctx, p.ID, ports.UpdateProductInput{Stock: intPtr(9)}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	got, err := svc.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 9 {
		t.Fatalf("stale cache entry served: stock %d", got.Stock)
	}
	if _, err := svc.ListProducts(ctx); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected list cache to be invalidated, got %d repository calls", repo.listCalls)
	}
	if cache.invalidations != 2 {
		t.Fatalf("expected create and update invalidations, got %d", cache.invalidations)
	}
}

func TestProductService_CacheWriteBackRacingUpdateIsNotServed(t *testing.T) {
	ctx := context.Background()
	repo := &interleavingProductRepo{stubProductRepo: newStubProductRepo()}
	svc := NewProductService(repo, newStubProductCache(), zerolog.Nop())

	p, _ := svc.CreateProduct(ctx, ports.CreateProductInput{Name: "Phone", Description: "A nice phone indeed", Stock: 5})

	// The update commits after the reader loaded stock=5 but before it
	// writes that value back to the cache.
	repo.afterRead = func() {
		if _, err := svc.UpdateProduct(ctx, p.ID, ports.UpdateProductInput{Stock: intPtr(99)}); err != nil {
			t.Fatalf("UpdateProduct: %v", err)
		}
	}
	if _, err := svc.GetProduct(ctx, p.ID); err != nil {
		t.Fatalf("GetProduct: %v", err)
	}

	got, err := svc.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 99 {
		t.Fatalf("GET after committed update returned stock=%d, want 99", got.Stock)
	}
}

func TestProductService_CacheListWriteBackRacingUpdateIsNotServed(t *testing.T) {
	ctx := context.Background()
	repo := &interleavingProductRepo{stubProductRepo: newStubProductRepo()}
	svc := NewProductService(repo, newStubProductCache(), zerolog.Nop())

	p, _ := svc.CreateProduct(ctx, ports.CreateProductInput{Name: "Phone", Description: "A nice phone indeed", Stock: 5})

	repo.afterRead = func() {
		if _, err := svc.UpdateProduct(ctx, p.ID, ports.UpdateProductInput{Stock: intPtr(99)}); err != nil {
			t.Fatalf("UpdateProduct: %v", err)
		}
	}
	if _, err := svc.ListProducts(ctx); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}

	list, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(list) != 1 || list[0].Stock != 99 {
		t.Fatalf("list after committed update is stale: %+v", list)
	}
}
