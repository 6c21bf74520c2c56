package handler

import (
	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

// An absent imageUrl maps to "", which the service replaces with the placeholder.
func toCreateProductInput(req createProductRequest) ports.CreateProductInput {
	in := ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	}
	if req.ImageURL != nil {
		in.ImageURL = *req.ImageURL
	}
	return in
}

func toUpdateProductInput(req updateProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
}

// --- Service result → HTTP response ---

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt.UTC(),
	}
}

func toAccountListResponse(accounts []*domain.Account) accountListResponse {
	out := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountResponse(a)
	}
	return accountListResponse{Count: len(out), Users: out}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

func toProductListResponse(products []*domain.Product) productListResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return productListResponse{Count: len(out), Products: out}
}
