package handler

import (
	"strings"
	"time"
)

// --- Request payloads ---

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Stock       *int     `json:"stock"       validate:"required,gte=0"`
	ImageURL    *string  `json:"imageUrl"    validate:"omitnil,url"`
}

func (r *createProductRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = trimPtr(r.ImageURL)
}

type updateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitnil,min=2,max=200"`
	Description *string  `json:"description" validate:"omitnil,min=10,max=2000"`
	Price       *float64 `json:"price"       validate:"omitnil,gte=0"`
	Stock       *int     `json:"stock"       validate:"omitnil,gte=0"`
	ImageURL    *string  `json:"imageUrl"    validate:"omitnil,url"`
}

func (r *updateProductRequest) normalize() {
	r.Name = trimPtr(r.Name)
	r.Description = trimPtr(r.Description)
	r.ImageURL = trimPtr(r.ImageURL)
}

// --- Response payloads ---

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type productEnvelope struct {
	Product productResponse `json:"product"`
}

type productListResponse struct {
	Count    int               `json:"count"`
	Products []productResponse `json:"products"`
}
