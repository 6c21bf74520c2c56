package domain

import "time"

// DefaultImageURL is stored when a product is created without an image.
const DefaultImageURL = "https://via.placeholder.com/400x300?text=No+Image"

// Product is a catalog entry. Products are not owned by any account.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}
