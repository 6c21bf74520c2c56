package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// SeedAccount is a demo account inserted into an empty database.
type SeedAccount struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var defaultSeedAccounts = []SeedAccount{
	{Name: "Admin User", Email: "admin@example.com", Password: "password123", Role: domain.RoleAdmin},
	{Name: "John Doe", Email: "john@example.com", Password: "password123", Role: domain.RoleUser},
	{Name: "Jane Smith", Email: "jane@example.com", Password: "password123", Role: domain.RoleUser},
}

var defaultSeedProducts = []ports.CreateProductInput{
	{
		Name:        "Laptop Gaming Pro",
		Description: "High-end gaming laptop with the latest processor and an RTX 4080 graphics card. Built for heavy gaming and 4K video rendering.",
		Price:       25000000,
		Stock:       10,
		ImageURL:    "https://placehold.co/600x400/png?text=Laptop+Gaming",
	},
	{
		Name:        "Smartphone Flagship X",
		Description: "Smartphone with a 200MP camera and a 120Hz AMOLED display, powered by a Snapdragon 8 Gen 3 chipset.",
		Price:       15000000,
		Stock:       25,
		ImageURL:    "https://placehold.co/600x400/png?text=Smartphone",
	},
	{
		Name:        "Headphone Noise Cancelling",
		Description: "Wireless headphones with class-leading active noise cancelling and up to 30 hours of battery life.",
		Price:       3500000,
		Stock:       50,
		ImageURL:    "https://placehold.co/600x400/png?text=Headphone",
	},
	{
		Name:        "Smartwatch Series 5",
		Description: "Smartwatch with full health tracking including ECG and blood oxygen. Water resistant to 50 meters.",
		Price:       4500000,
		Stock:       30,
		ImageURL:    "https://placehold.co/600x400/png?text=Smartwatch",
	},
	{
		Name:        "Tablet Pro 12.9\"",
		Description: "Large-screen tablet with laptop-class performance. Supports stylus and keyboard for productivity.",
		Price:       18000000,
		Stock:       15,
		ImageURL:    "https://placehold.co/600x400/png?text=Tablet",
	},
	{
		Name:        "Kamera Mirrorless 4K",
		Description: "Compact mirrorless camera recording 4K video at 60fps with fast, accurate autofocus.",
		Price:       12000000,
		Stock:       8,
		ImageURL:    "https://placehold.co/600x400/png?text=Kamera",
	},
}

// Seeder fills empty collections with demo data. Collections that already
// hold documents are left untouched, so seeding is safe on every restart.
type Seeder struct {
	accounts ports.AccountRepository
	products ports.ProductRepository
	hasher   ports.PasswordHasher
	logger   zerolog.Logger
}

func NewSeeder(accounts ports.AccountRepository, products ports.ProductRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *Seeder {
	return &Seeder{accounts: accounts, products: products, hasher: hasher, logger: logger}
}

func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedAccounts(ctx, defaultSeedAccounts); err != nil {
		return err
	}
	return s.seedProducts(ctx, defaultSeedProducts)
}

func (s *Seeder) seedAccounts(ctx context.Context, seeds []SeedAccount) error {
	n, err := s.accounts.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed accounts: count: %w", err)
	}
	if n > 0 {
		s.logger.Debug().Int64("existing", n).Msg("accounts already present, skipping seed")
		return nil
	}

	for _, seed := range seeds {
		if !domain.ValidRole(seed.Role) {
			return fmt.Errorf("seed accounts: %s: unknown role %q", seed.Email, seed.Role)
		}
		hash, err := s.hasher.Hash(seed.Password)
		if err != nil {
			return fmt.Errorf("seed accounts: hash password: %w", err)
		}
		_, err = s.accounts.Create(ctx, &domain.Account{
			Name:         seed.Name,
			Email:        domain.NormalizeEmail(seed.Email),
			PasswordHash: hash,
			Role:         seed.Role,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("seed accounts: create %s: %w", seed.Email, err)
		}
	}

	s.logger.Info().Int("count", len(seeds)).Msg("accounts seeded")
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context, seeds []ports.CreateProductInput) error {
	n, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed products: count: %w", err)
	}
	if n > 0 {
		s.logger.Debug().Int64("existing", n).Msg("products already present, skipping seed")
		return nil
	}

	for _, seed := range seeds {
		_, err := s.products.Create(ctx, &domain.Product{
			Name:        seed.Name,
			Description: seed.Description,
			Price:       seed.Price,
			Stock:       seed.Stock,
			ImageURL:    seed.ImageURL,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("seed products: create %q: %w", seed.Name, err)
		}
	}

	s.logger.Info().Int("count", len(seeds)).Msg("products seeded")
	return nil
}
