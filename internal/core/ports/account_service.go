package ports

import (
	"context"

	"github.com/marketplace/marketplace-api/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput carries only the fields the caller supplied.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Account *domain.Account
	Token   string
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, accountID string, input UpdateProfileInput) (*domain.Account, error)
	DeleteProfile(ctx context.Context, accountID string) error
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}
