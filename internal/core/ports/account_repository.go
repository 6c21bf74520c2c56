package ports

import (
	"context"

	"github.com/marketplace/marketplace-api/internal/core/domain"
)

// AccountChanges is a partial update; nil fields are left untouched.
type AccountChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// AccountRepository defines persistence for accounts.
//
// FindByEmail is the only read that returns the password hash; every other
// read leaves Account.PasswordHash empty.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, changes AccountChanges) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Account, error)
	Count(ctx context.Context) (int64, error)
}
