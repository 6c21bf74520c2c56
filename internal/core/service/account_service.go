package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// AccountService implements registration, login and profile management.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a user-role account and returns it with a fresh token.
// The existence check is advisory; the unique email index decides races.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrEmailExists
	case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create account")
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.logger.Info().Str("account_id", created.ID).Msg("account registered")
	return &ports.AuthResult{Account: created.Public(), Token: token}, nil
}

// Login checks credentials. An unknown email and a wrong password both yield
// domain.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	account, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.logger.Debug().Str("account_id", account.ID).Msg("login succeeded")
	return &ports.AuthResult{Account: account.Public(), Token: token}, nil
}

// GetProfile reloads the account; it fails only when the account vanished
// after the request was authenticated.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Public(), nil
}

// UpdateProfile applies only the supplied fields. A new password goes through
// the same hashing path as registration. The current password is not required.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, input ports.UpdateProfileInput) (*domain.Account, error) {
	var changes ports.AccountChanges

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		changes.Name = &name
	}

	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		other, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != accountID:
			return nil, domain.ErrEmailInUse
		case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
			return nil, fmt.Errorf("update profile: %w", err)
		}
		changes.Email = &email
	}

	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
		changes.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, accountID, changes)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrEmailInUse) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info().
		Str("account_id", accountID).
		Bool("email_changed", changes.Email != nil).
		Bool("password_changed", changes.PasswordHash != nil).
		Msg("profile updated")
	return updated.Public(), nil
}

// DeleteProfile hard-deletes the account. Products are not owned and are left alone.
func (s *AccountService) DeleteProfile(ctx context.Context, accountID string) error {
	if err := s.repo.Delete(ctx, accountID); err != nil {
		return err
	}
	s.logger.Info().Str("account_id", accountID).Msg("account deleted")
	return nil
}

// ListAccounts returns every account, newest first.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Public())
	}
	return out, nil
}
