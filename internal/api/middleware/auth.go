package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/marketplace-api/internal/api/metrics"
	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// AccountKey is the echo context key holding the authenticated *domain.Account.
const AccountKey = "account"

const StageAuthenticate = "authenticate"

// AccountFinder loads the identity a token was issued for.
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}

// Authenticate is the auth gate:
//
//	no/malformed bearer header → domain.ErrUnauthenticated
//	token fails verification   → domain.ErrInvalidToken
//	account no longer exists   → domain.ErrIdentityNotFound
//
// On success the account, without its password hash, is stored under AccountKey.
func Authenticate(tokens ports.TokenVerifier, accounts AccountFinder) Stage {
	return Stage{
		Name: StageAuthenticate,
		Run: func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues(StageAuthenticate, "no_token").Inc()
				return domain.ErrUnauthenticated
			}

			accountID, err := tokens.Verify(raw)
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues(StageAuthenticate, "invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			account, err := accounts.FindByID(c.Request().Context(), accountID)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					metrics.GateRejectionsTotal.WithLabelValues(StageAuthenticate, "unknown_account").Inc()
					return domain.ErrIdentityNotFound
				}
				return fmt.Errorf("authenticate: load account: %w", err)
			}

			c.Set(AccountKey, account.Public())
			return nil
		},
	}
}

// Auth wraps Authenticate as a standalone middleware.
func Auth(tokens ports.TokenVerifier, accounts AccountFinder) echo.MiddlewareFunc {
	return Pipeline(Authenticate(tokens, accounts))
}

// CurrentAccount returns the account attached by Authenticate.
func CurrentAccount(c echo.Context) (*domain.Account, bool) {
	a, ok := c.Get(AccountKey).(*domain.Account)
	return a, ok && a != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
