package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/marketplace/marketplace-api/internal/api/middleware"
	"github.com/marketplace/marketplace-api/internal/core/domain"
)

// currentAccount returns the identity attached by the auth gate. Routes that
// call it are always mounted behind the gate, so a miss means the gate was
// skipped and is reported as unauthenticated.
func currentAccount(c echo.Context) (*domain.Account, error) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return account, nil
}
