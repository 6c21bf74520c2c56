package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/marketplace-api/internal/api/metrics"
	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	accounts ports.AccountService
}

func NewAuthHandler(accounts ports.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register creates a new account and returns it with a bearer token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  Envelope{data=authResponse}
// @Failure      400   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.accounts.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		} else {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		}
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	return success(c, http.StatusCreated, "User registered successfully", authResponse{
		User:  toAccountResponse(result.Account),
		Token: result.Token,
	})
}

// Login exchanges credentials for a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Envelope{data=authResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		} else {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		}
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	return success(c, http.StatusOK, "Login successful", authResponse{
		User:  toAccountResponse(result.Account),
		Token: result.Token,
	})
}

// Profile returns the caller's account.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=profileResponse}
// @Failure      401  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	caller, err := currentAccount(c)
	if err != nil {
		return err
	}

	account, err := h.accounts.GetProfile(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "User profile retrieved successfully", profileResponse{
		User: toAccountResponse(account),
	})
}
