package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/marketplace-api/internal/core/ports"
)

type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// UpdateProfile applies a partial update to the caller's account.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{data=profileResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, err := currentAccount(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accounts.UpdateProfile(c.Request().Context(), caller.ID, toUpdateProfileInput(req))
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "User profile updated successfully", profileResponse{
		User: toAccountResponse(account),
	})
}

// DeleteProfile removes the caller's account.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/users/profile [delete]
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	caller, err := currentAccount(c)
	if err != nil {
		return err
	}

	if err := h.accounts.DeleteProfile(c.Request().Context(), caller.ID); err != nil {
		return err
	}

	return success(c, http.StatusOK, "User account deleted successfully", nil)
}

// List returns every account. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=accountListResponse}
// @Failure      401  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	accounts, err := h.accounts.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Users retrieved successfully", toAccountListResponse(accounts))
}
