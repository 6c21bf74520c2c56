package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/marketplace/marketplace-api/internal/api/metrics"
	"github.com/marketplace/marketplace-api/internal/core/domain"
)

const StageAuthorize = "authorize"

// Authorize is the role gate. It must run after Authenticate; a request
// without an attached account is treated as forbidden.
func Authorize(allowedRoles ...string) Stage {
	return Stage{
		Name: StageAuthorize,
		Run: func(c echo.Context) error {
			if account, ok := CurrentAccount(c); ok && account.HasRole(allowedRoles...) {
				return nil
			}
			metrics.GateRejectionsTotal.WithLabelValues(StageAuthorize, "forbidden").Inc()
			return domain.ErrForbidden
		},
	}
}

// RBAC wraps Authorize as a standalone middleware.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return Pipeline(Authorize(allowedRoles...))
}
