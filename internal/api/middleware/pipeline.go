package middleware

import (
	"github.com/labstack/echo/v4"
)

// Stage is one named step of a request pipeline. Run returns nil to let the
// request continue (optionally after enriching the context) or an error to
// short-circuit it. Stages never call the next handler themselves.
type Stage struct {
	Name string
	Run  func(c echo.Context) error
}

// Pipeline composes stages into a single echo middleware. Stages run in the
// order given; the first error stops the request and is handed to the
// HTTP error handler.
func Pipeline(stages ...Stage) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, s := range stages {
				if err := s.Run(c); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}
