package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HealthHandler handles GET /health, the liveness check. It returns 200
// immediately and never touches a dependency.
type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

type livenessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Liveness reports that the process is up.
//
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  livenessResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: h.now().UTC().Format(timestampLayout),
	})
}

type welcomeResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Welcome is served at the root path.
func (h *HealthHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{
		Success: true,
		Message: "Welcome to Online Marketplace API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"auth":     "/api/auth",
			"users":    "/api/users",
			"products": "/api/products",
			"health":   "/health",
			"docs":     "/swagger/index.html",
		},
	})
}

// DependencyCheck is one named readiness check, e.g. a database ping.
type DependencyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// ReadinessHandler handles GET /health/ready and checks every configured
// dependency before declaring the service ready. Failure causes go to the
// log only; the response carries the per-dependency status.
type ReadinessHandler struct {
	checks  []DependencyCheck
	timeout time.Duration
	log     zerolog.Logger
}

func NewReadinessHandler(log zerolog.Logger, checks ...DependencyCheck) *ReadinessHandler {
	return &ReadinessHandler{checks: checks, timeout: 3 * time.Second, log: log}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness pings each dependency.
//
// @Summary      Readiness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", check.Name).Msg("readiness check failed")
			deps[check.Name] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			continue
		}
		deps[check.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
