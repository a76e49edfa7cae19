package rest

import (
	"context"
	"net/http"
	"time"
)

// Health statuses
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	CheckUp         = "up"
	CheckDown       = "down"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BuildVersion is reported by both health endpoints.
type BuildVersion string

// HealthChecks names the dependencies checked by the readiness probe.
type HealthChecks map[string]Pinger

// HealthStatus is the body of both health endpoints.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	*BaseHandler
	version string
	checks  HealthChecks
}

func NewHealthHandler(base *BaseHandler, version BuildVersion, checks HealthChecks) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     string(version),
		checks:      checks,
	}
}

// GetLiveness implements the liveness probe endpoint
// This is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Version:   h.version,
	}, http.StatusOK)
}

// GetReadiness implements the readiness probe endpoint
// It pings the content store and the page cache
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	status := StatusHealthy
	httpStatus := http.StatusOK
	results := make(map[string]string, len(h.checks))

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, dep := range h.checks {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Warn(ctx, "readiness check failed", "check", name, "error", err)
			results[name] = CheckDown
			status = StatusUnhealthy
			httpStatus = http.StatusServiceUnavailable
			continue
		}
		results[name] = CheckUp
	}

	h.WriteJSONResponse(w, r, HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.version,
		Checks:    results,
	}, httpStatus)
}
