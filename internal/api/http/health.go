package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check is a named dependency probe, e.g. a database or Redis ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	checks      []Check
}

func NewHealthHandler(serviceName, version string, checks ...Check) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks:      checks,
	}
}

// HealthCheck always answers 200 while the process serves; a failing
// dependency is reported as "down" and the status as "degraded".
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	var deps map[string]string
	if len(h.checks) > 0 {
		deps = make(map[string]string, len(h.checks))
	}
	for _, chk := range h.checks {
		if chk.Ping == nil {
			deps[chk.Name] = "disabled"
			continue
		}
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		err := chk.Ping(pingCtx)
		cancel()
		if err != nil {
			deps[chk.Name] = "down"
			status = "degraded"
		} else {
			deps[chk.Name] = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Service:      h.serviceName,
		Version:      h.version,
		Dependencies: deps,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
