package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-favorites/pkg/response"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// Health runs every check with a shared 2s budget and answers 503 if any fails.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	if status != http.StatusOK {
		response.Error(c, status, "Unhealthy", results)
		return
	}
	response.Success(c, status, results, "Healthy", nil)
}
