package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	check func(ctx context.Context) error
}

// NewHealthHandler constructs HealthHandler from a connectivity probe.
func NewHealthHandler(check func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{check: check}
}

// Get handles GET /.
func (h *HealthHandler) Get(c *gin.Context) {
	if err := h.check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "service": "Order API"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": "Order API"})
}
