package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/contentflow/internal/domain"
)

// GenerationLister reads the generation log.
type GenerationLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.GenerationLog, error)
	CountByStatus(ctx context.Context) (map[domain.GenerationStatus]int64, error)
}

// GenerationsHandler serves the generation log.
type GenerationsHandler struct {
	lister GenerationLister
}

// NewGenerationsHandler creates a new generations handler. lister may be nil
// when the database is disabled.
func NewGenerationsHandler(lister GenerationLister) *GenerationsHandler {
	return &GenerationsHandler{lister: lister}
}

// List handles GET /api/v1/generations.
func (h *GenerationsHandler) List(c *gin.Context) {
	if h.lister == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Generation log is disabled",
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query parameter 'limit' must be a non-negative integer",
			})
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	logs, err := h.lister.ListRecent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list generations: " + err.Error(),
		})
		return
	}
	counts, err := h.lister.CountByStatus(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count generations: " + err.Error(),
		})
		return
	}

	if logs == nil {
		logs = []domain.GenerationLog{}
	}
	c.JSON(http.StatusOK, gin.H{
		"generations": logs,
		"total":       len(logs),
		"counts":      counts,
	})
}
