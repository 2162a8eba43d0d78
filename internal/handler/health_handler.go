package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/milkfamily/trace_api/internal/cache"
	"github.com/milkfamily/trace_api/pkg/ledger"
)

var startTime = time.Now()

// HealthHandler reports reachability of the stores the verify flow depends
// on. The ledger entry matters most: verify silently degrades when it is
// down, this endpoint is where that becomes visible.
type HealthHandler struct {
	db     *sqlx.DB
	redis  *cache.RedisClient
	ledger *ledger.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient, ledger *ledger.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, ledger: ledger}
}

// GetHealth responds with per-component status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := gin.H{
		"database": componentStatus(h.db.PingContext(ctx)),
		"redis":    componentStatus(h.redis.Ping(ctx)),
		"ledger":   componentStatus(h.ledger.Ping(ctx)),
	}

	c.JSON(200, gin.H{
		"status":     "healthy",
		"version":    "1.0.0",
		"uptime":     int(time.Since(startTime).Seconds()),
		"components": components,
	})
}

func componentStatus(err error) string {
	if err != nil {
		return "disconnected"
	}
	return "connected"
}
