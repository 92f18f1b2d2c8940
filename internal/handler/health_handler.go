package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/dukalink/duka_api/internal/cache"
	"github.com/dukalink/duka_api/internal/utils"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	db    *sqlx.DB
	redis *cache.RedisClient
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if h.redis == nil {
		redisStatus = "disabled"
	} else if err := h.redis.Ping(ctx); err != nil {
		redisStatus = "down"
	}

	code := 200
	if dbStatus != "ok" {
		code = 503
	}

	utils.Success(c, code, "Health checked", gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
