package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/database"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

const (
	statusUp       = "up"
	statusDown     = "down"
	statusDisabled = "disabled"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler takes a nil redis client when Redis is not configured.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health answers 503 only when the database is unreachable. Redis is optional.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := types.HealthStatus{Database: statusUp, Redis: statusDisabled}
	if err := database.HealthCheck(ctx, h.db); err != nil {
		status.Database = statusDown
	}
	if h.redis != nil {
		status.Redis = statusUp
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status.Redis = statusDown
		}
	}

	if status.Database != statusUp {
		c.JSON(http.StatusServiceUnavailable, types.Response{Success: false, Data: status, Error: "database unavailable"})
		return
	}
	respondOK(c, http.StatusOK, status)
}
