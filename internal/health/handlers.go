package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers serves the health endpoint.
type Handlers struct {
	Rdb *redis.Client
	DB  *gorm.DB
}

// JSON GET /health
func (h *Handlers) JSON(c *fiber.Ctx) error {
	var pinger DBPinger
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil {
			pinger = sqlDB
		}
	}
	result := CollectHealth(c.Context(), h.Rdb, pinger)
	status := fiber.StatusOK
	if result.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
