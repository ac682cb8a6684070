package sprint

import (
	"fmt"

	"agile-exchange-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers bundles sprint handlers.
type Handlers struct {
	Service *Service
}

// End POST /api/sprint/end
func (h *Handlers) End(c *fiber.Ctx) error {
	record, err := h.Service.End(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("end sprint failed")
		return response.Internal(c)
	}
	log.Info().Int("sprint", record.Number).Msg("sprint ended, budgets reset")
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Sprint %d ended. All investments cleared and budgets reset.", record.Number),
		"success": true,
	})
}

// History GET /api/sprint/history
func (h *Handlers) History(c *fiber.Ctx) error {
	records, err := h.Service.History(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("sprint history failed")
		return response.Internal(c)
	}
	return c.JSON(records)
}
