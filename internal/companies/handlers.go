package companies

import (
	"errors"

	"agile-exchange-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers bundles company handlers.
type Handlers struct {
	Service *Service
}

// List GET /api/companies
func (h *Handlers) List(c *fiber.Ctx) error {
	companies, err := h.Service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("list companies failed")
		return response.Internal(c)
	}
	return c.JSON(companies)
}

// Create POST /api/companies
func (h *Handlers) Create(c *fiber.Ctx) error {
	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, ErrNamePriceNeeded.Error())
	}
	company, err := h.Service.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, ErrNamePriceNeeded) {
			return response.BadRequest(c, err.Error())
		}
		log.Error().Err(err).Msg("create company failed")
		return response.Internal(c)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// Update PUT /api/companies/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid company ID")
	}
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	company, err := h.Service.Update(c.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrCompanyNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrNamePriceNeeded):
			return response.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Msg("update company failed")
			return response.Internal(c)
		}
	}
	return c.JSON(company)
}

// Delete DELETE /api/companies/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid company ID")
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Msg("delete company failed")
		return response.Internal(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
