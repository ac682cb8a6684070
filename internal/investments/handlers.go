package investments

import (
	"errors"

	"agile-exchange-backend/internal/budget"
	"agile-exchange-backend/internal/middleware"
	"agile-exchange-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers bundles investment handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	CompanyID string  `json:"company_id"`
	Amount    float64 `json:"amount"`
}

// Create POST /api/investments
func (h *Handlers) Create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return response.Internal(c)
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "company_id and amount are required")
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return response.BadRequest(c, "Invalid company ID")
	}

	inv, err := h.Service.Invest(c.Context(), userID, companyID, req.Amount)
	if err != nil {
		var exceeded *BudgetExceededError
		switch {
		case errors.As(err, &exceeded):
			return response.BadRequest(c, exceeded.Error())
		case errors.Is(err, budget.ErrInvalidAmount), errors.Is(err, budget.ErrInvalidPrice):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, ErrCompanyNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrSubmissionInFlight):
			return response.Error(c, fiber.StatusConflict, "conflict", err.Error())
		case errors.Is(err, budget.ErrLedgerCorrupt):
			log.Error().Err(err).Str("user_id", user.ID).Msg("ledger over ceiling")
			return response.Internal(c)
		default:
			log.Error().Err(err).Msg("invest failed")
			return response.Internal(c)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// Portfolio GET /api/investments/portfolio
func (h *Handlers) Portfolio(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return response.Internal(c)
	}
	items, err := h.Service.Portfolio(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("portfolio fetch failed")
		return response.Internal(c)
	}
	return c.JSON(items)
}

// Chart GET /api/investments/portfolio/chart
func (h *Handlers) Chart(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return response.Internal(c)
	}
	view, err := h.Service.Chart(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("chart build failed")
		return response.Internal(c)
	}
	return c.JSON(view)
}

// Analytics GET /api/investments/analytics
func (h *Handlers) Analytics(c *fiber.Ctx) error {
	overview, err := h.Service.Analytics(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("analytics failed")
		return response.Internal(c)
	}
	return c.JSON(fiber.Map{"overview": overview})
}

// TeamOverview GET /api/investments/team-overview
func (h *Handlers) TeamOverview(c *fiber.Ctx) error {
	stats, err := h.Service.TeamOverview(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("team overview failed")
		return response.Internal(c)
	}
	return c.JSON(fiber.Map{"teamOverview": stats})
}
