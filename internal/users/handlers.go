package users

import (
	"errors"

	"agile-exchange-backend/internal/auth"
	"agile-exchange-backend/internal/middleware"
	"agile-exchange-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers bundles user management handlers.
type Handlers struct {
	Service *Service
}

// List GET /api/users
func (h *Handlers) List(c *fiber.Ctx) error {
	users, err := h.Service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("list users failed")
		return response.Internal(c)
	}
	return c.JSON(users)
}

// Create POST /api/users
func (h *Handlers) Create(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, auth.ErrEmailPasswordRequired.Error())
	}
	user, err := h.Service.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailPasswordRequired),
			errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrInvalidRole):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			return response.Error(c, fiber.StatusConflict, "conflict", err.Error())
		default:
			log.Error().Err(err).Msg("create user failed")
			return response.Internal(c)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Remove DELETE /api/users/:id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	actor := middleware.GetUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return response.Internal(c)
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.Service.Remove(c.Context(), actorID, targetID); err != nil {
		switch {
		case errors.Is(err, ErrSelfRemoval):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, ErrUserNotFound):
			return response.NotFound(c, err.Error())
		default:
			log.Error().Err(err).Msg("remove user failed")
			return response.Internal(c)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateProfile PUT /api/users/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	actor := middleware.GetUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return response.Internal(c)
	}
	var input ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.Service.UpdateProfile(c.Context(), actorID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrNothingToSave), errors.Is(err, auth.ErrInvalidEmail):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			return response.Error(c, fiber.StatusConflict, "conflict", err.Error())
		case errors.Is(err, ErrUserNotFound):
			return response.NotFound(c, err.Error())
		default:
			log.Error().Err(err).Msg("update profile failed")
			return response.Internal(c)
		}
	}
	return c.JSON(user)
}
