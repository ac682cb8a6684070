package auth

import (
	"errors"

	"agile-exchange-backend/internal/middleware"
	"agile-exchange-backend/internal/models"
	"agile-exchange-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder UserFinder
	DB         *gorm.DB
	Rdb        *redis.Client
}

// Login POST /api/auth/login — verify credentials, issue a bearer token,
// return {token, user}.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Internal(c)
	}
	var req LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, ErrEmailPasswordRequired.Error())
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, ErrEmailPasswordRequired.Error())
	}

	user, err := h.UserFinder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailPasswordRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, ErrInvalidCredentials):
			return response.Unauthorized(c, err.Error())
		default:
			log.Error().Err(err).Str("path", "/auth/login").Msg("login failed")
			return response.Internal(c)
		}
	}

	return h.issueAndRespond(c, user, fiber.StatusOK)
}

// Register POST /api/auth/register — create an account and log it in.
func (h *Handlers) Register(c *fiber.Ctx) error {
	if h.DB == nil {
		return response.Internal(c)
	}
	var req RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, ErrEmailPasswordRequired.Error())
	}

	user, err := RegisterUser(h.DB, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailPasswordRequired),
			errors.Is(err, ErrInvalidEmail),
			errors.Is(err, ErrWeakPassword),
			errors.Is(err, ErrInvalidRole):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, ErrEmailTaken):
			return response.Error(c, fiber.StatusConflict, "conflict", err.Error())
		default:
			log.Error().Err(err).Str("path", "/auth/register").Msg("register failed")
			return response.Internal(c)
		}
	}

	return h.issueAndRespond(c, user, fiber.StatusCreated)
}

// Logout DELETE /api/auth/logout — revoke the current bearer token.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	token := middleware.GetToken(c)
	if token != "" {
		if err := middleware.RevokeToken(c.Context(), h.Rdb, token); err != nil {
			log.Error().Err(err).Msg("token revoke failed")
			return response.Internal(c)
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me GET /api/auth/me — return the authenticated user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *Handlers) issueAndRespond(c *fiber.Ctx, user *models.User, status int) error {
	token, err := middleware.IssueToken(c.Context(), h.Rdb, middleware.AuthUser{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	})
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		return response.Internal(c)
	}
	return c.Status(status).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
