package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error JSON shape the dashboard reads: it prefers
// error.message, falling back to error.error.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error sends an error response with the standard shape.
func Error(c *fiber.Ctx, statusCode int, errName, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Error:   errName,
		Message: message,
	})
}

// BadRequest sends 400 with error name "invalid_input".
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, "invalid_input", message)
}

// Unauthorized sends 401. Used by the auth middleware so all auth failures
// look the same to the client.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "unauthorized", message)
}

// Forbidden sends 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, "forbidden", message)
}

// NotFound sends 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, "not_found", message)
}

// Internal sends 500 with a generic message (details stay in the logs).
func Internal(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, "internal_error", "Internal Server Error")
}
