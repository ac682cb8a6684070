package middleware

import (
	"agile-exchange-backend/internal/constants"
	"agile-exchange-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission checks the authenticated user's role against
// constants.PermissionRoles. Unconfigured permission -> 500; role not
// allowed -> 403.
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		roles, ok := constants.PermissionRoles[permission]
		if !ok || len(roles) == 0 {
			return response.Error(c, fiber.StatusInternalServerError, "internal_error", "Permission configuration error")
		}
		if !constants.AllowedRole(permission, user.Role) {
			return response.Forbidden(c, "User is forbidden from performing this action")
		}
		return c.Next()
	}
}
