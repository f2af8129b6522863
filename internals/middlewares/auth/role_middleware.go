// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "bimbelku_backend/internals/helpers/auth"
)

// RequireRoles guards a route group: the caller must hold at least one
// of the given roles.
func RequireRoles(message string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cc, err := helperAuth.ResolveCaller(c)
		if err != nil {
			return err
		}
		if !cc.HasAnyRole(roles...) {
			return fiber.NewError(fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}
