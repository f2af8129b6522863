// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/users/auth/controller"
	"bimbelku_backend/internals/middlewares"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// AuthPublicRoutes: login/refresh sit outside the auth middleware;
// login additionally gets the tighter rate limit.
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	r.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	r.Post("/refresh", ctl.Refresh)
}

// AuthAdminRoutes: creating accounts is tighter than the surrounding
// staff area, so the route carries its own admin guard.
func AuthAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	r.Post("/users",
		authMw.RequireRoles(constants.RoleErrorAdmin("user management"), constants.AdminAndAbove...),
		ctl.Register)
}

func AuthUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	r.Get("/me", ctl.Me)
}
