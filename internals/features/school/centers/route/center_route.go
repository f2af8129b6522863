// file: internals/features/school/centers/route/center_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/school/centers/controller"
)

func CenterOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCenterController(db)

	centers := r.Group("/centers")
	centers.Post("/", ctl.Create)
	centers.Get("/", ctl.List)
	centers.Put("/:id", ctl.Update)
}
