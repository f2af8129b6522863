// file: internals/features/finance/assignments/route/assignment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/finance/assignments/controller"
)

func AssignmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAssignmentController(db)

	r.Post("/fee-structures/:id/apply", ctl.ApplyStructure)
	r.Get("/students/:id/assignments", ctl.ListByStudent)
}
