// file: internals/features/finance/invoices/route/invoice_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/finance/invoices/controller"
)

func InvoiceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewInvoiceController(db)

	invoices := r.Group("/invoices")
	invoices.Post("/generate", ctl.Generate)
	invoices.Get("/outstanding", ctl.Outstanding)
	invoices.Get("/", ctl.List)
	// keep after /outstanding so the static segment wins
	invoices.Get("/:id", ctl.GetByID)
}
