// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/finance/payments/controller"
)

func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPaymentController(db)

	payments := r.Group("/payments")
	payments.Post("/", ctl.Create)
	payments.Get("/", ctl.List)
	payments.Get("/:id", ctl.GetByID)
}

// PaymentUserRoutes: checkout is available to any authenticated member
// of the center, not just finance staff.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewMidtransController(db)

	r.Post("/invoices/:id/checkout", ctl.Checkout)
}

// PaymentWebhookRoutes: public, signature-verified.
func PaymentWebhookRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewMidtransController(db)

	r.Post("/payments/midtrans/webhook", ctl.Webhook)
}
