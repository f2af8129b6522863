// file: internals/features/finance/ledger/route/ledger_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/finance/ledger/controller"
)

func LedgerAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewLedgerController(db)

	expenses := r.Group("/expenses")
	expenses.Post("/", ctl.CreateExpense)
	expenses.Get("/", ctl.ListExpenses)

	r.Get("/ledger", ctl.ListEntries)
}
