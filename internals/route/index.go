// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	assignmentRoute "bimbelku_backend/internals/features/finance/assignments/route"
	feeCatalogRoute "bimbelku_backend/internals/features/finance/fee_catalog/route"
	invoiceRoute "bimbelku_backend/internals/features/finance/invoices/route"
	ledgerRoute "bimbelku_backend/internals/features/finance/ledger/route"
	paymentRoute "bimbelku_backend/internals/features/finance/payments/route"
	centerRoute "bimbelku_backend/internals/features/school/centers/route"
	studentRoute "bimbelku_backend/internals/features/school/students/route"
	authRoute "bimbelku_backend/internals/features/users/auth/route"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// SetupRoutes mounts everything under /api:
//
//	/api          public: login, refresh, gateway webhook
//	/api/a        staff area (finance + operations)
//	/api/u        any authenticated center member
//	/api/o        owner-only platform administration
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// public
	authRoute.AuthPublicRoutes(api, db)
	paymentRoute.PaymentWebhookRoutes(api, db)

	// staff area
	admin := api.Group("/a",
		authMw.AuthMiddleware(),
		authMw.RequireRoles(
			constants.RoleErrorStaff("this area"),
			constants.FinanceReaders...,
		),
	)
	feeCatalogRoute.FeeCatalogAdminRoutes(admin, db)
	assignmentRoute.AssignmentAdminRoutes(admin, db)
	invoiceRoute.InvoiceAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
	ledgerRoute.LedgerAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
	authRoute.AuthAdminRoutes(admin, db)

	// authenticated members
	user := api.Group("/u", authMw.AuthMiddleware())
	authRoute.AuthUserRoutes(user, db)
	paymentRoute.PaymentUserRoutes(user, db)

	// owner
	owner := api.Group("/o",
		authMw.AuthMiddleware(),
		authMw.RequireRoles(
			constants.RoleErrorOwner("platform administration"),
			constants.RoleOwner,
		),
	)
	centerRoute.CenterOwnerRoutes(owner, db)
}
