// file: internals/features/finance/fee_catalog/route/fee_catalog_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/finance/fee_catalog/controller"
)

// FeeCatalogAdminRoutes mounts the catalog endpoints under the staff
// group (auth + role guard applied by the caller).
func FeeCatalogAdminRoutes(r fiber.Router, db *gorm.DB) {
	headingCtl := controller.NewFeeHeadingController(db)
	structureCtl := controller.NewFeeStructureController(db)

	headings := r.Group("/fee-headings")
	headings.Post("/", headingCtl.Create)
	headings.Get("/", headingCtl.List)
	headings.Put("/:id", headingCtl.Update)
	headings.Delete("/:id", headingCtl.Delete)

	structures := r.Group("/fee-structures")
	structures.Post("/", structureCtl.Create)
	structures.Get("/", structureCtl.List)
	structures.Get("/:id", structureCtl.GetByID)
	structures.Delete("/:id", structureCtl.Delete)
}
