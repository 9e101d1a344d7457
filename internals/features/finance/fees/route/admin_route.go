// file: internals/features/finance/fees/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "schoolpay_backend/internals/features/finance/fees/controller"
)

// Mount: FeeAdminRoutes(app.Group("/api/a", ...auth+role), db)
func FeeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := feeController.NewFeeController(db)

	fees := r.Group("/fees")
	fees.Get("/", ctl.ListFees)
	fees.Post("/", ctl.CreateFee)
	fees.Patch("/:id/close", ctl.CloseFee)
}
