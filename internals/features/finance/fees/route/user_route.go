// file: internals/features/finance/fees/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "schoolpay_backend/internals/features/finance/fees/controller"
)

// Mount: FeeUserRoutes(app.Group("/api/u", ...auth), db)
func FeeUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := feeController.NewFeeController(db)
	r.Get("/fees", ctl.MyFees)
}
