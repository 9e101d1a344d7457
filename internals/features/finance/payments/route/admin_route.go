// file: internals/features/finance/payments/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "schoolpay_backend/internals/features/finance/payments/controller"
)

/*
Admin routes: monitoring intent & event log.
Mount: PaymentAdminRoutes(app.Group("/api/a", ...auth+role), db)
*/
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentController.NewPaymentsAdminController(db)

	payments := r.Group("/payments")
	payments.Get("/", ctl.ListIntents)
	// /events harus di atas /:tran_id biar nggak ketangkep param
	payments.Get("/events", ctl.ListGatewayEvents)
	payments.Get("/:tran_id", ctl.GetIntentByTranID)
}
