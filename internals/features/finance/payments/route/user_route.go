// file: internals/features/finance/payments/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"
	"schoolpay_backend/internals/middlewares"

	paymentController "schoolpay_backend/internals/features/finance/payments/controller"
	paymentSvc "schoolpay_backend/internals/features/finance/payments/service"
)

/*
User routes: init payment per domain + riwayat sendiri.
Mount: PaymentUserRoutes(app.Group("/api/u", ...auth), db, sslCfg)
*/
func PaymentUserRoutes(r fiber.Router, db *gorm.DB, sslCfg configs.SSLCommerzConfig) {
	ctl := paymentController.NewPaymentIntentController(db,
		paymentSvc.NewSSLCommerzClient(sslCfg),
		paymentSvc.NewIntentStore(db),
	)

	initLimiter := middlewares.PaymentInitRateLimiter()

	r.Post("/fees/:id/pay", initLimiter, ctl.PayFee)
	r.Post("/transcripts/pay", initLimiter, ctl.PayTranscript)
	r.Post("/admissions/pay", initLimiter, ctl.PayAdmission)

	r.Get("/payments/me", ctl.MyPayments)
}
