// file: internals/features/finance/payments/route/all_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"

	feeSvc "schoolpay_backend/internals/features/finance/fees/service"
	paymentController "schoolpay_backend/internals/features/finance/payments/controller"
	paymentSvc "schoolpay_backend/internals/features/finance/payments/service"
	admissionSvc "schoolpay_backend/internals/features/school/admissions/service"
	transcriptSvc "schoolpay_backend/internals/features/school/transcripts/service"
)

/*
Callback routes: dipanggil SSLCommerz, tanpa auth.
Mount: PaymentCallbackRoutes(app.Group("/api"), db, sslCfg)
Final paths:
- POST     /api/payments/:domain/ipn
- GET|POST /api/payments/:domain/return
*/
func PaymentCallbackRoutes(r fiber.Router, db *gorm.DB, sslCfg configs.SSLCommerzConfig) {
	engine := paymentSvc.NewReconciliationEngine(
		paymentSvc.NewIntentStore(db),
		paymentSvc.NewSSLCommerzClient(sslCfg),
		feeSvc.FeeFinalizer{},
		admissionSvc.AdmissionFinalizer{},
		transcriptSvc.TranscriptFinalizer{},
	)
	ctl := paymentController.NewCallbackController(db, engine, configs.FrontendBaseURL)

	payments := r.Group("/payments")
	payments.Post("/:domain/ipn", ctl.HandleIPN)
	payments.Get("/:domain/return", ctl.HandleReturn)
	payments.Post("/:domain/return", ctl.HandleReturn)
}
