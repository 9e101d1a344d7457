// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"

	FeeRoute "schoolpay_backend/internals/features/finance/fees/route"
	PaymentRoute "schoolpay_backend/internals/features/finance/payments/route"
)

func FinancePublicRoutes(r fiber.Router, db *gorm.DB, sslCfg configs.SSLCommerzConfig) {
	PaymentRoute.PaymentCallbackRoutes(r, db, sslCfg)
}

func FinanceUserRoutes(r fiber.Router, db *gorm.DB, sslCfg configs.SSLCommerzConfig) {
	PaymentRoute.PaymentUserRoutes(r, db, sslCfg)
	FeeRoute.FeeUserRoutes(r, db)
}

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	PaymentRoute.PaymentAdminRoutes(r, db)
	FeeRoute.FeeAdminRoutes(r, db)
}
