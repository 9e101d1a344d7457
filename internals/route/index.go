// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"
	authMiddleware "schoolpay_backend/internals/middlewares/auth"

	routeDetails "schoolpay_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, sslCfg configs.SSLCommerzConfig) {
	// ===================== PUBLIC (gateway callbacks) =====================
	log.Println("[INFO] Setting up PUBLIC group (gateway callbacks)...")
	public := app.Group("/api")

	// ===================== STUDENT =====================
	log.Println("[INFO] Setting up STUDENT group...")
	student := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireRole("student"),
	)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireRole("admin"),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinancePublicRoutes(public, db, sslCfg)
	routeDetails.FinanceUserRoutes(student, db, sslCfg)
	routeDetails.FinanceAdminRoutes(admin, db)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolUserRoutes(student, db)
	routeDetails.SchoolAdminRoutes(admin, db)
}
