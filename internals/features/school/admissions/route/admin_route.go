// file: internals/features/school/admissions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	admissionController "schoolpay_backend/internals/features/school/admissions/controller"
)

// Mount: AdmissionAdminRoutes(app.Group("/api/a", ...auth+role), db)
func AdmissionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := admissionController.NewAdmissionController(db)
	r.Get("/admissions", ctl.ListSubmissions)
}
