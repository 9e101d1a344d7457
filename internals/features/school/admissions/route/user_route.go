// file: internals/features/school/admissions/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	admissionController "schoolpay_backend/internals/features/school/admissions/controller"
)

// Mount: AdmissionUserRoutes(app.Group("/api/u", ...auth), db)
func AdmissionUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := admissionController.NewAdmissionController(db)
	r.Get("/admissions", ctl.MySubmissions)
}
