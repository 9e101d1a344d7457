// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AdmissionRoute "schoolpay_backend/internals/features/school/admissions/route"
	TranscriptRoute "schoolpay_backend/internals/features/school/transcripts/route"
)

func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	TranscriptRoute.TranscriptUserRoutes(r, db)
	AdmissionRoute.AdmissionUserRoutes(r, db)
}

func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	TranscriptRoute.TranscriptAdminRoutes(r, db)
	AdmissionRoute.AdmissionAdminRoutes(r, db)
}
