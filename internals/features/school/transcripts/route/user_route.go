// file: internals/features/school/transcripts/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	transcriptController "schoolpay_backend/internals/features/school/transcripts/controller"
)

// Mount: TranscriptUserRoutes(app.Group("/api/u", ...auth), db)
func TranscriptUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := transcriptController.NewTranscriptController(db)
	r.Get("/transcripts", ctl.MyRequests)
}
