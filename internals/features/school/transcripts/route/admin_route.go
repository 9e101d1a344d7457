// file: internals/features/school/transcripts/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	transcriptController "schoolpay_backend/internals/features/school/transcripts/controller"
)

// Mount: TranscriptAdminRoutes(app.Group("/api/a", ...auth+role), db)
func TranscriptAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := transcriptController.NewTranscriptController(db)

	transcripts := r.Group("/transcripts")
	transcripts.Get("/", ctl.ListRequests)
	transcripts.Post("/:id/approve", ctl.Approve)
	transcripts.Post("/:id/reject", ctl.Reject)
}
