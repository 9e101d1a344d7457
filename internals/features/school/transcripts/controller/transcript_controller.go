// file: internals/features/school/transcripts/controller/transcript_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "schoolpay_backend/internals/helpers"
	authMw "schoolpay_backend/internals/middlewares/auth"

	"schoolpay_backend/internals/features/school/transcripts/dto"
	"schoolpay_backend/internals/features/school/transcripts/model"
)

type TranscriptController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTranscriptController(db *gorm.DB) *TranscriptController {
	return &TranscriptController{DB: db, Validator: validator.New()}
}

/* =======================================================================
   Student
======================================================================= */

// GET /api/u/transcripts — request transcript milik student ybs
func (h *TranscriptController) MyRequests(c *fiber.Ctx) error {
	studentID, err := authMw.StudentIDFromLocals(c)
	if err != nil {
		return err
	}
	var rows []model.TranscriptRequest
	if err := h.DB.WithContext(c.UserContext()).
		Where("transcript_request_student_id = ?", studentID).
		Order("transcript_request_requested_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

/* =======================================================================
   Admin — review
======================================================================= */

// GET /api/a/transcripts?status=pending_review
func (h *TranscriptController) ListRequests(c *fiber.Ctx) error {
	tx := h.DB.WithContext(c.UserContext()).Model(&model.TranscriptRequest{})
	if status := c.Query("status"); status != "" {
		switch status {
		case model.TranscriptStatusPendingReview,
			model.TranscriptStatusApproved,
			model.TranscriptStatusRejected:
			tx = tx.Where("transcript_request_status = ?", status)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown transcript status")
		}
	}
	var rows []model.TranscriptRequest
	if err := tx.
		Order("transcript_request_requested_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// POST /api/a/transcripts/:id/approve
func (h *TranscriptController) Approve(c *fiber.Ctx) error {
	return h.review(c, model.TranscriptStatusApproved, "Transcript request approved")
}

// POST /api/a/transcripts/:id/reject
func (h *TranscriptController) Reject(c *fiber.Ctx) error {
	return h.review(c, model.TranscriptStatusRejected, "Transcript request rejected")
}

// review hanya boleh dari pending_review — hasil review final
func (h *TranscriptController) review(c *fiber.Ctx, status, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transcript request id")
	}

	var req dto.ReviewTranscriptRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
		}
		if err := h.Validator.Struct(req); err != nil {
			return helper.ValidationError(c, err)
		}
	}

	now := time.Now()
	updates := map[string]any{
		"transcript_request_status":      status,
		"transcript_request_reviewed_at": now,
	}
	if req.Notes != nil {
		updates["transcript_request_notes"] = *req.Notes
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.TranscriptRequest{}).
		Where("transcript_request_id = ? AND transcript_request_status = ?",
			id, model.TranscriptStatusPendingReview).
		Updates(updates)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		var existing model.TranscriptRequest
		if err := h.DB.WithContext(c.UserContext()).
			First(&existing, "transcript_request_id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transcript request not found")
		}
		return fiber.NewError(fiber.StatusBadRequest,
			"Transcript request already "+existing.TranscriptRequestStatus)
	}
	return helper.Success(c, message, nil)
}
