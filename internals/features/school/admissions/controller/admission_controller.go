// file: internals/features/school/admissions/controller/admission_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "schoolpay_backend/internals/helpers"
	authMw "schoolpay_backend/internals/middlewares/auth"

	"schoolpay_backend/internals/features/school/admissions/model"
)

type AdmissionController struct {
	DB *gorm.DB
}

func NewAdmissionController(db *gorm.DB) *AdmissionController {
	return &AdmissionController{DB: db}
}

// GET /api/u/admissions — submission formulir milik student ybs
func (h *AdmissionController) MySubmissions(c *fiber.Ctx) error {
	studentID, err := authMw.StudentIDFromLocals(c)
	if err != nil {
		return err
	}
	var rows []model.AdmissionFormSubmission
	if err := h.DB.WithContext(c.UserContext()).
		Where("admission_submission_student_id = ?", studentID).
		Order("admission_submission_submitted_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// GET /api/a/admissions — semua submission (admin)
func (h *AdmissionController) ListSubmissions(c *fiber.Ctx) error {
	tx := h.DB.WithContext(c.UserContext()).Model(&model.AdmissionFormSubmission{})
	if status := c.Query("status"); status != "" {
		tx = tx.Where("admission_submission_status = ?", status)
	}
	var rows []model.AdmissionFormSubmission
	if err := tx.
		Order("admission_submission_submitted_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}
