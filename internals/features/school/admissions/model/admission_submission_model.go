// file: internals/features/school/admissions/model/admission_submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Enums (string) ===================== */

const (
	AdmissionSubmissionStatusSubmitted = "submitted"
	AdmissionSubmissionStatusAccepted  = "accepted"
	AdmissionSubmissionStatusRejected  = "rejected"
)

/*
  admission_form_submissions = FINALIZED RECORD domain admission.
  Lahir maksimal sekali per intent, hanya setelah pembayaran
  formulir tervalidasi gateway.
*/

type AdmissionFormSubmission struct {
	AdmissionSubmissionID uuid.UUID `gorm:"column:admission_submission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"admission_submission_id"`

	AdmissionSubmissionStudentID uuid.UUID `gorm:"column:admission_submission_student_id;type:uuid;not null" json:"admission_submission_student_id"`

	AdmissionSubmissionIntentID uuid.UUID `gorm:"column:admission_submission_intent_id;type:uuid;not null;uniqueIndex:uq_admission_submission_intent_id" json:"admission_submission_intent_id"`
	AdmissionSubmissionTranID   string    `gorm:"column:admission_submission_tran_id;size:64;not null" json:"admission_submission_tran_id"`

	AdmissionSubmissionStatus string `gorm:"column:admission_submission_status;type:admission_submission_status;not null;default:'submitted'" json:"admission_submission_status"`

	AdmissionSubmissionSubmittedAt time.Time `gorm:"column:admission_submission_submitted_at;not null" json:"admission_submission_submitted_at"`

	CreatedAt time.Time `gorm:"column:admission_submission_created_at;autoCreateTime" json:"admission_submission_created_at"`
	UpdatedAt time.Time `gorm:"column:admission_submission_updated_at;autoUpdateTime" json:"admission_submission_updated_at"`
}

func (AdmissionFormSubmission) TableName() string { return "admission_form_submissions" }
