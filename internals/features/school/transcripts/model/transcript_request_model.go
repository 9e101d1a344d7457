// file: internals/features/school/transcripts/model/transcript_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Enums (string) ===================== */

const (
	TranscriptStatusPendingReview = "pending_review"
	TranscriptStatusApproved      = "approved"
	TranscriptStatusRejected      = "rejected"
)

/*
  transcript_requests = FINALIZED RECORD domain transcript.
  - Dibuat maksimal sekali per intent saat pembayaran tervalidasi.
  - Review admin (approve/reject) jalan SETELAH record ada.
*/

type TranscriptRequest struct {
	TranscriptRequestID uuid.UUID `gorm:"column:transcript_request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"transcript_request_id"`

	TranscriptRequestStudentID uuid.UUID `gorm:"column:transcript_request_student_id;type:uuid;not null" json:"transcript_request_student_id"`

	TranscriptRequestIntentID uuid.UUID `gorm:"column:transcript_request_intent_id;type:uuid;not null;uniqueIndex:uq_transcript_request_intent_id" json:"transcript_request_intent_id"`
	TranscriptRequestTranID   string    `gorm:"column:transcript_request_tran_id;size:64;not null" json:"transcript_request_tran_id"`

	TranscriptRequestStatus string  `gorm:"column:transcript_request_status;type:transcript_request_status;not null;default:'pending_review'" json:"transcript_request_status"`
	TranscriptRequestNotes  *string `gorm:"column:transcript_request_notes" json:"transcript_request_notes,omitempty"`

	TranscriptRequestRequestedAt time.Time  `gorm:"column:transcript_request_requested_at;not null" json:"transcript_request_requested_at"`
	TranscriptRequestReviewedAt  *time.Time `gorm:"column:transcript_request_reviewed_at" json:"transcript_request_reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:transcript_request_created_at;autoCreateTime" json:"transcript_request_created_at"`
	UpdatedAt time.Time `gorm:"column:transcript_request_updated_at;autoUpdateTime" json:"transcript_request_updated_at"`
}

func (TranscriptRequest) TableName() string { return "transcript_requests" }
