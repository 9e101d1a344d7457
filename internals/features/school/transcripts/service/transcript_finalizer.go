// file: internals/features/school/transcripts/service/transcript_finalizer.go
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"schoolpay_backend/internals/features/school/transcripts/model"
	paymentModel "schoolpay_backend/internals/features/finance/payments/model"
	paymentSvc "schoolpay_backend/internals/features/finance/payments/service"
)

// TranscriptFinalizer: materialisasi TranscriptRequest (pending_review)
// saat intent paid. Idempotent keyed by intent.
type TranscriptFinalizer struct{}

func (TranscriptFinalizer) Domain() string { return paymentModel.PaymentDomainTranscript }

func (TranscriptFinalizer) Finalize(tx *gorm.DB, intent *paymentModel.PaymentIntent) error {
	var existing model.TranscriptRequest
	err := tx.First(&existing, "transcript_request_intent_id = ?", intent.PaymentIntentID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	requestedAt := time.Now()
	if intent.PaymentIntentPaidAt != nil {
		requestedAt = *intent.PaymentIntentPaidAt
	}

	rec := model.TranscriptRequest{
		TranscriptRequestStudentID:   intent.PaymentIntentStudentID,
		TranscriptRequestIntentID:    intent.PaymentIntentID,
		TranscriptRequestTranID:      intent.PaymentIntentTranID,
		TranscriptRequestStatus:      model.TranscriptStatusPendingReview,
		TranscriptRequestRequestedAt: requestedAt,
	}
	if err := tx.Create(&rec).Error; err != nil {
		if paymentSvc.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}
