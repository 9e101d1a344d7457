// file: internals/features/school/admissions/service/admission_finalizer.go
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"schoolpay_backend/internals/features/school/admissions/model"
	paymentModel "schoolpay_backend/internals/features/finance/payments/model"
	paymentSvc "schoolpay_backend/internals/features/finance/payments/service"
)

// AdmissionFinalizer: materialisasi AdmissionFormSubmission saat intent paid.
// Idempotent keyed by intent.
type AdmissionFinalizer struct{}

func (AdmissionFinalizer) Domain() string { return paymentModel.PaymentDomainAdmission }

func (AdmissionFinalizer) Finalize(tx *gorm.DB, intent *paymentModel.PaymentIntent) error {
	var existing model.AdmissionFormSubmission
	err := tx.First(&existing, "admission_submission_intent_id = ?", intent.PaymentIntentID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	submittedAt := time.Now()
	if intent.PaymentIntentPaidAt != nil {
		submittedAt = *intent.PaymentIntentPaidAt
	}

	rec := model.AdmissionFormSubmission{
		AdmissionSubmissionStudentID:   intent.PaymentIntentStudentID,
		AdmissionSubmissionIntentID:    intent.PaymentIntentID,
		AdmissionSubmissionTranID:      intent.PaymentIntentTranID,
		AdmissionSubmissionStatus:      model.AdmissionSubmissionStatusSubmitted,
		AdmissionSubmissionSubmittedAt: submittedAt,
	}
	if err := tx.Create(&rec).Error; err != nil {
		if paymentSvc.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}
