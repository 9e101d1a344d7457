// file: internals/features/finance/fees/service/fee_finalizer.go
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"schoolpay_backend/internals/features/finance/fees/model"
	paymentModel "schoolpay_backend/internals/features/finance/payments/model"
	paymentSvc "schoolpay_backend/internals/features/finance/payments/service"
)

/* =========================================================
   FeeFinalizer — finalized record domain fee
   - Dipanggil di dalam transaksi yang sama dengan transisi
     intent ke paid.
   - Idempotent: lookup-or-create keyed by intent.
========================================================= */

type FeeFinalizer struct{}

func (FeeFinalizer) Domain() string { return paymentModel.PaymentDomainFee }

func (FeeFinalizer) Finalize(tx *gorm.DB, intent *paymentModel.PaymentIntent) error {
	var existing model.FeePayment
	err := tx.First(&existing, "fee_payment_intent_id = ?", intent.PaymentIntentID).Error
	if err == nil {
		return nil // sudah ada — callback duplikat
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if intent.PaymentIntentFeeID == nil {
		return errors.New("fee intent without fee reference")
	}

	paidAt := time.Now()
	if intent.PaymentIntentPaidAt != nil {
		paidAt = *intent.PaymentIntentPaidAt
	}

	rec := model.FeePayment{
		FeePaymentFeeID:     *intent.PaymentIntentFeeID,
		FeePaymentStudentID: intent.PaymentIntentStudentID,
		FeePaymentIntentID:  intent.PaymentIntentID,
		FeePaymentTranID:    intent.PaymentIntentTranID,
		FeePaymentAmount:    intent.PaymentIntentAmount,
		FeePaymentMethod:    "sslcommerz",
		FeePaymentPaidAt:    paidAt,
	}
	if err := tx.Create(&rec).Error; err != nil {
		if paymentSvc.IsUniqueViolation(err) {
			return nil // balapan callback paralel — record sudah dibuat yang lain
		}
		return err
	}
	return nil
}
