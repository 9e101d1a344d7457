// file: internals/features/finance/fees/model/fee_payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
  fee_payments = FINALIZED RECORD domain fee.
  - Lahir MAKSIMAL SEKALI per intent, hanya saat intent paid
    (unique payment_intent_id yang jaga).
  - Tidak pernah dihapus oleh subsystem pembayaran.
*/

type FeePayment struct {
	FeePaymentID uuid.UUID `gorm:"column:fee_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_payment_id"`

	FeePaymentFeeID     uuid.UUID `gorm:"column:fee_payment_fee_id;type:uuid;not null" json:"fee_payment_fee_id"`
	FeePaymentStudentID uuid.UUID `gorm:"column:fee_payment_student_id;type:uuid;not null" json:"fee_payment_student_id"`

	FeePaymentIntentID uuid.UUID `gorm:"column:fee_payment_intent_id;type:uuid;not null;uniqueIndex:uq_fee_payment_intent_id" json:"fee_payment_intent_id"`
	FeePaymentTranID   string    `gorm:"column:fee_payment_tran_id;size:64;not null" json:"fee_payment_tran_id"`

	FeePaymentAmount decimal.Decimal `gorm:"column:fee_payment_amount;type:numeric(10,2);not null" json:"fee_payment_amount"`
	FeePaymentMethod string          `gorm:"column:fee_payment_method;size:32;not null;default:sslcommerz" json:"fee_payment_method"`

	FeePaymentPaidAt time.Time `gorm:"column:fee_payment_paid_at;not null" json:"fee_payment_paid_at"`

	CreatedAt time.Time `gorm:"column:fee_payment_created_at;autoCreateTime" json:"fee_payment_created_at"`
}

func (FeePayment) TableName() string { return "fee_payments" }
