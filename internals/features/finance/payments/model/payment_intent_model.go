// file: internals/features/finance/payments/model/payment_intent_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

/* ===================== Enums (string) ===================== */
/* Selaras dengan ENUM di PostgreSQL:
   payment_intent_status, payment_domain
*/

const (
	IntentStatusPending = "pending"
	IntentStatusPaid    = "paid"
	IntentStatusFailed  = "failed"
)

const (
	PaymentDomainFee        = "fee"
	PaymentDomainAdmission  = "admission"
	PaymentDomainTranscript = "transcript"
)

// Key yang boleh muncul di payment_intent_gateway_payload (append-only)
const (
	PayloadKeyInitResponse    = "init_response"
	PayloadKeyIPN             = "ipn"
	PayloadKeyValidation      = "validation"
	PayloadKeyValidationError = "validation_error"
)

/* ===================== Model ===================== */

type PaymentIntent struct {
	PaymentIntentID uuid.UUID `gorm:"column:payment_intent_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_intent_id"`

	PaymentIntentDomain    string    `gorm:"column:payment_intent_domain;type:payment_domain;not null" json:"payment_intent_domain"`
	PaymentIntentStudentID uuid.UUID `gorm:"column:payment_intent_student_id;type:uuid;not null" json:"payment_intent_student_id"`

	// Konteks domain (eksklusif: hanya fee yang butuh referensi tambahan)
	PaymentIntentFeeID *uuid.UUID `gorm:"column:payment_intent_fee_id;type:uuid" json:"payment_intent_fee_id,omitempty"`

	// tran_id dibuat sisi kita, immutable, unik (tag domain + 12 hex)
	PaymentIntentTranID string `gorm:"column:payment_intent_tran_id;size:64;not null;uniqueIndex:uq_payment_intent_tran_id" json:"payment_intent_tran_id"`

	PaymentIntentAmount   decimal.Decimal `gorm:"column:payment_intent_amount;type:numeric(10,2);not null" json:"payment_intent_amount"`
	PaymentIntentCurrency string          `gorm:"column:payment_intent_currency;type:varchar(8);not null;default:BDT" json:"payment_intent_currency"`

	PaymentIntentStatus string `gorm:"column:payment_intent_status;type:payment_intent_status;not null;default:'pending'" json:"payment_intent_status"`

	// Akumulasi respons mentah gateway: init_response / ipn / validation / validation_error
	PaymentIntentGatewayPayload datatypes.JSONMap `gorm:"column:payment_intent_gateway_payload;type:jsonb" json:"payment_intent_gateway_payload,omitempty"`

	PaymentIntentPaidAt *time.Time `gorm:"column:payment_intent_paid_at" json:"payment_intent_paid_at,omitempty"`

	CreatedAt time.Time `gorm:"column:payment_intent_created_at;autoCreateTime" json:"payment_intent_created_at"`
	UpdatedAt time.Time `gorm:"column:payment_intent_updated_at;autoUpdateTime" json:"payment_intent_updated_at"`
}

func (PaymentIntent) TableName() string { return "payment_intents" }

/* ===================== Helpers ===================== */

func (p *PaymentIntent) IsPending() bool { return p.PaymentIntentStatus == IntentStatusPending }
func (p *PaymentIntent) IsPaid() bool    { return p.PaymentIntentStatus == IntentStatusPaid }
func (p *PaymentIntent) IsTerminal() bool {
	return p.PaymentIntentStatus == IntentStatusPaid || p.PaymentIntentStatus == IntentStatusFailed
}

// CanTransition: DAG status — hanya pending→paid dan pending→failed.
// Tidak ada edge balik ke pending, tidak ada paid↔failed.
func CanTransition(from, to string) bool {
	if from != IntentStatusPending {
		return false
	}
	return to == IntentStatusPaid || to == IntentStatusFailed
}

func ValidDomain(d string) bool {
	switch d {
	case PaymentDomainFee, PaymentDomainAdmission, PaymentDomainTranscript:
		return true
	}
	return false
}
