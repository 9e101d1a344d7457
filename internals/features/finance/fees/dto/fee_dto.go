// file: internals/features/finance/fees/dto/fee_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolpay_backend/internals/features/finance/fees/model"
)

/* ===================== REQUEST ===================== */

type CreateFeeRequest struct {
	FeeClassID *uuid.UUID      `json:"fee_class_id,omitempty"`
	FeeTitle   string          `json:"fee_title" validate:"required,max=160"`
	FeeMonth   *string         `json:"fee_month,omitempty" validate:"omitempty,max=20"`
	FeeAmount  decimal.Decimal `json:"fee_amount" validate:"required"`
	FeeStatus  string          `json:"fee_status" validate:"omitempty,oneof=running closed"`
}

func (r CreateFeeRequest) ToModel() model.Fee {
	status := r.FeeStatus
	if status == "" {
		status = model.FeeStatusRunning
	}
	return model.Fee{
		FeeClassID: r.FeeClassID,
		FeeTitle:   r.FeeTitle,
		FeeMonth:   r.FeeMonth,
		FeeAmount:  r.FeeAmount,
		FeeStatus:  status,
	}
}

/* ===================== RESPONSE ===================== */

// FeeWithPaymentStatus: baris "my fees" — fee + status pembayaran si student
type FeeWithPaymentStatus struct {
	FeeID     uuid.UUID       `json:"fee_id"`
	FeeTitle  string          `json:"fee_title"`
	FeeMonth  *string         `json:"fee_month,omitempty"`
	FeeAmount decimal.Decimal `json:"fee_amount"`
	FeeStatus string          `json:"fee_status"`

	PaymentStatus string     `json:"payment_status"` // not_paid | pending | paid | failed
	TranID        *string    `json:"tran_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}
