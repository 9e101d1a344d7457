// file: internals/features/finance/payments/dto/payment_intent_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"schoolpay_backend/internals/features/finance/payments/model"
)

/* =========================================================
   RESPONSE DTOs
========================================================= */

// InitPaymentResponse: hasil init — frontend redirect ke GatewayPageURL
type InitPaymentResponse struct {
	TranID         string          `json:"tran_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	GatewayPageURL string          `json:"gateway_page_url"`
	StoreLogo      string          `json:"store_logo,omitempty"`
}

type PaymentIntentResponse struct {
	PaymentIntentID uuid.UUID `json:"payment_intent_id"`

	PaymentIntentDomain    string     `json:"payment_intent_domain"`
	PaymentIntentStudentID uuid.UUID  `json:"payment_intent_student_id"`
	PaymentIntentFeeID     *uuid.UUID `json:"payment_intent_fee_id,omitempty"`

	PaymentIntentTranID   string          `json:"payment_intent_tran_id"`
	PaymentIntentAmount   decimal.Decimal `json:"payment_intent_amount"`
	PaymentIntentCurrency string          `json:"payment_intent_currency"`
	PaymentIntentStatus   string          `json:"payment_intent_status"`

	PaymentIntentGatewayPayload datatypes.JSONMap `json:"payment_intent_gateway_payload,omitempty"`

	PaymentIntentPaidAt *time.Time `json:"payment_intent_paid_at,omitempty"`
	CreatedAt           time.Time  `json:"payment_intent_created_at"`
	UpdatedAt           time.Time  `json:"payment_intent_updated_at"`
}

type ListIntentsQuery struct {
	Page   int     `query:"page" validate:"omitempty,min=1"`
	Size   int     `query:"size" validate:"omitempty,min=1,max=200"`
	Domain *string `query:"domain" validate:"omitempty,oneof=fee admission transcript"`
	Status *string `query:"status" validate:"omitempty,oneof=pending paid failed"`
}

type ListIntentsResponse struct {
	Data       []PaymentIntentResponse `json:"data"`
	Page       int                     `json:"page"`
	Size       int                     `json:"size"`
	TotalItems int64                   `json:"total_items"`
	TotalPages int                     `json:"total_pages"`
}

/* =========================================================
   MAPPERS
========================================================= */

func ToPaymentIntentResponse(m model.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		PaymentIntentID: m.PaymentIntentID,

		PaymentIntentDomain:    m.PaymentIntentDomain,
		PaymentIntentStudentID: m.PaymentIntentStudentID,
		PaymentIntentFeeID:     m.PaymentIntentFeeID,

		PaymentIntentTranID:   m.PaymentIntentTranID,
		PaymentIntentAmount:   m.PaymentIntentAmount,
		PaymentIntentCurrency: m.PaymentIntentCurrency,
		PaymentIntentStatus:   m.PaymentIntentStatus,

		PaymentIntentGatewayPayload: m.PaymentIntentGatewayPayload,

		PaymentIntentPaidAt: m.PaymentIntentPaidAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func ToPaymentIntentResponses(ms []model.PaymentIntent) []PaymentIntentResponse {
	out := make([]PaymentIntentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPaymentIntentResponse(m))
	}
	return out
}
