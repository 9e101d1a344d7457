// file: internals/features/finance/payments/model/gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
  payment_gateway_events = LOG CALLBACK SSLCOMMERZ (IPN / return)
  - Bisa banyak row per 1 intent (gateway boleh retry IPN)
  - Nyimpen raw headers, payload, query string, status processing.
*/

const (
	GatewayEventStatusReceived  = "received"
	GatewayEventStatusProcessed = "processed"
	GatewayEventStatusIgnored   = "ignored"
	GatewayEventStatusFailed    = "failed"
)

type PaymentGatewayEventModel struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gateway_event_id"`

	GatewayEventDomain string  `gorm:"column:gateway_event_domain;type:payment_domain;not null" json:"gateway_event_domain"`
	GatewayEventTranID *string `gorm:"column:gateway_event_tran_id" json:"gateway_event_tran_id"`
	GatewayEventValID  *string `gorm:"column:gateway_event_val_id" json:"gateway_event_val_id"`

	// Raw data (buat debug / replay)
	GatewayEventHeaders  datatypes.JSON `gorm:"column:gateway_event_headers;type:jsonb" json:"gateway_event_headers"`
	GatewayEventPayload  datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`
	GatewayEventRawQuery *string        `gorm:"column:gateway_event_raw_query" json:"gateway_event_raw_query"`

	// Status processing internal
	GatewayEventStatus string  `gorm:"column:gateway_event_status;type:gateway_event_status;not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string `gorm:"column:gateway_event_error" json:"gateway_event_error"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null;default:now()" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at"`

	GatewayEventCreatedAt time.Time `gorm:"column:gateway_event_created_at;not null;default:now()" json:"gateway_event_created_at"`
	GatewayEventUpdatedAt time.Time `gorm:"column:gateway_event_updated_at;not null;default:now()" json:"gateway_event_updated_at"`
}

func (PaymentGatewayEventModel) TableName() string { return "payment_gateway_events" }
