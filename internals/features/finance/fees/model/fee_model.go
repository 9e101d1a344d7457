// file: internals/features/finance/fees/model/fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* ===================== Enums (string) ===================== */

const (
	FeeStatusRunning = "running"
	FeeStatusClosed  = "closed"
)

/* ===================== Model ===================== */

// Fee: tagihan per kelas (SPP bulanan dsb), dibuat admin
type Fee struct {
	FeeID uuid.UUID `gorm:"column:fee_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_id"`

	FeeClassID *uuid.UUID `gorm:"column:fee_class_id;type:uuid" json:"fee_class_id,omitempty"`

	FeeTitle  string          `gorm:"column:fee_title;size:160;not null" json:"fee_title"`
	FeeMonth  *string         `gorm:"column:fee_month;size:20" json:"fee_month,omitempty"`
	FeeAmount decimal.Decimal `gorm:"column:fee_amount;type:numeric(10,2);not null" json:"fee_amount"`

	FeeStatus string `gorm:"column:fee_status;type:fee_status;not null;default:'running'" json:"fee_status"`

	CreatedAt time.Time `gorm:"column:fee_created_at;autoCreateTime" json:"fee_created_at"`
	UpdatedAt time.Time `gorm:"column:fee_updated_at;autoUpdateTime" json:"fee_updated_at"`
}

func (Fee) TableName() string { return "fees" }

func (f *Fee) IsRunning() bool { return f.FeeStatus == FeeStatusRunning }
