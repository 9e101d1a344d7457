// file: internals/features/finance/payments/service/intent_store.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolpay_backend/internals/features/finance/payments/model"
)

var (
	ErrIntentNotFound    = errors.New("payment intent not found")
	ErrInvalidTransition = errors.New("invalid intent status transition")
	// ErrIntentTerminal: intent sudah failed, callback valid datang terlambat — DAG melarang failed→paid
	ErrIntentTerminal = errors.New("payment intent already terminal")
)

/* =========================================================
   Finalizer
   - Satu implementasi per domain (fee / admission / transcript).
   - Finalize WAJIB idempotent: get-or-create keyed by intent,
     dipanggil ulang saat callback duplikat.
========================================================= */

type Finalizer interface {
	Domain() string
	Finalize(tx *gorm.DB, intent *model.PaymentIntent) error
}

/* =========================================================
   IntentStore (GORM / PostgreSQL)
========================================================= */

type IntentStore struct {
	DB *gorm.DB
}

func NewIntentStore(db *gorm.DB) *IntentStore {
	return &IntentStore{DB: db}
}

type NewIntent struct {
	Domain    string
	StudentID uuid.UUID
	FeeID     *uuid.UUID
	Amount    decimal.Decimal
	Currency  string
}

// tag tran_id per domain (FEE- / ADM- / TRX-)
var tranIDPrefix = map[string]string{
	model.PaymentDomainFee:        "FEE",
	model.PaymentDomainAdmission:  "ADM",
	model.PaymentDomainTranscript: "TRX",
}

// GenerateTranID: tag domain + 12 hex uppercase dari UUID.
// Entropi cukup; unique constraint di DB jadi jaring terakhir.
func GenerateTranID(domain string) string {
	prefix, ok := tranIDPrefix[domain]
	if !ok {
		prefix = "PAY"
	}
	hexPart := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return prefix + "-" + strings.ToUpper(hexPart)
}

func (s *IntentStore) Create(ctx context.Context, in NewIntent) (*model.PaymentIntent, error) {
	if !model.ValidDomain(in.Domain) {
		return nil, errors.New("unknown payment domain: " + in.Domain)
	}
	m := &model.PaymentIntent{
		PaymentIntentDomain:         in.Domain,
		PaymentIntentStudentID:      in.StudentID,
		PaymentIntentFeeID:          in.FeeID,
		PaymentIntentTranID:         GenerateTranID(in.Domain),
		PaymentIntentAmount:         in.Amount,
		PaymentIntentCurrency:       defaultString(in.Currency, "BDT"),
		PaymentIntentStatus:         model.IntentStatusPending,
		PaymentIntentGatewayPayload: datatypes.JSONMap{},
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *IntentStore) FindByTranID(ctx context.Context, tranID string) (*model.PaymentIntent, error) {
	var m model.PaymentIntent
	err := s.DB.WithContext(ctx).
		First(&m, "payment_intent_tran_id = ?", tranID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, err
	}
	return &m, nil
}

// AppendGatewayPayload merge value di bawah key tanpa membuang key lain.
// Aman dipanggil berulang untuk key yang sama (overwrite per key saja).
// Update per key via jsonb_set — callback paralel (IPN + return) yang nulis
// key beda tidak saling timpa.
func (s *IntentStore) AppendGatewayPayload(ctx context.Context, intent *model.PaymentIntent, key string, value any) error {
	if intent.PaymentIntentGatewayPayload == nil {
		intent.PaymentIntentGatewayPayload = datatypes.JSONMap{}
	}
	intent.PaymentIntentGatewayPayload[key] = value

	buf, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).
		Model(&model.PaymentIntent{}).
		Where("payment_intent_id = ?", intent.PaymentIntentID).
		Update("payment_intent_gateway_payload",
			gorm.Expr("jsonb_set(COALESCE(payment_intent_gateway_payload, '{}'::jsonb), ?, ?::jsonb, true)",
				"{"+key+"}", string(buf))).Error
}

// Transition pindah status sesuai DAG (pending→paid / pending→failed).
// Intent yang sudah terminal: no-op tanpa error.
// Guard di SQL: WHERE status='pending' — aman terhadap callback paralel.
func (s *IntentStore) Transition(ctx context.Context, intent *model.PaymentIntent, newStatus string) error {
	if intent.IsTerminal() {
		return nil
	}
	if !model.CanTransition(intent.PaymentIntentStatus, newStatus) {
		return ErrInvalidTransition
	}

	updates := map[string]any{"payment_intent_status": newStatus}
	var paidAt *time.Time
	if newStatus == model.IntentStatusPaid {
		now := time.Now()
		paidAt = &now
		updates["payment_intent_paid_at"] = now
	}

	res := s.DB.WithContext(ctx).
		Model(&model.PaymentIntent{}).
		Where("payment_intent_id = ? AND payment_intent_status = ?", intent.PaymentIntentID, model.IntentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		intent.PaymentIntentStatus = newStatus
		if paidAt != nil {
			intent.PaymentIntentPaidAt = paidAt
		}
	}
	return nil
}

// FinalizePaid: transisi pending→paid + materialisasi record domain dalam SATU
// transaksi DB — crash di tengah tidak bisa meninggalkan paid tanpa record
// (atau sebaliknya). Dipanggil ulang untuk intent yang sudah paid: hanya
// memastikan record ada (get-or-create), status tidak disentuh.
func (s *IntentStore) FinalizePaid(ctx context.Context, intent *model.PaymentIntent, fin Finalizer) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.PaymentIntent{}).
			Where("payment_intent_id = ? AND payment_intent_status = ?", intent.PaymentIntentID, model.IntentStatusPending).
			Updates(map[string]any{
				"payment_intent_status":  model.IntentStatusPaid,
				"payment_intent_paid_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			intent.PaymentIntentStatus = model.IntentStatusPaid
			intent.PaymentIntentPaidAt = &now
			return fin.Finalize(tx, intent)
		}

		// Tidak ada row berubah → intent sudah terminal (callback duplikat / telat)
		var current model.PaymentIntent
		if err := tx.First(&current, "payment_intent_id = ?", intent.PaymentIntentID).Error; err != nil {
			return err
		}
		intent.PaymentIntentStatus = current.PaymentIntentStatus
		intent.PaymentIntentPaidAt = current.PaymentIntentPaidAt

		if current.IsPaid() {
			// duplikat IPN untuk intent paid: pastikan record ada, jangan bikin kedua
			return fin.Finalize(tx, intent)
		}
		return ErrIntentTerminal
	})
}
