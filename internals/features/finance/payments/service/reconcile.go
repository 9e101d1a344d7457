// file: internals/features/finance/payments/service/reconcile.go
package service

import (
	"context"
	"errors"

	"schoolpay_backend/internals/features/finance/payments/dto"
	"schoolpay_backend/internals/features/finance/payments/model"
)

/* =========================================================
   ReconciliationEngine
   - Satu engine untuk tiga domain (fee/admission/transcript),
     finalisasi di-inject per domain lewat registry Finalizer.
   - Double-check: token status callback DAN validasi otoritatif
     (amount exact match) — callback palsu yang ngaku sukses
     tidak pernah bikin intent paid.
========================================================= */

const (
	OutcomePaid            = "paid"
	OutcomeRejected        = "rejected"
	OutcomeValidationError = "validation_error"
	OutcomeIntentNotFound  = "intent_not_found"
	OutcomeMissingValID    = "missing_val_id"
)

// IntentStorage: kontrak persistence yang dibutuhkan engine (IntentStore memenuhi)
type IntentStorage interface {
	FindByTranID(ctx context.Context, tranID string) (*model.PaymentIntent, error)
	AppendGatewayPayload(ctx context.Context, intent *model.PaymentIntent, key string, value any) error
	Transition(ctx context.Context, intent *model.PaymentIntent, newStatus string) error
	FinalizePaid(ctx context.Context, intent *model.PaymentIntent, fin Finalizer) error
}

// GatewayValidator: kontrak validasi server-side (SSLCommerzClient memenuhi)
type GatewayValidator interface {
	Validate(ctx context.Context, valID string) (*ValidationResult, error)
}

type ReconcileResult struct {
	Outcome string
	Intent  *model.PaymentIntent
}

type ReconciliationEngine struct {
	Store      IntentStorage
	Gateway    GatewayValidator
	Finalizers map[string]Finalizer
}

func NewReconciliationEngine(store IntentStorage, gateway GatewayValidator, finalizers ...Finalizer) *ReconciliationEngine {
	reg := make(map[string]Finalizer, len(finalizers))
	for _, f := range finalizers {
		reg[f.Domain()] = f
	}
	return &ReconciliationEngine{Store: store, Gateway: gateway, Finalizers: reg}
}

// Process memproses satu callback (IPN atau browser return).
//
// payloadKey: "ipn" atau "validation" — key rekaman raw payload di intent.
// oneShot: true untuk return flow (browser redirect sekali jalan) — kegagalan
// validasi langsung failed; false untuk IPN — intent dibiarkan pending supaya
// retry IPN gateway berikutnya masih bisa sukses.
func (e *ReconciliationEngine) Process(ctx context.Context, domain, payloadKey string, cb dto.CallbackPayload, oneShot bool) (*ReconcileResult, error) {
	intent, err := e.Store.FindByTranID(ctx, cb.TranID)
	if err != nil {
		if errors.Is(err, ErrIntentNotFound) {
			// Jangan bikin placeholder untuk tran_id tak dikenal
			return &ReconcileResult{Outcome: OutcomeIntentNotFound}, nil
		}
		return nil, err
	}
	if intent.PaymentIntentDomain != domain {
		// tran_id domain lain nyasar ke endpoint ini — perlakukan seperti tak dikenal
		return &ReconcileResult{Outcome: OutcomeIntentNotFound}, nil
	}

	if err := e.Store.AppendGatewayPayload(ctx, intent, payloadKey, cb.AsMap()); err != nil {
		return nil, err
	}

	// 1) Token status callback harus "confirmed"
	if !IsConfirmedStatus(cb.Status) {
		if err := e.Store.Transition(ctx, intent, model.IntentStatusFailed); err != nil {
			return nil, err
		}
		return &ReconcileResult{Outcome: OutcomeRejected, Intent: intent}, nil
	}

	if cb.ValID == "" {
		if oneShot {
			if err := e.Store.Transition(ctx, intent, model.IntentStatusFailed); err != nil {
				return nil, err
			}
			return &ReconcileResult{Outcome: OutcomeRejected, Intent: intent}, nil
		}
		return &ReconcileResult{Outcome: OutcomeMissingValID, Intent: intent}, nil
	}

	// 2) Konfirmasi otoritatif ke gateway
	vres, err := e.Gateway.Validate(ctx, cb.ValID)
	if err != nil {
		_ = e.Store.AppendGatewayPayload(ctx, intent, model.PayloadKeyValidationError, err.Error())
		if oneShot {
			// browser return sekali jalan: jangan tinggalkan intent nyangkut pending
			if terr := e.Store.Transition(ctx, intent, model.IntentStatusFailed); terr != nil {
				return nil, terr
			}
		}
		// IPN: biarkan pending — gateway bakal retry
		return &ReconcileResult{Outcome: OutcomeValidationError, Intent: intent}, nil
	}

	if err := e.Store.AppendGatewayPayload(ctx, intent, model.PayloadKeyValidation, vres.Raw); err != nil {
		return nil, err
	}

	// 3) Status tervalidasi + amount exact match → paid + record domain (idempotent)
	if IsConfirmedStatus(vres.Status) && vres.Amount != nil && vres.Amount.Equal(intent.PaymentIntentAmount) {
		fin, ok := e.Finalizers[intent.PaymentIntentDomain]
		if !ok {
			return nil, errors.New("no finalizer registered for domain " + intent.PaymentIntentDomain)
		}
		if err := e.Store.FinalizePaid(ctx, intent, fin); err != nil {
			if errors.Is(err, ErrIntentTerminal) {
				// valid callback telat untuk intent yang sudah failed — DAG melarang bangkit
				return &ReconcileResult{Outcome: OutcomeRejected, Intent: intent}, nil
			}
			return nil, err
		}
		return &ReconcileResult{Outcome: OutcomePaid, Intent: intent}, nil
	}

	if err := e.Store.Transition(ctx, intent, model.IntentStatusFailed); err != nil {
		return nil, err
	}
	return &ReconcileResult{Outcome: OutcomeRejected, Intent: intent}, nil
}
