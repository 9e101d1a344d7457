// file: internals/features/finance/payments/service/intent_store_test.go
package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schoolpay_backend/internals/features/finance/payments/model"
)

func TestGenerateTranID(t *testing.T) {
	t.Run("PrefixPerDomain", func(t *testing.T) {
		for domain, prefix := range map[string]string{
			model.PaymentDomainFee:        "FEE-",
			model.PaymentDomainAdmission:  "ADM-",
			model.PaymentDomainTranscript: "TRX-",
		} {
			id := GenerateTranID(domain)
			if !strings.HasPrefix(id, prefix) {
				t.Errorf("GenerateTranID(%q) = %q, want prefix %q", domain, id, prefix)
			}
		}
	})

	t.Run("Format", func(t *testing.T) {
		id := GenerateTranID(model.PaymentDomainTranscript)
		if len(id) != len("TRX-")+12 {
			t.Fatalf("GenerateTranID length = %d (%q), want %d", len(id), id, len("TRX-")+12)
		}
		for _, r := range id[4:] {
			if !strings.ContainsRune("0123456789ABCDEF", r) {
				t.Fatalf("GenerateTranID suffix contains non-hex rune %q in %q", r, id)
			}
		}
	})

	t.Run("Uniqueness", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 1000; i++ {
			id := GenerateTranID(model.PaymentDomainFee)
			if seen[id] {
				t.Fatalf("duplicate tran_id generated: %q", id)
			}
			seen[id] = true
		}
	})

	t.Run("UnknownDomainFallback", func(t *testing.T) {
		if id := GenerateTranID("donation"); !strings.HasPrefix(id, "PAY-") {
			t.Errorf("GenerateTranID(unknown) = %q, want PAY- prefix", id)
		}
	})
}

/* =======================================================================
   SQL-level tests (sqlmock) — pin guard & transaksi yang dikirim ke DB,
   bukan cuma kontrak in-memory
======================================================================= */

func mockStore(t *testing.T) (*IntentStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return NewIntentStore(db), mock
}

func storedIntent(status string) *model.PaymentIntent {
	return &model.PaymentIntent{
		PaymentIntentID:        uuid.New(),
		PaymentIntentDomain:    model.PaymentDomainTranscript,
		PaymentIntentStudentID: uuid.New(),
		PaymentIntentTranID:    "TRX-AAAABBBBCCCC",
		PaymentIntentAmount:    decimal.NewFromInt(3500),
		PaymentIntentCurrency:  "BDT",
		PaymentIntentStatus:    status,
	}
}

type spyFinalizer struct {
	calls  int
	lastTx *gorm.DB
	err    error
}

func (f *spyFinalizer) Domain() string { return model.PaymentDomainTranscript }

func (f *spyFinalizer) Finalize(tx *gorm.DB, _ *model.PaymentIntent) error {
	f.calls++
	f.lastTx = tx
	return f.err
}

func TestAppendGatewayPayload(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesSingleKeyViaJsonbSet", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)

		// per-key jsonb_set: writer paralel untuk key lain tidak tertimpa
		mock.ExpectExec(`UPDATE "payment_intents" SET "payment_intent_gateway_payload"=jsonb_set\(COALESCE\(payment_intent_gateway_payload, '\{\}'::jsonb\), \$1, \$2::jsonb, true\).+WHERE payment_intent_id = `).
			WithArgs("{ipn}", `{"status":"VALID"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.AppendGatewayPayload(ctx, intent, model.PayloadKeyIPN, map[string]any{"status": "VALID"}); err != nil {
			t.Fatalf("AppendGatewayPayload: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("KeepsOtherKeysInMemory", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)

		mock.ExpectExec(`UPDATE "payment_intents" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "payment_intents" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.AppendGatewayPayload(ctx, intent, model.PayloadKeyInitResponse, map[string]any{"status": "SUCCESS"}); err != nil {
			t.Fatalf("first append: %v", err)
		}
		if err := store.AppendGatewayPayload(ctx, intent, model.PayloadKeyIPN, map[string]any{"status": "VALID"}); err != nil {
			t.Fatalf("second append: %v", err)
		}
		for _, key := range []string{model.PayloadKeyInitResponse, model.PayloadKeyIPN} {
			if _, ok := intent.PaymentIntentGatewayPayload[key]; !ok {
				t.Errorf("payload key %q lost: %v", key, intent.PaymentIntentGatewayPayload)
			}
		}
	})
}

func TestTransitionSQL(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingToFailedGuardsOnPendingStatus", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)

		mock.ExpectExec(`UPDATE "payment_intents" SET .+WHERE payment_intent_id = \$\d+ AND payment_intent_status = \$\d+`).
			WithArgs(model.IntentStatusFailed, sqlmock.AnyArg(), intent.PaymentIntentID, model.IntentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.Transition(ctx, intent, model.IntentStatusFailed); err != nil {
			t.Fatalf("Transition: %v", err)
		}
		if intent.PaymentIntentStatus != model.IntentStatusFailed {
			t.Errorf("status = %q, want failed", intent.PaymentIntentStatus)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("LostRaceLeavesStructUntouched", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)

		// callback paralel menang duluan: guard WHERE status='pending' → 0 row
		mock.ExpectExec(`UPDATE "payment_intents" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := store.Transition(ctx, intent, model.IntentStatusFailed); err != nil {
			t.Fatalf("Transition: %v", err)
		}
		if intent.PaymentIntentStatus != model.IntentStatusPending {
			t.Errorf("status = %q, want pending (0 rows affected must not sync struct)", intent.PaymentIntentStatus)
		}
	})

	t.Run("TerminalIntentIsNoOpWithoutSQL", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPaid)

		if err := store.Transition(ctx, intent, model.IntentStatusFailed); err != nil {
			t.Fatalf("Transition on terminal: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("terminal no-op still hit the DB: %v", err)
		}
	})

	t.Run("InvalidTargetIsRejectedWithoutSQL", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)

		if err := store.Transition(ctx, intent, model.IntentStatusPending); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("err = %v, want ErrInvalidTransition", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("invalid transition still hit the DB: %v", err)
		}
	})
}

func TestFinalizePaidSQL(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingRowIsPaidAndFinalizedInOneTransaction", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)
		fin := &spyFinalizer{}

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "payment_intents" SET .+WHERE payment_intent_id = \$\d+ AND payment_intent_status = \$\d+`).
			WithArgs(sqlmock.AnyArg(), model.IntentStatusPaid, sqlmock.AnyArg(), intent.PaymentIntentID, model.IntentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := store.FinalizePaid(ctx, intent, fin); err != nil {
			t.Fatalf("FinalizePaid: %v", err)
		}
		if !intent.IsPaid() || intent.PaymentIntentPaidAt == nil {
			t.Errorf("intent = %q paid_at=%v, want paid with paid_at", intent.PaymentIntentStatus, intent.PaymentIntentPaidAt)
		}
		if fin.calls != 1 {
			t.Errorf("finalizer calls = %d, want 1", fin.calls)
		}
		if fin.lastTx == nil {
			t.Errorf("finalizer ran outside the transaction")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("ZeroRowsWithFailedIntentReturnsTerminal", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)
		fin := &spyFinalizer{}

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "payment_intents" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "payment_intents" WHERE payment_intent_id = `).
			WillReturnRows(sqlmock.NewRows([]string{"payment_intent_id", "payment_intent_status"}).
				AddRow(intent.PaymentIntentID.String(), model.IntentStatusFailed))
		mock.ExpectRollback()

		err := store.FinalizePaid(ctx, intent, fin)
		if !errors.Is(err, ErrIntentTerminal) {
			t.Fatalf("err = %v, want ErrIntentTerminal", err)
		}
		if fin.calls != 0 {
			t.Errorf("finalizer ran for failed intent")
		}
		if intent.PaymentIntentStatus != model.IntentStatusFailed {
			t.Errorf("struct not synced to current status: %q", intent.PaymentIntentStatus)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("ZeroRowsWithPaidIntentEnsuresRecordOnly", func(t *testing.T) {
		store, mock := mockStore(t)
		intent := storedIntent(model.IntentStatusPending)
		fin := &spyFinalizer{}
		paidAt := time.Now().Add(-time.Minute)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "payment_intents" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "payment_intents" WHERE payment_intent_id = `).
			WillReturnRows(sqlmock.NewRows([]string{"payment_intent_id", "payment_intent_status", "payment_intent_paid_at"}).
				AddRow(intent.PaymentIntentID.String(), model.IntentStatusPaid, paidAt))
		mock.ExpectCommit()

		if err := store.FinalizePaid(ctx, intent, fin); err != nil {
			t.Fatalf("FinalizePaid: %v", err)
		}
		if fin.calls != 1 {
			t.Errorf("finalizer calls = %d, want 1 (ensure record, not create twice)", fin.calls)
		}
		if !intent.IsPaid() || intent.PaymentIntentPaidAt == nil {
			t.Errorf("struct not synced: %q paid_at=%v", intent.PaymentIntentStatus, intent.PaymentIntentPaidAt)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
