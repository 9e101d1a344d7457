// file: internals/features/finance/payments/model/payment_intent_model_test.go
package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{IntentStatusPending, IntentStatusPaid, true},
		{IntentStatusPending, IntentStatusFailed, true},
		{IntentStatusPending, IntentStatusPending, false},
		{IntentStatusPaid, IntentStatusFailed, false},
		{IntentStatusPaid, IntentStatusPending, false},
		{IntentStatusFailed, IntentStatusPaid, false},
		{IntentStatusFailed, IntentStatusPending, false},
		{IntentStatusPaid, IntentStatusPaid, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, tc := range []struct {
		status string
		want   bool
	}{
		{IntentStatusPending, false},
		{IntentStatusPaid, true},
		{IntentStatusFailed, true},
	} {
		p := PaymentIntent{PaymentIntentStatus: tc.status}
		if got := p.IsTerminal(); got != tc.want {
			t.Errorf("IsTerminal() with status %q = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestValidDomain(t *testing.T) {
	for _, d := range []string{PaymentDomainFee, PaymentDomainAdmission, PaymentDomainTranscript} {
		if !ValidDomain(d) {
			t.Errorf("ValidDomain(%q) = false, want true", d)
		}
	}
	for _, d := range []string{"", "fees", "donation", "FEE"} {
		if ValidDomain(d) {
			t.Errorf("ValidDomain(%q) = true, want false", d)
		}
	}
}
