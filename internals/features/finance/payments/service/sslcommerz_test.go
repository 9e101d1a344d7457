// file: internals/features/finance/payments/service/sslcommerz_test.go
package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"schoolpay_backend/internals/configs"
)

func testClient(ts *httptest.Server) *SSLCommerzClient {
	return &SSLCommerzClient{
		Config: configs.SSLCommerzConfig{
			Sandbox:       true,
			StoreID:       "teststore",
			StorePassword: "testpass",
			Currency:      "BDT",
		},
		BaseURL: ts.URL,
		HTTP:    ts.Client(),
	}
}

func TestInitiate(t *testing.T) {
	t.Run("SendsCredentialsAndAmountAsForm", func(t *testing.T) {
		var gotForm map[string]string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				t.Errorf("content-type = %q", ct)
			}
			if r.URL.Path != "/gwprocess/v4/api.php" {
				t.Errorf("path = %q", r.URL.Path)
			}
			_ = r.ParseForm()
			gotForm = map[string]string{}
			for k := range r.PostForm {
				gotForm[k] = r.PostForm.Get(k)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"SUCCESS","GatewayPageURL":"https://sandbox.sslcommerz.com/EasyCheckOut/abc","storeLogo":"https://cdn/logo.png"}`))
		}))
		defer ts.Close()

		res, err := testClient(ts).Initiate(context.Background(), InitiateParams{
			Amount:      decimal.NewFromInt(3500),
			TranID:      "TRX-ABCDEF123456",
			SuccessURL:  "http://app/api/payments/transcript/return?result=success",
			FailURL:     "http://app/api/payments/transcript/return?result=fail",
			CancelURL:   "http://app/api/payments/transcript/return?result=cancel",
			IPNURL:      "http://app/api/payments/transcript/ipn",
			ProductName: "Transcript Request",
			Customer:    CustomerInfo{Name: "Rahim", Email: "rahim@example.com", Phone: "01700000000"},
		})
		if err != nil {
			t.Fatalf("Initiate: %v", err)
		}
		if res.GatewayPageURL != "https://sandbox.sslcommerz.com/EasyCheckOut/abc" {
			t.Errorf("GatewayPageURL = %q", res.GatewayPageURL)
		}
		if res.StoreLogo != "https://cdn/logo.png" {
			t.Errorf("StoreLogo = %q", res.StoreLogo)
		}

		want := map[string]string{
			"store_id":     "teststore",
			"store_passwd": "testpass",
			"total_amount": "3500.00",
			"currency":     "BDT",
			"tran_id":      "TRX-ABCDEF123456",
			"ipn_url":      "http://app/api/payments/transcript/ipn",
			"product_name": "Transcript Request",
			"cus_name":     "Rahim",
			"cus_country":  "Bangladesh",
		}
		for k, v := range want {
			if gotForm[k] != v {
				t.Errorf("form[%q] = %q, want %q", k, gotForm[k], v)
			}
		}
	})

	t.Run("MissingCustomerFieldsDefaultToNA", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = r.ParseForm()
			for _, k := range []string{"cus_name", "cus_email", "cus_phone"} {
				if got := r.PostForm.Get(k); got != "N/A" {
					t.Errorf("form[%q] = %q, want N/A", k, got)
				}
			}
			_, _ = w.Write([]byte(`{"GatewayPageURL":"https://x/y"}`))
		}))
		defer ts.Close()

		if _, err := testClient(ts).Initiate(context.Background(), InitiateParams{
			Amount: decimal.NewFromInt(500),
			TranID: "ADM-000000000001",
		}); err != nil {
			t.Fatalf("Initiate: %v", err)
		}
	})

	t.Run("NoGatewayPageURLIsRejectedWithReason", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"FAILED","failedreason":"Store Credential Error Or Store is De-active"}`))
		}))
		defer ts.Close()

		res, err := testClient(ts).Initiate(context.Background(), InitiateParams{
			Amount: decimal.NewFromInt(3500),
			TranID: "TRX-AAAABBBBCCCC",
		})
		if !errors.Is(err, ErrInitRejected) {
			t.Fatalf("err = %v, want ErrInitRejected", err)
		}
		if res == nil || res.Raw["failedreason"] != "Store Credential Error Or Store is De-active" {
			t.Errorf("raw response not preserved: %+v", res)
		}
	})

	t.Run("NonJSONBodyIsGatewayError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>gateway down</html>"))
		}))
		defer ts.Close()

		_, err := testClient(ts).Initiate(context.Background(), InitiateParams{
			Amount: decimal.NewFromInt(100),
			TranID: "FEE-111122223333",
		})
		if !errors.Is(err, ErrGateway) {
			t.Fatalf("err = %v, want ErrGateway", err)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("SendsValIDAndCredentials", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/validator/api/validationserverAPI.php" {
				t.Errorf("path = %q", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("val_id") != "val-123" || q.Get("store_id") != "teststore" ||
				q.Get("store_passwd") != "testpass" || q.Get("format") != "json" {
				t.Errorf("query = %v", q)
			}
			_, _ = w.Write([]byte(`{"status":"VALID","amount":"3500.00","tran_id":"TRX-AAAABBBBCCCC"}`))
		}))
		defer ts.Close()

		res, err := testClient(ts).Validate(context.Background(), "val-123")
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if res.Status != "VALID" {
			t.Errorf("Status = %q, want VALID", res.Status)
		}
		if res.Amount == nil || !res.Amount.Equal(decimal.NewFromInt(3500)) {
			t.Errorf("Amount = %v, want 3500", res.Amount)
		}
	})

	t.Run("NumericAmountAlsoParses", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"VALIDATED","amount":3500}`))
		}))
		defer ts.Close()

		res, err := testClient(ts).Validate(context.Background(), "val-456")
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if res.Amount == nil || !res.Amount.Equal(decimal.NewFromInt(3500)) {
			t.Errorf("Amount = %v, want 3500", res.Amount)
		}
	})

	t.Run("UnparseableAmountIsNil", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"VALID","amount":"not-a-number"}`))
		}))
		defer ts.Close()

		res, err := testClient(ts).Validate(context.Background(), "val-789")
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if res.Amount != nil {
			t.Errorf("Amount = %v, want nil", res.Amount)
		}
	})

	t.Run("NonJSONBodyIsGatewayError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream timeout"))
		}))
		defer ts.Close()

		if _, err := testClient(ts).Validate(context.Background(), "val-000"); !errors.Is(err, ErrGateway) {
			t.Fatalf("err = %v, want ErrGateway", err)
		}
	})
}

func TestIsConfirmedStatus(t *testing.T) {
	for _, s := range []string{"VALID", "VALIDATED"} {
		if !IsConfirmedStatus(s) {
			t.Errorf("IsConfirmedStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "valid", "FAILED", "CANCELLED", "INVALID_TRANSACTION", "PENDING"} {
		if IsConfirmedStatus(s) {
			t.Errorf("IsConfirmedStatus(%q) = true, want false", s)
		}
	}
}
