// file: internals/features/finance/payments/service/sslcommerz.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"schoolpay_backend/internals/configs"
)

/* =========================================================
   SSLCommerz Client
   - Initiate: POST form-encoded ke gwprocess/v4/api.php
   - Validate: GET validator/api/validationserverAPI.php
   - Tanpa retry: kegagalan transport/parse langsung naik ke
     caller (safe failure, rekonsiliasi manual — bukan retry
     buta ke gateway finansial).
========================================================= */

var (
	// ErrGateway: transport mati / respons bukan JSON — fatal untuk attempt ini
	ErrGateway = errors.New("sslcommerz gateway error")
	// ErrInitRejected: gateway menjawab tapi tanpa GatewayPageURL (failedreason)
	ErrInitRejected = errors.New("sslcommerz init rejected")
)

const gatewayTimeout = 30 * time.Second

type SSLCommerzClient struct {
	Config  configs.SSLCommerzConfig
	BaseURL string // default dari Config.BaseURL(); dioverride di test
	HTTP    *http.Client
}

func NewSSLCommerzClient(cfg configs.SSLCommerzConfig) *SSLCommerzClient {
	return &SSLCommerzClient{
		Config:  cfg,
		BaseURL: cfg.BaseURL(),
		HTTP:    &http.Client{Timeout: gatewayTimeout},
	}
}

func (s *SSLCommerzClient) initURL() string {
	return s.BaseURL + "/gwprocess/v4/api.php"
}

func (s *SSLCommerzClient) validationURL() string {
	return s.BaseURL + "/validator/api/validationserverAPI.php"
}

// IsConfirmedStatus: token "confirmed" versi SSLCommerz
func IsConfirmedStatus(status string) bool {
	return status == "VALID" || status == "VALIDATED"
}

/* =========================================================
   Initiate
========================================================= */

type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

type InitiateParams struct {
	Amount      decimal.Decimal
	TranID      string
	SuccessURL  string
	FailURL     string
	CancelURL   string
	IPNURL      string
	ProductName string
	Customer    CustomerInfo
}

type InitResult struct {
	GatewayPageURL string
	StoreLogo      string
	Raw            map[string]any
}

func (s *SSLCommerzClient) Initiate(ctx context.Context, p InitiateParams) (*InitResult, error) {
	form := url.Values{}
	form.Set("store_id", s.Config.StoreID)
	form.Set("store_passwd", s.Config.StorePassword)
	form.Set("total_amount", p.Amount.StringFixed(2))
	form.Set("currency", s.Config.Currency)
	form.Set("tran_id", p.TranID)
	form.Set("success_url", p.SuccessURL)
	form.Set("fail_url", p.FailURL)
	form.Set("cancel_url", p.CancelURL)
	form.Set("ipn_url", p.IPNURL)
	form.Set("product_category", "education")
	form.Set("product_name", p.ProductName)
	form.Set("product_profile", "non-physical-goods")
	form.Set("cus_name", defaultString(p.Customer.Name, "N/A"))
	form.Set("cus_email", defaultString(p.Customer.Email, "N/A"))
	form.Set("cus_add1", "N/A")
	form.Set("cus_city", "N/A")
	form.Set("cus_postcode", "0000")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", defaultString(p.Customer.Phone, "N/A"))
	form.Set("shipping_method", "NO")
	form.Set("num_of_item", "1")
	form.Set("weight_of_items", "0.1")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.initURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	raw, err := s.doJSON(req)
	if err != nil {
		return nil, err
	}

	res := &InitResult{Raw: raw}
	if v, ok := raw["GatewayPageURL"].(string); ok {
		res.GatewayPageURL = v
	}
	if v, ok := raw["storeLogo"].(string); ok {
		res.StoreLogo = v
	}

	if res.GatewayPageURL == "" {
		reason, _ := raw["failedreason"].(string)
		if reason == "" {
			reason = "Gateway error"
		}
		return res, fmt.Errorf("%w: %s", ErrInitRejected, reason)
	}
	return res, nil
}

/* =========================================================
   Validate (konfirmasi otoritatif server-side)
========================================================= */

type ValidationResult struct {
	Status string
	// Amount nil bila field amount gateway tidak bisa diparse decimal
	Amount *decimal.Decimal
	Raw    map[string]any
}

func (s *SSLCommerzClient) Validate(ctx context.Context, valID string) (*ValidationResult, error) {
	q := url.Values{}
	q.Set("val_id", valID)
	q.Set("store_id", s.Config.StoreID)
	q.Set("store_passwd", s.Config.StorePassword)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.validationURL()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	raw, err := s.doJSON(req)
	if err != nil {
		return nil, err
	}

	res := &ValidationResult{Raw: raw}
	if v, ok := raw["status"].(string); ok {
		res.Status = v
	}
	if v, ok := raw["amount"]; ok {
		if d, err := decimal.NewFromString(fmt.Sprintf("%v", v)); err == nil {
			res.Amount = &d
		}
	}
	return res, nil
}

func (s *SSLCommerzClient) doJSON(req *http.Request) (map[string]any, error) {
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrGateway, err)
	}
	return raw, nil
}

func defaultString(s string, def string) string {
	if s == "" {
		return def
	}
	return s
}
