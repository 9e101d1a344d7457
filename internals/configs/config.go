package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var (
	JWTSecret       string
	FrontendBaseURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	FrontendBaseURL = GetEnv("FRONTEND_BASE_URL", "http://localhost:3000")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

/* =========================================================
   SSLCommerz
   - Sandbox vs Live: flag SSLCOMMERZ_SANDBOX pilih pasangan
     kredensial + base URL.
   - Dipass eksplisit ke client, bukan global ambient.
========================================================= */

type SSLCommerzConfig struct {
	Sandbox       bool
	StoreID       string
	StorePassword string
	Currency      string

	// IPN callback per domain (server-to-server)
	FeeIPNURL        string
	AdmissionIPNURL  string
	TranscriptIPNURL string
}

func (c SSLCommerzConfig) BaseURL() string {
	if c.Sandbox {
		return "https://sandbox.sslcommerz.com"
	}
	return "https://securepay.sslcommerz.com"
}

func (c SSLCommerzConfig) Configured() bool {
	return c.StoreID != "" && c.StorePassword != ""
}

func LoadSSLCommerzConfig() SSLCommerzConfig {
	cfg := SSLCommerzConfig{
		Sandbox:          GetEnvBool("SSLCOMMERZ_SANDBOX", true),
		StoreID:          GetEnv("SSLCOMMERZ_STORE_ID"),
		StorePassword:    GetEnv("SSLCOMMERZ_STORE_PASSWORD"),
		Currency:         GetEnv("SSLCOMMERZ_CURRENCY", "BDT"),
		FeeIPNURL:        GetEnv("SSLCOMMERZ_FEE_IPN_URL", "http://localhost:3000/api/payments/fee/ipn"),
		AdmissionIPNURL:  GetEnv("SSLCOMMERZ_ADMISSION_IPN_URL", "http://localhost:3000/api/payments/admission/ipn"),
		TranscriptIPNURL: GetEnv("SSLCOMMERZ_TRANSCRIPT_IPN_URL", "http://localhost:3000/api/payments/transcript/ipn"),
	}

	// Kredensial sandbox/live menimpa default bila diset
	if cfg.Sandbox {
		if v := GetEnv("SSLCOMMERZ_SANDBOX_STORE_ID"); v != "" {
			cfg.StoreID = v
		}
		if v := GetEnv("SSLCOMMERZ_SANDBOX_STORE_PASSWORD"); v != "" {
			cfg.StorePassword = v
		}
	} else {
		if v := GetEnv("SSLCOMMERZ_LIVE_STORE_ID"); v != "" {
			cfg.StoreID = v
		}
		if v := GetEnv("SSLCOMMERZ_LIVE_STORE_PASSWORD"); v != "" {
			cfg.StorePassword = v
		}
	}

	if !cfg.Configured() {
		log.Println("⚠️ SSLCommerz store credentials belum diset — init payment akan 503")
	}
	return cfg
}

/* =========================================================
   Nominal tetap (transcript & admission)
========================================================= */

func TranscriptFeeAmount() decimal.Decimal {
	return feeAmountEnv("TRANSCRIPT_FEE_AMOUNT", "3500")
}

func AdmissionFeeAmount() decimal.Decimal {
	return feeAmountEnv("ADMISSION_FEE_AMOUNT", "500")
}

func feeAmountEnv(key, def string) decimal.Decimal {
	raw := GetEnv(key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.Sign() <= 0 {
		log.Printf("⚠️ %s tidak valid (%q), pakai default %s", key, raw, def)
		d, _ = decimal.NewFromString(def)
	}
	return d
}
