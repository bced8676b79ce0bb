package config

import (
	"os"
	"strconv"
	"strings"
)

// Env carries process configuration. Pricing knobs default to the observed
// policy constants but stay overridable per deployment.
type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	JWTSecret string

	// TaxRate is the flat tax fraction applied to booking fares (GST).
	TaxRate float64
	// CancellationFeeRate is the fraction of the booking total charged on
	// cancellation.
	CancellationFeeRate float64
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/yatrik_erp?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr:             appAddr,
		GinMode:             strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:               dsn,
		JWTSecret:           secret,
		TaxRate:             envFloat("TAX_RATE", 0.18),
		CancellationFeeRate: envFloat("CANCELLATION_FEE_RATE", 0.10),
	}
}

func envFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}
