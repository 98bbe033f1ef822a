package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	ServerPort           string
	Environment          string
	LogLevel             string
	DatabaseURL          string
	CatalogSource        string
	CloudinaryURL        string
	JWTSecret            string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	TokenTTL             time.Duration
	DisplayCurrency      string
	ExchangeRates        map[string]decimal.Decimal
	VATRate              decimal.Decimal
	AllowedOrigins       []string
}

const (
	CatalogSourceFixtures = "fixtures"
	CatalogSourcePostgres = "postgres"
)

var AppConfig *Config

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:      getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		CatalogSource:   strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceFixtures)),
		CloudinaryURL:   getEnv("CLOUDINARY_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", "arco-dev-secret-change-in-production"),
		DisplayCurrency: strings.ToUpper(getEnv("DISPLAY_CURRENCY", "PHP")),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getDuration("SESSION_SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ExchangeRates, err = ParseRates(getEnv("EXCHANGE_RATES", "PHP=56.5")); err != nil {
		return nil, err
	}
	if cfg.VATRate, err = decimal.NewFromString(getEnv("VAT_RATE", "0.12")); err != nil {
		return nil, fmt.Errorf("invalid VAT_RATE: %w", err)
	}
	if cfg.VATRate.IsNegative() {
		return nil, fmt.Errorf("invalid VAT_RATE: must not be negative")
	}

	switch cfg.CatalogSource {
	case CatalogSourceFixtures:
	case CatalogSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("CATALOG_SOURCE=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("invalid CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	AppConfig = cfg
	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ParseRates parses "PHP=56.5,EUR=0.92" into a rate table keyed by upper-case code.
// Rates are units of the currency per one unit of the canonical currency.
func ParseRates(s string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, pair := range splitList(s) {
		code, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid EXCHANGE_RATES entry %q", pair)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("invalid rate for %s: must be positive", code)
		}
		rates[code] = rate
	}
	return rates, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		// bare numbers are seconds
		secs, convErr := strconv.Atoi(value)
		if convErr != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
