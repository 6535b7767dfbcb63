package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable with STORE_BACKEND.
const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StoreBackend  string
	DataDir       string
	DatabaseURL   string
	EnableDBCheck bool

	// Currency conversion
	BaseCurrency     string
	RateProviderURL  string
	RateFetchTimeout time.Duration

	// Reporting
	MonthlyWindow int

	// HTTP surface
	RateLimit          string
	CORSAllowedOrigins []string

	// Analytics
	PosthogAPIKey   string
	PosthogEndpoint string
	LedgerOwnerID   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_BACKEND", StoreBackendFile)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("BASE_CURRENCY", "USD")
	v.SetDefault("RATE_PROVIDER_URL", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("RATE_FETCH_TIMEOUT", "10s")
	v.SetDefault("MONTHLY_WINDOW", 12)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("LEDGER_OWNER_ID", "ledger-owner")

	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		StoreBackend:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		DataDir:         v.GetString("DATA_DIR"),
		DatabaseURL:     v.GetString("PGSQL_URL"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		BaseCurrency:    strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY"))),
		RateProviderURL: strings.TrimRight(v.GetString("RATE_PROVIDER_URL"), "/"),
		MonthlyWindow:   v.GetInt("MONTHLY_WINDOW"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
		LedgerOwnerID:   v.GetString("LEDGER_OWNER_ID"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreBackend {
	case StoreBackendFile:
	case StoreBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_BACKEND=%s", StoreBackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want %q or %q)", cfg.StoreBackend, StoreBackendFile, StoreBackendPostgres)
	}

	if len(cfg.BaseCurrency) != 3 {
		return nil, fmt.Errorf("BASE_CURRENCY must be a 3-letter code, got %q", cfg.BaseCurrency)
	}

	timeoutStr := v.GetString("RATE_FETCH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for RATE_FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
	}
	cfg.RateFetchTimeout = timeout

	if cfg.MonthlyWindow <= 0 {
		log.Printf("Warning: Invalid value for MONTHLY_WINDOW (%d). Defaulting to 12.\n", cfg.MonthlyWindow)
		cfg.MonthlyWindow = 12
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
