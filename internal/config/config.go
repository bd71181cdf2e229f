package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Asaas    AsaasConfig
	Checkout CheckoutConfig
	Job      JobConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	AllowedOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// AsaasConfig holds the payment gateway credentials and endpoints.
type AsaasConfig struct {
	APIKey     string
	APIURL     string
	WebhookURL string
	Timeout    time.Duration
}

// CheckoutConfig carries the tunables the checkout flow depends on.
// The duplicate window and poll budget were fixed constants in earlier
// iterations; they are configuration now.
type CheckoutConfig struct {
	DuplicateWindow time.Duration // window for collapsing duplicate orders
	PollInterval    time.Duration // status poller tick
	PollMaxAttempts int           // status poller attempt budget
	InProgressTTL   time.Duration // advisory payment-in-progress guard TTL
	PendingMaxAge   time.Duration // reconciliation sweep threshold
	ReconcileBatch  int           // max orders refreshed per sweep
}

type JobConfig struct {
	ReconcileCron string // cron spec for the pending-payment sweep
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Checkout API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			AllowedOrigins: getEnvList("APP_ALLOWED_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Asaas: AsaasConfig{
			APIKey:     getEnv("ASAAS_API_KEY", ""),
			APIURL:     getEnv("ASAAS_API_URL", "https://www.asaas.com/api/v3"),
			WebhookURL: getEnv("ASAAS_WEBHOOK_URL", "http://localhost:8080/api/v1/webhooks/asaas"),
			Timeout:    getEnvDuration("ASAAS_TIMEOUT", 30*time.Second),
		},
		Checkout: CheckoutConfig{
			DuplicateWindow: getEnvDuration("CHECKOUT_DUPLICATE_WINDOW", 5*time.Minute),
			PollInterval:    getEnvDuration("CHECKOUT_POLL_INTERVAL", 5*time.Second),
			PollMaxAttempts: getEnvInt("CHECKOUT_POLL_MAX_ATTEMPTS", 60),
			InProgressTTL:   getEnvDuration("CHECKOUT_IN_PROGRESS_TTL", 2*time.Minute),
			PendingMaxAge:   getEnvDuration("CHECKOUT_PENDING_MAX_AGE", 10*time.Minute),
			ReconcileBatch:  getEnvInt("CHECKOUT_RECONCILE_BATCH", 100),
		},
		Job: JobConfig{
			ReconcileCron: getEnv("JOB_RECONCILE_CRON", "*/5 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the loaded config.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Asaas.APIKey == "" {
			return fmt.Errorf("ASAAS_API_KEY must be set in production")
		}
	}

	if c.Checkout.PollMaxAttempts <= 0 {
		return fmt.Errorf("CHECKOUT_POLL_MAX_ATTEMPTS must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
