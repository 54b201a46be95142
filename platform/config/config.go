// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// JWTConfig provides JWT validation settings for the dashboard middleware.
type JWTConfig interface {
	GetDashboardJWTSecret() string
}

// WebhookConfig provides settings for authenticating the telephony transport.
type WebhookConfig interface {
	GetTelephonySharedSecret() string
}

// SessionConfig provides settings for the active-conversation store.
type SessionConfig interface {
	GetRedisURL() string
	GetSessionTTL() time.Duration
}

// SchedulerConfig provides settings for the background task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetRoutingSweepInterval() time.Duration
}

// RoutingConfig provides settings for the attribution and routing engine.
type RoutingConfig interface {
	GetFallbackDealerID() uuid.UUID
}

// ExtractionConfig provides settings for the LLM extraction boundary.
type ExtractionConfig interface {
	GetExtractionEnabled() bool
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// EmailConfig provides settings for dealer notification email.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// =============================================================================
// Concrete Config
// =============================================================================

// Config is the concrete application configuration loaded from the environment.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	RedisURL              string
	CORSAllowAll          bool
	CORSOrigins           []string
	DashboardJWTSecret    string
	TelephonySharedSecret string
	SessionTTL            time.Duration
	AsynqQueueName        string
	AsynqConcurrency      int
	RoutingSweepInterval  time.Duration
	FallbackDealerID      uuid.UUID
	GeminiAPIKey          string
	GeminiModel           string
	EmailEnabled          bool
	SMTPHost              string
	SMTPPort              int
	SMTPUsername          string
	SMTPPassword          string
	EmailFromName         string
	EmailFromAddress      string
}

// Load reads configuration from the environment (and an optional .env file)
// and validates required settings.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fallbackDealer := getEnv("FALLBACK_DEALER_ID", "")
	fallbackDealerID, err := uuid.Parse(fallbackDealer)
	if err != nil {
		return nil, fmt.Errorf("FALLBACK_DEALER_ID must be a valid UUID: %w", err)
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CORSAllowAll:          strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true"),
		CORSOrigins:           splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		DashboardJWTSecret:    getEnv("DASHBOARD_JWT_SECRET", ""),
		TelephonySharedSecret: getEnv("TELEPHONY_SHARED_SECRET", ""),
		SessionTTL:            mustDuration(getEnv("SESSION_TTL", "4h")),
		AsynqQueueName:        getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:      mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		RoutingSweepInterval:  mustDuration(getEnv("ROUTING_SWEEP_INTERVAL", "5m")),
		FallbackDealerID:      fallbackDealerID,
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		EmailEnabled:          emailEnabled && smtpHost != "",
		SMTPHost:              smtpHost,
		SMTPPort:              mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:          getEnv("SMTP_USERNAME", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "Prequal Desk"),
		EmailFromAddress:      getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.DashboardJWTSecret == "" {
		return nil, fmt.Errorf("DASHBOARD_JWT_SECRET is required")
	}
	if cfg.TelephonySharedSecret == "" {
		return nil, fmt.Errorf("TELEPHONY_SHARED_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetDatabaseURL() string           { return c.DatabaseURL }
func (c *Config) GetHTTPAddr() string              { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool            { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string         { return c.CORSOrigins }
func (c *Config) GetDashboardJWTSecret() string    { return c.DashboardJWTSecret }
func (c *Config) GetTelephonySharedSecret() string { return c.TelephonySharedSecret }
func (c *Config) GetRedisURL() string              { return c.RedisURL }
func (c *Config) GetSessionTTL() time.Duration     { return c.SessionTTL }
func (c *Config) GetAsynqQueueName() string        { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int         { return c.AsynqConcurrency }

func (c *Config) GetRoutingSweepInterval() time.Duration { return c.RoutingSweepInterval }
func (c *Config) GetFallbackDealerID() uuid.UUID         { return c.FallbackDealerID }

func (c *Config) GetExtractionEnabled() bool { return c.GeminiAPIKey != "" }
func (c *Config) GetGeminiAPIKey() string    { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string     { return c.GeminiModel }

func (c *Config) GetEmailEnabled() bool      { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string        { return c.SMTPHost }
func (c *Config) GetSMTPPort() int           { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string    { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string    { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string   { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func mustDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid duration %q: %v", raw, err))
	}
	return d
}

func mustInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid integer %q: %v", raw, err))
	}
	return n
}
