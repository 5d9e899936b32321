package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Server
	ServerAddr string
	ServerPort int

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Tokens
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// Super-admin bootstrap
	SuperAdminEmail    string
	SuperAdminPassword string

	// FrontendURL is the base URL embedded in QR code images.
	FrontendURL string

	// Summarizer (optional)
	GroqAPIKey     string
	GroqModel      string
	GroqBaseURL    string
	SummaryTimeout time.Duration

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults
		ServerAddr: getEnv("SERVER_ADDR", "0.0.0.0"),
		ServerPort: getEnvInt("SERVER_PORT", 8080),

		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ratebridge"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Token defaults
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "ratebridge"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		// Super-admin bootstrap
		SuperAdminEmail:    getEnv("SUPERADMIN_EMAIL", "superadmin@ratebridge.com"),
		SuperAdminPassword: getEnv("SUPERADMIN_PASSWORD", ""),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Summarizer (optional)
		GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
		GroqModel:      getEnv("GROQ_MODEL", ""),
		GroqBaseURL:    getEnv("GROQ_BASE_URL", ""),
		SummaryTimeout: getEnvDuration("SUMMARY_TIMEOUT", 30*time.Second),

		// Rate limiting
		RateLimitEnabled:  getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// HasSummarizer returns true if the LLM summarization credential is configured.
func (c *Config) HasSummarizer() bool {
	return c.GroqAPIKey != ""
}

// HasSuperAdmin returns true if super-admin bootstrap credentials are set.
func (c *Config) HasSuperAdmin() bool {
	return c.SuperAdminEmail != "" && c.SuperAdminPassword != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
