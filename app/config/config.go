package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the identity service
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database
	DatabaseHost     string `yaml:"db_host"`
	DatabasePort     string `yaml:"db_port"`
	DatabaseName     string `yaml:"db_name"`
	DatabaseUser     string `yaml:"db_user"`
	DatabasePassword string `yaml:"-"`
	DatabaseSSLMode  string `yaml:"db_ssl_mode"`

	// Identification lifecycle
	SessionTTL time.Duration `yaml:"session_ttl"`
	OtpTTL     time.Duration `yaml:"otp_ttl"`

	// Access tokens
	JWTSecret string        `yaml:"-"`
	JWTIssuer string        `yaml:"jwt_issuer"`
	JWTTTL    time.Duration `yaml:"jwt_ttl"`

	// Rate limiting (identify/verify endpoints, per client IP)
	RateLimitInterval time.Duration `yaml:"rate_limit_interval"`
	RateLimitBurst    int           `yaml:"rate_limit_burst"`

	// Storage hygiene
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// Features
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableCleanup bool `yaml:"enable_cleanup"`
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) with
// environment variables taking precedence. Secrets come from the
// environment only.
func Load() (*Config, error) {
	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	config.applyEnv()

	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func defaults() *Config {
	return &Config{
		Port:              "9600",
		Host:              "0.0.0.0",
		LogLevel:          "info",
		DatabaseHost:      "identity-postgres",
		DatabasePort:      "5432",
		DatabaseName:      "identity_db",
		DatabaseUser:      "identity_user",
		DatabaseSSLMode:   "require",
		SessionTTL:        10 * time.Minute,
		OtpTTL:            5 * time.Minute,
		JWTIssuer:         "identity-service",
		JWTTTL:            24 * time.Hour,
		RateLimitInterval: time.Minute,
		RateLimitBurst:    5,
		CleanupInterval:   15 * time.Minute,
		EnableMetrics:     true,
		EnableCleanup:     true,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	c.Port = getEnvOrDefault("PORT", c.Port)
	c.Host = getEnvOrDefault("HOST", c.Host)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)

	c.DatabaseHost = getEnvOrDefault("DB_HOST", c.DatabaseHost)
	c.DatabasePort = getEnvOrDefault("DB_PORT", c.DatabasePort)
	c.DatabaseName = getEnvOrDefault("DB_NAME", c.DatabaseName)
	c.DatabaseUser = getEnvOrDefault("DB_USER", c.DatabaseUser)
	c.DatabasePassword = os.Getenv("DB_PASSWORD")
	c.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", c.DatabaseSSLMode)

	c.SessionTTL = getDurationEnv("SESSION_TTL", c.SessionTTL)
	c.OtpTTL = getDurationEnv("OTP_TTL", c.OtpTTL)

	c.JWTSecret = os.Getenv("JWT_SECRET")
	c.JWTIssuer = getEnvOrDefault("JWT_ISSUER", c.JWTIssuer)
	c.JWTTTL = getDurationEnv("JWT_TTL", c.JWTTTL)

	c.RateLimitInterval = getDurationEnv("RATE_LIMIT_INTERVAL", c.RateLimitInterval)
	c.RateLimitBurst = getIntEnv("RATE_LIMIT_BURST", c.RateLimitBurst)

	c.CleanupInterval = getDurationEnv("CLEANUP_INTERVAL", c.CleanupInterval)

	c.EnableMetrics = getBoolEnv("ENABLE_METRICS", c.EnableMetrics)
	c.EnableCleanup = getBoolEnv("ENABLE_CLEANUP", c.EnableCleanup)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.SessionTTL < time.Minute {
		return fmt.Errorf("session TTL must be at least 1 minute, got: %v", c.SessionTTL)
	}
	if c.OtpTTL < time.Minute {
		return fmt.Errorf("OTP TTL must be at least 1 minute, got: %v", c.OtpTTL)
	}
	if c.JWTTTL < time.Minute {
		return fmt.Errorf("JWT TTL must be at least 1 minute, got: %v", c.JWTTTL)
	}

	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got: %d", c.RateLimitBurst)
	}
	if c.RateLimitInterval <= 0 {
		return fmt.Errorf("rate limit interval must be positive, got: %v", c.RateLimitInterval)
	}

	if c.EnableCleanup && c.CleanupInterval < time.Minute {
		return fmt.Errorf("cleanup interval must be at least 1 minute, got: %v", c.CleanupInterval)
	}

	return nil
}

// DatabaseDSN builds the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
