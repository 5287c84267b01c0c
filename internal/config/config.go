package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/trmops/internal/services"
	"github.com/example/trmops/internal/session"
)

const (
	envProduction = "production"

	// devSessionSecret keeps local runs working without setup. It is refused in production.
	devSessionSecret = "trm-ops-secret-key-change-in-production"
)

// Config holds application configuration values.
type Config struct {
	AppName               string
	AppPort               string
	AppEnv                string
	LogLevel              string
	SessionSecret         string
	DatabaseURL           string
	RedisURL              string
	AfricasTalking        services.AfricasTalkingConfig
	DefaultRole           session.Role
	DirectorySeed         string
	OTPRateLimitPerMinute int
	ShutdownTimeout       time.Duration
}

// Load reads environment variables (and a .env file when present) and returns a populated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName:       getEnv("APP_NAME", "TRM Ops"),
		AppPort:       getEnv("APP_PORT", "8080"),
		AppEnv:        strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		AfricasTalking: services.AfricasTalkingConfig{
			APIKey:   getEnv("AFRICASTALKING_API_KEY", ""),
			Username: getEnv("AFRICASTALKING_USERNAME", ""),
			SenderID: getEnv("AFRICASTALKING_SENDER_ID", ""),
			BaseURL:  getEnv("AFRICASTALKING_BASE_URL", ""),
		},
		DirectorySeed: getEnv("DIRECTORY_SEED", ""),
	}

	if cfg.AppPort == "" {
		return nil, errors.New("APP_PORT must be set")
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("SESSION_SECRET must be set in production")
		}
		cfg.SessionSecret = devSessionSecret
	}

	role, err := session.ParseRole(getEnv("DEFAULT_ROLE", string(session.RoleAdmin)))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ROLE: %w", err)
	}
	cfg.DefaultRole = role

	limit, err := getEnvInt("OTP_RATE_LIMIT_PER_MINUTE", 5)
	if err != nil {
		return nil, err
	}
	cfg.OTPRateLimitPerMinute = limit

	timeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = timeout

	return cfg, nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == envProduction
}

// GatewayConfigured reports whether live SMS delivery is available.
func (c *Config) GatewayConfigured() bool {
	return c.AfricasTalking.Configured()
}

// Address returns the listen address in the format Fiber expects.
func (c *Config) Address() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}
	return ":" + c.AppPort
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
