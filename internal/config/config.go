package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Otp      OtpConfig
	Google   GoogleConfig
	Supabase SupabaseConfig
	SMTP     SMTPConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration. Secret has no default: startup fails
// without it.
type JWTConfig struct {
	Secret         string
	AccessExpiry   time.Duration
	RefreshExpiry  time.Duration
	RecoveryExpiry time.Duration
}

// AuthConfig holds the authentication filter configuration
type AuthConfig struct {
	// Mode is "enforce" or "annotate"; the middleware mode is derived from it.
	Mode string
}

// OtpConfig holds one-time-passcode configuration
type OtpConfig struct {
	TTL time.Duration
}

// GoogleConfig holds Google federated login configuration
type GoogleConfig struct {
	ClientID string
}

// SupabaseConfig holds Supabase federated login configuration
type SupabaseConfig struct {
	ProjectURL string
	JWTSecret  string
}

// SMTPConfig holds mail delivery configuration
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "trustfund"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv("JWT_SECRET"),
			AccessExpiry:   getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry:  getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			RecoveryExpiry: getEnvAsDuration("JWT_RECOVERY_EXPIRY", 10*time.Minute),
		},
		Auth: AuthConfig{
			Mode: getEnv("AUTH_MODE", "enforce"),
		},
		Otp: OtpConfig{
			TTL: getEnvAsDuration("OTP_TTL", 10*time.Minute),
		},
		Google: GoogleConfig{
			ClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		},
		Supabase: SupabaseConfig{
			ProjectURL: os.Getenv("SUPABASE_PROJECT_URL"),
			JWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}
}

// Validate checks that required configuration is present. It runs at startup
// so a misconfigured deployment fails fast instead of serving with weak or
// missing trust material.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.Auth.Mode != "enforce" && c.Auth.Mode != "annotate" {
		return fmt.Errorf("config: AUTH_MODE must be enforce or annotate, got %q", c.Auth.Mode)
	}
	if c.Otp.TTL <= 0 {
		return errors.New("config: OTP_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
