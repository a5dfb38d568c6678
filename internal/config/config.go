package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is assembled from environment variables. cmd/api loads .env first
// (prod supplies real env vars).
type Config struct {
	Addr    string
	BaseURL string

	DBDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	PayBaseURL string
	PayAPIKey  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() (Config, error) {
	cfg := Config{
		Addr:          envOr("ADDR", ":8080"),
		BaseURL:       envOr("BASE_URL", "http://localhost:8080"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      envDuration("TOKEN_TTL", 24*time.Hour),
		PayBaseURL:    envOr("PAY_BASE_URL", "https://pay.sandbox.tripora.dev"),
		PayAPIKey:     os.Getenv("PAY_API_KEY"),
		SMTPHost:      envOr("SMTP_HOST", "localhost"),
		SMTPPort:      envInt("SMTP_PORT", 1025),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      envOr("MAIL_FROM", "no-reply@tripora.dev"),
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
