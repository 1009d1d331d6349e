package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort string

	DBDriver    string
	PostgresDSN string
	SQLitePath  string

	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration
	DBConnMaxLife  time.Duration

	JWTSecret         string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration

	// ListingFeeCents = 0 disables the paid submission flow entirely:
	// submissions go straight to pending_review.
	ListingFeeCents    int
	MPAccessToken      string
	MPBaseURL          string
	MPWebhookSecret    string
	WebhookCallbackURL string

	RedisAddr string

	AllowRepublish bool
	RequestTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DBDriver:           getEnv("DB_DRIVER", "postgres"),
		PostgresDSN:        getEnv("DATABASE_URL", ""),
		SQLitePath:         getEnv("SQLITE_PATH", "jau-emprega.db"),
		DBMaxOpenConns:     getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:     getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:      getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:      getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTokenTTL:      getDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		ListingFeeCents:    getInt("LISTING_FEE_CENTS", 0),
		MPAccessToken:      getEnv("MP_ACCESS_TOKEN", ""),
		MPBaseURL:          getEnv("MP_BASE_URL", "https://api.mercadopago.com"),
		MPWebhookSecret:    getEnv("MP_WEBHOOK_SECRET", ""),
		WebhookCallbackURL: getEnv("WEBHOOK_CALLBACK_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		AllowRepublish:     getBool("ALLOW_REPUBLISH", true),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		log.Fatalf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDriver == "postgres" && cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.AdminPasswordHash == "" {
		log.Fatal("ADMIN_PASSWORD_HASH is required")
	}
	if cfg.ListingFeeCents > 0 && cfg.MPAccessToken == "" {
		log.Fatal("MP_ACCESS_TOKEN is required when LISTING_FEE_CENTS > 0")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
