package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	LogLevel string

	DatabaseDSN string

	AdminEmail        string
	AdminPasswordHash string
	AdminAPIToken     string

	// BookingMaxRequests overrides the booking limiter's per-window
	// budget when set; 0 keeps the default policy.
	BookingMaxRequests int

	ClikaAPIURL string
	ClikaAPIKey string

	TrustProxyHeaders bool
}

func Load() Config {

	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getenv("APP_PORT", "3000"),
		AppEnv:  getenv("APP_ENV", "development"),

		LogLevel: os.Getenv("LOG_LEVEL"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminAPIToken:     os.Getenv("ADMIN_API_TOKEN"),

		BookingMaxRequests: getenvInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 0),

		ClikaAPIURL: os.Getenv("CLIKA_API_URL"),
		ClikaAPIKey: os.Getenv("CLIKA_API_KEY"),

		TrustProxyHeaders: os.Getenv("TRUST_PROXY_HEADERS") == "true",
	}

	return cfg

}

// IsProduction reports whether the process runs with production
// hardening (secure cookies).
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
