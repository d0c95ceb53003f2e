package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	SpreadsheetID   string
	CredentialsFile string
	UserSheet       string
	DateOffset      time.Duration
	JWTIssuer       string
	JWTSigningKey   string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	RateLimitPerMin int
	LogLevel        string
	SentryDSN       string
}

// Load returns application config populated from environment variables with
// sensible defaults. A .env file is honoured when present.
func Load() App {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "5000"),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		UserSheet:       getEnv("USER_SHEET", "User"),
		// The school runs on IST; attendance columns are keyed by the IST
		// calendar date regardless of where the server runs.
		DateOffset:      durationEnv("DATE_OFFSET", 5*time.Hour+30*time.Minute),
		JWTIssuer:       getEnv("JWT_ISSUER", "attendance-admin"),
		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		AccessTTL:       durationEnv("ACCESS_TTL", 15*time.Minute),
		RefreshTTL:      durationEnv("REFRESH_TTL", 24*time.Hour),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SentryDSN:       os.Getenv("SENTRY_DSN"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
