package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	PosthogAPIKey string

	// RateLimit is a ulule/limiter formatted rate, e.g. "10-M".
	RateLimit string
}

// LoadConfig loads configuration from the environment. A .env file is read
// first when present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "hesabix_backend")
	v.SetDefault("RATE_LIMIT", "10-M")

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable not set")
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	if v.GetString("GOOGLE_CLIENT_ID") == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set, Google login disabled.")
	}

	return &Config{
		DatabaseURL:        dbURL,
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		JWTSecret:          jwtSecret,
		JWTExpiryDuration:  time.Duration(v.GetInt("JWT_EXPIRY_MINUTES")) * time.Minute,
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		RateLimit:          v.GetString("RATE_LIMIT"),
	}, nil
}
