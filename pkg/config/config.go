package config

import (
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

	JWTSecret          string
	JWTIssuer          string
	AccessTokenExpiry  time.Duration
	CompanyTokenExpiry time.Duration

	// SweepInterval is the cadence of the background recurrence and due-date
	// sweeps. DueDateLeadDays is how far ahead the due-date sweep looks.
	SweepInterval   time.Duration
	DueDateLeadDays int

	// RateLimit uses the limiter formatted syntax, e.g. "100-M".
	RateLimit string

	RunMigrations bool
}

// LoadConfig loads configuration from environment variables and .env file if
// present. Environment variables override .env values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "erp-backend")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "1h")
	viper.SetDefault("COMPANY_TOKEN_EXPIRY", "12h")
	viper.SetDefault("SWEEP_INTERVAL", "1h")
	viper.SetDefault("DUE_DATE_LEAD_DAYS", 5)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("RUN_MIGRATIONS", true)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		JWTIssuer:       viper.GetString("JWT_ISSUER"),
		DueDateLeadDays: viper.GetInt("DUE_DATE_LEAD_DAYS"),
		RateLimit:       viper.GetString("RATE_LIMIT"),
		RunMigrations:   viper.GetBool("RUN_MIGRATIONS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	cfg.AccessTokenExpiry = parseDuration("ACCESS_TOKEN_EXPIRY", time.Hour)
	cfg.CompanyTokenExpiry = parseDuration("COMPANY_TOKEN_EXPIRY", 12*time.Hour)
	cfg.SweepInterval = parseDuration("SWEEP_INTERVAL", time.Hour)

	if cfg.DueDateLeadDays < 0 {
		log.Printf("Warning: DUE_DATE_LEAD_DAYS is negative (%d). Defaulting to 5.\n", cfg.DueDateLeadDays)
		cfg.DueDateLeadDays = 5
	}

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
