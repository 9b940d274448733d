package config

import (
	"os"
	"strconv"

	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		Port: getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnvOr("GCP_PROJECT", ""),
		Scoring: ScoringConfig{
			Fallback: loadFallback(getEnvOr),
		},
	}
	return cfg
}

// loadFallback builds the out-of-range points policy. POINTS_FALLBACK selects
// the mode ("floor" or "last") and POINTS_FALLBACK_VALUE overrides the floor
// amount. Anything unrecognized falls back to the defaults.
func loadFallback(getEnvOr func(key, fallback string) string) scoring.Fallback {
	fallback := scoring.DefaultFallback()

	switch mode := getEnvOr("POINTS_FALLBACK", ""); mode {
	case "":
	case string(scoring.FallbackFloor):
		fallback.Mode = scoring.FallbackFloor
	case string(scoring.FallbackLastRow):
		fallback.Mode = scoring.FallbackLastRow
	default:
		log.Warn("Unrecognized POINTS_FALLBACK value, using default", "value", mode)
	}

	if raw := getEnvOr("POINTS_FALLBACK_VALUE", ""); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			log.Warn("Invalid POINTS_FALLBACK_VALUE, using default", "value", raw)
		} else {
			fallback.Floor = value
		}
	}
	return fallback
}
