package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultTotalShots = 10

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

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Auth: AuthConfig{
			Username: getEnv("AUTH_USERNAME"),
			Password: getEnv("AUTH_PASSWORD"),
		},
		// Slack and Pub/Sub are optional integrations; their clients
		// degrade to no-ops when left unset.
		Slack: SlackConfig{
			Token:     os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		ProjectID:         os.Getenv("GCP_PROJECT"),
		DefaultTotalShots: defaultTotalShots,
	}

	if raw, ok := os.LookupEnv("DEFAULT_TOTAL_SHOTS"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Fatalf("Error: DEFAULT_TOTAL_SHOTS must be a positive integer, got %q", raw)
		}
		cfg.DefaultTotalShots = n
	}

	return cfg
}
