package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmercier/tir-tracker/internal/scoring"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	type seedPlayer struct {
		id   string
		name string
	}
	players := []seedPlayer{
		{uuid.NewString(), "Jean"},
		{uuid.NewString(), "Marie"},
		{uuid.NewString(), "Luc"},
		{uuid.NewString(), "Sophie"},
	}

	const totalShots = 10
	now := time.Now().Unix()

	for _, p := range players {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO players (id, name, total_shots, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			p.id, p.name, totalShots, now, now,
		)
		if err != nil {
			log.Fatalf("Failed to insert player %s: %s", p.name, err)
		}
	}
	log.Info("Ensured seed players exist.", "count", len(players))

	log.Info("Preparing to insert shots...", "shots_per_player", totalShots)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	inserted := 0
	for _, p := range players {
		for shot := 1; shot <= totalShots; shot++ {
			// Skew toward the upper rings so the leaderboard looks lived-in.
			value := float64(5 + rand.Intn(6))
			ring := "black"
			switch {
			case value >= 9:
				ring = "gold"
			case value >= 7:
				ring = "red"
			case value >= 5:
				ring = "blue"
			}

			_, err := tx.Exec(
				"INSERT INTO scores (id, player_id, shot_number, value, precision, ring, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
				uuid.NewString(), p.id, shot, value, scoring.Precision(value), ring, now,
			)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to insert shot for %s: %s", p.name, err)
			}
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit shots: %s", err)
	}

	log.Info("Seeding complete.", "shots", inserted, "duration", time.Since(startTime))
}
