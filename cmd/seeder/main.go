package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
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

type seedPlayer struct {
	id       string
	name     string
	handicap float64
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

	players := []seedPlayer{
		{"player-1", "Seeder Player A", 6.2},
		{"player-2", "Seeder Player B", 10.8},
		{"player-3", "Seeder Player C", 14.5},
		{"player-4", "Seeder Player D", 21.0},
	}

	for _, p := range players {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, handicap) VALUES (?, ?, ?)", p.id, p.name, p.handicap)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const numTournaments = 200
	categories := []string{"major", "tour", "league", "supr"}

	log.Info("Preparing to insert dummy tournaments...", "total", numTournaments)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	for i := 0; i < numTournaments; i++ {
		playedOn := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		tournamentID := uuid.NewString()
		category := categories[rand.Intn(len(categories))]

		_, err := tx.Exec(`
			INSERT INTO tournaments (id, name, played_on, category, points_mode, processing_status)
			VALUES (?, ?, ?, ?, 'calculated', 'NEW');`,
			tournamentID,
			fmt.Sprintf("Seeded %s #%d", category, i+1),
			playedOn.Unix(),
			category,
		)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert tournament: %s", err)
		}

		valueStrings := make([]string, 0, len(players))
		valueArgs := make([]interface{}, 0, len(players)*6)
		for _, p := range players {
			gross := 72 + rand.Intn(25)
			net := gross - int(p.handicap)
			valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?)")
			valueArgs = append(valueArgs, tournamentID, p.id, p.name, gross, net, p.handicap)
		}

		stmt := fmt.Sprintf(`
			INSERT INTO tournament_results (tournament_id, player_id, player_name, gross_score, net_score, handicap)
			VALUES %s;`, strings.Join(valueStrings, ","))
		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert tournament results: %s", err)
		}

		if (i+1)%50 == 0 || (i+1) == numTournaments {
			log.Info("Inserted tournaments", "completed", i+1, "total", numTournaments)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy tournaments.", "duration", duration)
}
