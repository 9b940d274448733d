package config

import "github.com/birchwoodgc/league-tracker/internal/scoring"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	Scoring       ScoringConfig
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// ScoringConfig controls how points are awarded beyond the tabulated range.
type ScoringConfig struct {
	Fallback scoring.Fallback
}
