package processor

import (
	"github.com/birchwoodgc/league-tracker/internal/league"
	"github.com/birchwoodgc/league-tracker/internal/notifier"
	"github.com/birchwoodgc/league-tracker/internal/scoring"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetTournamentsForProcessing() ([]*league.Tournament, error)
	UpdateProcessingStatus(tournamentID string, status league.ProcessingStatus) error
	GetRawResults(tournamentID string) ([]scoring.RawPlayerResult, error)
	GetPointsConfig() (scoring.PointsConfig, error)
	ApplyScoring(tournamentID string, axis scoring.Axis, results []scoring.ProcessedResult) error
	GetTournamentResults(tournamentID string) ([]league.ResultRow, error)
	GetSeasonStandings() ([]league.Standing, error)
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
