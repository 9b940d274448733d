package notifier

import "github.com/birchwoodgc/league-tracker/internal/league"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For scored tournaments
	SendResultNotification(tournament *league.Tournament, results []league.ResultRow, dryRun bool) error
	// For slash commands
	SendStandings(standings []league.Standing, dryRun bool) error
	SendPlayerStanding(standing *league.Standing, query string, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(standings []league.Standing) (any, error)
	FormatPlayerStandingResponse(standing *league.Standing, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
