package league

import "github.com/birchwoodgc/league-tracker/internal/scoring"

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	UpsertPlayers(players []PlayerInfo) error
	GetAllPlayers() ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool

	UpsertTournament(t *Tournament) error
	GetTournament(tournamentID string) (*Tournament, error)
	GetAllTournaments() ([]*Tournament, error)
	GetTournamentsForProcessing() ([]*Tournament, error)
	UpdateProcessingStatus(tournamentID string, status ProcessingStatus) error

	ReplaceRawResults(tournamentID string, results []scoring.RawPlayerResult) error
	GetRawResults(tournamentID string) ([]scoring.RawPlayerResult, error)
	ApplyScoring(tournamentID string, axis scoring.Axis, results []scoring.ProcessedResult) error
	GetTournamentResults(tournamentID string) ([]ResultRow, error)

	GetPointsConfig() (scoring.PointsConfig, error)
	GetSeasonStandings() ([]Standing, error)
	GetStandingByName(playerName string) (*Standing, error)

	Clear()
	ClearTournament(tournamentID string)
}
