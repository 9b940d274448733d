package league

import (
	"database/sql"
	"sync"

	"github.com/birchwoodgc/league-tracker/internal/scoring"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ProcessingStatus tracks how far a tournament has moved through the
// scoring pipeline.
type ProcessingStatus string

const (
	StatusNew            ProcessingStatus = "NEW"
	StatusScored         ProcessingStatus = "SCORED"
	StatusResultNotified ProcessingStatus = "RESULT_NOTIFIED"
	StatusCompleted      ProcessingStatus = "COMPLETED"
)

// PointsMode selects how a tournament's points are determined: calculated
// from scores by the tie handler, or taken from manually entered positions.
type PointsMode string

const (
	PointsModeCalculated PointsMode = "calculated"
	PointsModeManual     PointsMode = "manual"
)

// Tournament is one league outing.
type Tournament struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	PlayedOn         int64            `json:"played_on"` // unix seconds
	Category         scoring.Category `json:"category"`
	PointsMode       PointsMode       `json:"points_mode"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
}

// PlayerInfo represents a player in the store.
type PlayerInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Handicap *float64 `json:"handicap,omitempty"`
}

// ResultRow is one player's stored line in a tournament: the raw upload
// fields plus both scoring passes. Net scoring fills Position/Points; gross
// scoring fills GrossPosition/GrossPoints.
type ResultRow struct {
	TournamentID    string   `json:"tournament_id"`
	PlayerID        string   `json:"player_id"`
	PlayerName      string   `json:"player_name"`
	EnteredPosition *int     `json:"entered_position,omitempty"`
	GrossScore      *int     `json:"gross_score,omitempty"`
	NetScore        *int     `json:"net_score,omitempty"`
	Handicap        *float64 `json:"handicap,omitempty"`
	Position        *int     `json:"position,omitempty"`
	Points          *float64 `json:"points,omitempty"`
	GrossPosition   *int     `json:"gross_position,omitempty"`
	GrossPoints     *float64 `json:"gross_points,omitempty"`
}

// Standing is one player's season-to-date line on the leaderboard.
type Standing struct {
	PlayerID          string  `json:"player_id"`
	PlayerName        string  `json:"player_name"`
	TournamentsPlayed int     `json:"tournaments_played"`
	NetPoints         float64 `json:"net_points"`
	GrossPoints       float64 `json:"gross_points"`
	Wins              int     `json:"wins"`
}
