package league

import (
	"database/sql"
	"fmt"

	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/charmbracelet/log"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// UpsertPlayers inserts or updates players in bulk. An upload may carry a
// fresher handicap, so the name and handicap always win on conflict.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	if len(players) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, handicap)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			handicap = COALESCE(excluded.handicap, players.handicap);
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.Handicap); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, handicap FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		var handicap sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Name, &handicap); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		if handicap.Valid {
			p.Handicap = &handicap.Float64
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

// UpsertTournament inserts a new tournament or updates an existing one. It is
// "dumb" and does not change the processing status of an existing tournament.
func (s *store) UpsertTournament(t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tournaments (id, name, played_on, category, points_mode, processing_status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			played_on = excluded.played_on,
			category = excluded.category,
			points_mode = excluded.points_mode;
	`, t.ID, t.Name, t.PlayedOn, t.Category, t.PointsMode, StatusNew)
	return err
}

func (s *store) GetTournament(tournamentID string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, played_on, category, points_mode, processing_status
		FROM tournaments WHERE id = ?
	`, tournamentID)

	t, err := scanTournament(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tournament %s not found", tournamentID)
		}
		return nil, err
	}
	return t, nil
}

func (s *store) GetAllTournaments() ([]*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTournaments(`
		SELECT id, name, played_on, category, points_mode, processing_status
		FROM tournaments ORDER BY played_on DESC
	`)
}

// GetTournamentsForProcessing retrieves all tournaments that have not yet
// reached the completed state.
func (s *store) GetTournamentsForProcessing() ([]*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTournaments(`
		SELECT id, name, played_on, category, points_mode, processing_status
		FROM tournaments
		WHERE processing_status != ?
		ORDER BY played_on ASC
	`, StatusCompleted)
}

func (s *store) queryTournaments(query string, args ...any) ([]*Tournament, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []*Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

func scanTournament(scanner interface{ Scan(...any) error }) (*Tournament, error) {
	var t Tournament
	err := scanner.Scan(&t.ID, &t.Name, &t.PlayedOn, &t.Category, &t.PointsMode, &t.ProcessingStatus)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateProcessingStatus transitions a tournament to a new state.
func (s *store) UpdateProcessingStatus(tournamentID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE tournaments SET processing_status = ? WHERE id = ?", status, tournamentID)
	return err
}

// ReplaceRawResults swaps out a tournament's result rows for a fresh upload.
// Scoring fields are reset; a re-upload means a re-score.
func (s *store) ReplaceRawResults(tournamentID string, results []scoring.RawPlayerResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM tournament_results WHERE tournament_id = ?", tournamentID); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tournament_results (tournament_id, player_id, player_name, entered_position, gross_score, net_score, handicap)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(tournamentID, r.PlayerID, r.PlayerName, r.Position, r.GrossScore, r.NetScore, r.Handicap); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert result for player %s: %w", r.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (s *store) GetRawResults(tournamentID string) ([]scoring.RawPlayerResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, player_name, entered_position, gross_score, net_score, handicap
		FROM tournament_results WHERE tournament_id = ?
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []scoring.RawPlayerResult
	for rows.Next() {
		var r scoring.RawPlayerResult
		var enteredPosition, grossScore, netScore sql.NullInt64
		var handicap sql.NullFloat64
		if err := rows.Scan(&r.PlayerID, &r.PlayerName, &enteredPosition, &grossScore, &netScore, &handicap); err != nil {
			log.Error("Failed to scan raw result row", "error", err, "tournamentID", tournamentID)
			continue
		}
		r.Position = nullableInt(enteredPosition)
		r.GrossScore = nullableInt(grossScore)
		r.NetScore = nullableInt(netScore)
		if handicap.Valid {
			r.Handicap = &handicap.Float64
		}
		results = append(results, r)
	}
	return results, nil
}

// ApplyScoring persists one scoring pass onto the tournament's result rows.
// The whole pass commits or none of it does; a half-scored tournament must
// never be visible.
func (s *store) ApplyScoring(tournamentID string, axis scoring.Axis, results []scoring.ProcessedResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `UPDATE tournament_results SET position = ?, points = ? WHERE tournament_id = ? AND player_id = ?`
	if axis == scoring.AxisGross {
		query = `UPDATE tournament_results SET gross_position = ?, gross_points = ? WHERE tournament_id = ? AND player_id = ?`
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		res, err := stmt.Exec(r.Position, r.Points, tournamentID, r.PlayerID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply %s scoring for player %s: %w", axis, r.PlayerID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return err
		}
		if affected == 0 {
			tx.Rollback()
			return fmt.Errorf("no result row for player %s in tournament %s", r.PlayerID, tournamentID)
		}
	}

	return tx.Commit()
}

func (s *store) GetTournamentResults(tournamentID string) ([]ResultRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT tournament_id, player_id, player_name, entered_position, gross_score, net_score, handicap,
		       position, points, gross_position, gross_points
		FROM tournament_results
		WHERE tournament_id = ?
		ORDER BY position IS NULL, position, player_name
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ResultRow
	for rows.Next() {
		var r ResultRow
		var enteredPosition, grossScore, netScore, position, grossPosition sql.NullInt64
		var handicap, points, grossPoints sql.NullFloat64
		err := rows.Scan(
			&r.TournamentID, &r.PlayerID, &r.PlayerName, &enteredPosition, &grossScore, &netScore, &handicap,
			&position, &points, &grossPosition, &grossPoints,
		)
		if err != nil {
			log.Error("Failed to scan result row", "error", err, "tournamentID", tournamentID)
			continue
		}
		r.EnteredPosition = nullableInt(enteredPosition)
		r.GrossScore = nullableInt(grossScore)
		r.NetScore = nullableInt(netScore)
		r.Position = nullableInt(position)
		r.GrossPosition = nullableInt(grossPosition)
		r.Handicap = nullableFloat(handicap)
		r.Points = nullableFloat(points)
		r.GrossPoints = nullableFloat(grossPoints)
		results = append(results, r)
	}
	return results, nil
}

// GetPointsConfig loads the current points configuration snapshot. The caller
// hands it to scoring.NewPointsTable, which owns validation.
func (s *store) GetPointsConfig() (scoring.PointsConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT category, position, points FROM points_config ORDER BY category, position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cfg := make(scoring.PointsConfig)
	for rows.Next() {
		var category scoring.Category
		var row scoring.PointsRow
		if err := rows.Scan(&category, &row.Position, &row.Points); err != nil {
			return nil, err
		}
		cfg[category] = append(cfg[category], row)
	}
	return cfg, rows.Err()
}

// GetSeasonStandings aggregates every scored tournament into the season
// leaderboard, ordered by net points.
func (s *store) GetSeasonStandings() ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(standingsQuery + " ORDER BY net_points DESC, gross_points DESC, p.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.PlayerID, &st.PlayerName, &st.TournamentsPlayed, &st.NetPoints, &st.GrossPoints, &st.Wins); err != nil {
			return nil, err
		}
		standings = append(standings, st)
	}
	return standings, nil
}

const standingsQuery = `
	SELECT
		p.id,
		p.name,
		COUNT(r.points) AS tournaments_played,
		COALESCE(SUM(r.points), 0) AS net_points,
		COALESCE(SUM(r.gross_points), 0) AS gross_points,
		SUM(CASE WHEN r.position = 1 THEN 1 ELSE 0 END) AS wins
	FROM players p
	JOIN tournament_results r ON r.player_id = p.id
	WHERE r.points IS NOT NULL
	GROUP BY p.id, p.name`

// GetStandingByName retrieves the season line for a single player by name.
// It performs a case-insensitive, fuzzy search (e.g., "jim" matches "Jim Hall").
func (s *store) GetStandingByName(playerName string) (*Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + playerName + "%"
	row := s.db.QueryRow(standingsQuery+" HAVING p.name LIKE ? COLLATE NOCASE LIMIT 1", pattern)

	var st Standing
	err := row.Scan(&st.PlayerID, &st.PlayerName, &st.TournamentsPlayed, &st.NetPoints, &st.GrossPoints, &st.Wins)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("No standings found for player matching pattern", "pattern", pattern)
			return nil, fmt.Errorf("player matching '%s' not found", playerName)
		}
		log.Error("Failed to query standing by name", "error", err, "pattern", pattern)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &st, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"tournament_results", "tournaments", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) ClearTournament(tournamentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM tournaments WHERE id = ?", tournamentID)
	if err != nil {
		log.Error("Failed to clear tournament", "error", err, "tournamentID", tournamentID)
	}
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
