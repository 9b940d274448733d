package league

import (
	"sync"

	"github.com/birchwoodgc/league-tracker/internal/scoring"
)

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayersFunc               func(players []PlayerInfo) error
	GetAllPlayersFunc               func() ([]PlayerInfo, error)
	IsKnownPlayerFunc               func(playerID string) bool
	UpsertTournamentFunc            func(t *Tournament) error
	GetTournamentFunc               func(tournamentID string) (*Tournament, error)
	GetAllTournamentsFunc           func() ([]*Tournament, error)
	GetTournamentsForProcessingFunc func() ([]*Tournament, error)
	UpdateProcessingStatusFunc      func(tournamentID string, status ProcessingStatus) error
	ReplaceRawResultsFunc           func(tournamentID string, results []scoring.RawPlayerResult) error
	GetRawResultsFunc               func(tournamentID string) ([]scoring.RawPlayerResult, error)
	ApplyScoringFunc                func(tournamentID string, axis scoring.Axis, results []scoring.ProcessedResult) error
	GetTournamentResultsFunc        func(tournamentID string) ([]ResultRow, error)
	GetPointsConfigFunc             func() (scoring.PointsConfig, error)
	GetSeasonStandingsFunc          func() ([]Standing, error)
	GetStandingByNameFunc           func(playerName string) (*Standing, error)
	ClearFunc                       func()
	ClearTournamentFunc             func(tournamentID string)

	// Call records
	UpsertPlayersCalls          [][]PlayerInfo
	UpsertTournamentCalls       []*Tournament
	ReplaceRawResultsCalls      []string
	UpdateProcessingStatusCalls []struct {
		TournamentID string
		Status       ProcessingStatus
	}
	ApplyScoringCalls []struct {
		TournamentID string
		Axis         scoring.Axis
		Results      []scoring.ProcessedResult
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = nil
	m.UpsertTournamentCalls = nil
	m.ReplaceRawResultsCalls = nil
	m.UpdateProcessingStatusCalls = nil
	m.ApplyScoringCalls = nil
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) UpsertTournament(t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertTournamentCalls = append(m.UpsertTournamentCalls, t)
	if m.UpsertTournamentFunc != nil {
		return m.UpsertTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(tournamentID string) (*Tournament, error) {
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) GetAllTournaments() ([]*Tournament, error) {
	if m.GetAllTournamentsFunc != nil {
		return m.GetAllTournamentsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetTournamentsForProcessing() ([]*Tournament, error) {
	if m.GetTournamentsForProcessingFunc != nil {
		return m.GetTournamentsForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(tournamentID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		TournamentID string
		Status       ProcessingStatus
	}{tournamentID, status})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(tournamentID, status)
	}
	return nil
}

func (m *MockStore) ReplaceRawResults(tournamentID string, results []scoring.RawPlayerResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceRawResultsCalls = append(m.ReplaceRawResultsCalls, tournamentID)
	if m.ReplaceRawResultsFunc != nil {
		return m.ReplaceRawResultsFunc(tournamentID, results)
	}
	return nil
}

func (m *MockStore) GetRawResults(tournamentID string) ([]scoring.RawPlayerResult, error) {
	if m.GetRawResultsFunc != nil {
		return m.GetRawResultsFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) ApplyScoring(tournamentID string, axis scoring.Axis, results []scoring.ProcessedResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyScoringCalls = append(m.ApplyScoringCalls, struct {
		TournamentID string
		Axis         scoring.Axis
		Results      []scoring.ProcessedResult
	}{tournamentID, axis, results})
	if m.ApplyScoringFunc != nil {
		return m.ApplyScoringFunc(tournamentID, axis, results)
	}
	return nil
}

func (m *MockStore) GetTournamentResults(tournamentID string) ([]ResultRow, error) {
	if m.GetTournamentResultsFunc != nil {
		return m.GetTournamentResultsFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) GetPointsConfig() (scoring.PointsConfig, error) {
	if m.GetPointsConfigFunc != nil {
		return m.GetPointsConfigFunc()
	}
	return nil, nil
}

func (m *MockStore) GetSeasonStandings() ([]Standing, error) {
	if m.GetSeasonStandingsFunc != nil {
		return m.GetSeasonStandingsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetStandingByName(playerName string) (*Standing, error) {
	if m.GetStandingByNameFunc != nil {
		return m.GetStandingByNameFunc(playerName)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockStore) ClearTournament(tournamentID string) {
	if m.ClearTournamentFunc != nil {
		m.ClearTournamentFunc(tournamentID)
	}
}
