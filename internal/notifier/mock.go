package notifier

import (
	"sync"

	"github.com/birchwoodgc/league-tracker/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Errors to return from the send methods
	SendResultNotificationErr error
	SendStandingsErr          error

	// Call records
	SendResultNotificationCalls []struct {
		Tournament *league.Tournament
		Results    []league.ResultRow
	}
	SendStandingsCalls      [][]league.Standing
	SendPlayerStandingCalls []struct {
		Standing *league.Standing
		Query    string
	}
	SendPlayerNotFoundCalls []string

	// Spies for format functions
	FormatStandingsResponseFunc      func(standings []league.Standing) (any, error)
	FormatPlayerStandingResponseFunc func(standing *league.Standing, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records for format functions
	LastStandingsResponse      any
	LastPlayerStandingResponse any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendStandingsCalls = nil
	m.SendPlayerStandingCalls = nil
	m.SendPlayerNotFoundCalls = nil
	m.LastStandingsResponse = nil
	m.LastPlayerStandingResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendResultNotification(tournament *league.Tournament, results []league.ResultRow, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Tournament *league.Tournament
		Results    []league.ResultRow
	}{tournament, results})
	return m.SendResultNotificationErr
}

func (m *Mock) SendStandings(standings []league.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, standings)
	return m.SendStandingsErr
}

func (m *Mock) SendPlayerStanding(standing *league.Standing, query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerStandingCalls = append(m.SendPlayerStandingCalls, struct {
		Standing *league.Standing
		Query    string
	}{standing, query})
	return nil
}

func (m *Mock) SendPlayerNotFound(query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, query)
	return nil
}

func (m *Mock) FormatStandingsResponse(standings []league.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		resp, err := m.FormatStandingsResponseFunc(standings)
		m.LastStandingsResponse = resp
		return resp, err
	}
	return "formatted_standings", nil
}

func (m *Mock) FormatPlayerStandingResponse(standing *league.Standing, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStandingResponseFunc != nil {
		resp, err := m.FormatPlayerStandingResponseFunc(standing, query)
		m.LastPlayerStandingResponse = resp
		return resp, err
	}
	return "formatted_player_standing", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	return "formatted_player_not_found", nil
}
