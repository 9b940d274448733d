package processor_test

import (
	"errors"
	"testing"

	"github.com/birchwoodgc/league-tracker/internal/league"
	"github.com/birchwoodgc/league-tracker/internal/metrics"
	"github.com/birchwoodgc/league-tracker/internal/notifier"
	"github.com/birchwoodgc/league-tracker/internal/processor"
	"github.com/birchwoodgc/league-tracker/internal/pubsub"
	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func pointsConfig() scoring.PointsConfig {
	rows := func(values ...float64) []scoring.PointsRow {
		out := make([]scoring.PointsRow, len(values))
		for i, v := range values {
			out[i] = scoring.PointsRow{Position: i + 1, Points: v}
		}
		return out
	}
	return scoring.PointsConfig{
		scoring.CategoryMajor:  rows(50, 45, 40, 36, 32),
		scoring.CategoryTour:   rows(40, 36, 32, 28, 24),
		scoring.CategoryLeague: rows(30, 27, 24),
		scoring.CategorySupr:   rows(20, 18),
	}
}

// setup wires a processor against mocks preloaded with one NEW tournament.
func setup(t *testing.T, tournament *league.Tournament, raw []scoring.RawPlayerResult) (*processor.Processor, *league.MockStore, *notifier.Mock, *metrics.Mock, *pubsub.MockPubSubClient) {
	t.Helper()

	store := league.NewMock()
	store.GetTournamentsForProcessingFunc = func() ([]*league.Tournament, error) {
		return []*league.Tournament{tournament}, nil
	}
	store.GetRawResultsFunc = func(tournamentID string) ([]scoring.RawPlayerResult, error) {
		return raw, nil
	}
	store.GetPointsConfigFunc = func() (scoring.PointsConfig, error) {
		return pointsConfig(), nil
	}
	store.GetTournamentResultsFunc = func(tournamentID string) ([]league.ResultRow, error) {
		return []league.ResultRow{}, nil
	}

	notif := notifier.NewMock()
	m := metrics.NewMock()
	ps := pubsub.NewMock("test-project")
	proc := processor.New(store, notif, m, ps, scoring.DefaultFallback())
	return proc, store, notif, m, ps
}

func TestProcessTournaments_FullLifecycle(t *testing.T) {
	tournament := &league.Tournament{
		ID:               "t1",
		Name:             "Spring Open",
		Category:         scoring.CategoryLeague,
		PointsMode:       league.PointsModeCalculated,
		ProcessingStatus: league.StatusNew,
	}
	raw := []scoring.RawPlayerResult{
		{PlayerID: "p1", PlayerName: "A", NetScore: intp(70), GrossScore: intp(80)},
		{PlayerID: "p2", PlayerName: "B", NetScore: intp(72), GrossScore: intp(78)},
		{PlayerID: "p3", PlayerName: "C", NetScore: intp(72), GrossScore: intp(82)},
	}

	proc, store, notif, m, ps := setup(t, tournament, raw)
	proc.ProcessTournaments(false)

	// One pass per axis.
	require.Len(t, store.ApplyScoringCalls, 2)
	net := store.ApplyScoringCalls[0]
	assert.Equal(t, scoring.AxisNet, net.Axis)
	require.Len(t, net.Results, 3)
	assert.Equal(t, "p1", net.Results[0].PlayerID)
	assert.Equal(t, 30.0, net.Results[0].Points)
	// B and C tie for second in the league table: avg(27, 24) = 25.5.
	assert.Equal(t, 2, net.Results[1].Position)
	assert.Equal(t, 25.5, net.Results[1].Points)
	assert.Equal(t, 25.5, net.Results[2].Points)
	assert.True(t, net.Results[1].Tied)

	// Gross always draws from the tour table, whatever the tournament category.
	gross := store.ApplyScoringCalls[1]
	assert.Equal(t, scoring.AxisGross, gross.Axis)
	require.Len(t, gross.Results, 3)
	assert.Equal(t, "p2", gross.Results[0].PlayerID)
	assert.Equal(t, 40.0, gross.Results[0].Points)

	// The state machine ran to completion in one invocation.
	statuses := make([]league.ProcessingStatus, 0, len(store.UpdateProcessingStatusCalls))
	for _, call := range store.UpdateProcessingStatusCalls {
		statuses = append(statuses, call.Status)
	}
	assert.Equal(t, []league.ProcessingStatus{league.StatusScored, league.StatusResultNotified, league.StatusCompleted}, statuses)

	assert.Len(t, notif.SendResultNotificationCalls, 1)
	require.Len(t, ps.SendMessageCalls, 1)
	assert.Equal(t, "standings-updated", ps.SendMessageCalls[0].Topic)
	assert.Equal(t, 1, m.TournamentsProcessed())
	assert.Len(t, m.ScoringDurations(), 1)
}

func TestProcessTournaments_ManualPoints(t *testing.T) {
	tournament := &league.Tournament{
		ID:               "t1",
		Name:             "Committee Cup",
		Category:         scoring.CategoryTour,
		PointsMode:       league.PointsModeManual,
		ProcessingStatus: league.StatusNew,
	}
	// Entered positions are authoritative, even against the scores.
	raw := []scoring.RawPlayerResult{
		{PlayerID: "p1", PlayerName: "A", Position: intp(2), NetScore: intp(70)},
		{PlayerID: "p2", PlayerName: "B", Position: intp(1), NetScore: intp(75)},
	}

	proc, store, _, _, _ := setup(t, tournament, raw)
	proc.ProcessTournaments(false)

	require.Len(t, store.ApplyScoringCalls, 2)
	net := store.ApplyScoringCalls[0]
	require.Len(t, net.Results, 2)
	assert.Equal(t, "p2", net.Results[0].PlayerID)
	assert.Equal(t, 1, net.Results[0].Position)
	assert.Equal(t, 40.0, net.Results[0].Points)
	assert.Equal(t, "p1", net.Results[1].PlayerID)
	assert.Equal(t, 36.0, net.Results[1].Points)
}

func TestProcessTournaments_ConfigurationErrorLeavesTournamentNew(t *testing.T) {
	tournament := &league.Tournament{
		ID:               "t1",
		Name:             "Spring Open",
		Category:         scoring.CategoryTour,
		PointsMode:       league.PointsModeCalculated,
		ProcessingStatus: league.StatusNew,
	}
	raw := []scoring.RawPlayerResult{
		{PlayerID: "p1", PlayerName: "A", NetScore: intp(70)},
	}

	proc, store, notif, m, _ := setup(t, tournament, raw)
	store.GetPointsConfigFunc = func() (scoring.PointsConfig, error) {
		cfg := pointsConfig()
		delete(cfg, scoring.CategoryTour)
		return cfg, nil
	}

	proc.ProcessTournaments(false)

	assert.Empty(t, store.ApplyScoringCalls, "nothing should be persisted")
	assert.Empty(t, store.UpdateProcessingStatusCalls, "status should stay NEW")
	assert.Empty(t, notif.SendResultNotificationCalls)
	assert.Equal(t, 0, m.TournamentsProcessed())
	assert.Equal(t, league.StatusNew, tournament.ProcessingStatus)
}

func TestProcessTournaments_DryRun(t *testing.T) {
	tournament := &league.Tournament{
		ID:               "t1",
		Name:             "Spring Open",
		Category:         scoring.CategoryTour,
		PointsMode:       league.PointsModeCalculated,
		ProcessingStatus: league.StatusNew,
	}
	raw := []scoring.RawPlayerResult{
		{PlayerID: "p1", PlayerName: "A", NetScore: intp(70), GrossScore: intp(80)},
	}

	proc, store, notif, _, ps := setup(t, tournament, raw)
	proc.ProcessTournaments(true)

	assert.Empty(t, store.ApplyScoringCalls, "dry run must not persist scoring")
	assert.Empty(t, store.UpdateProcessingStatusCalls, "dry run must not persist status")
	assert.Empty(t, ps.SendMessageCalls, "dry run must not publish events")
	// The notifier is still exercised; it logs instead of posting in dry run.
	assert.Len(t, notif.SendResultNotificationCalls, 1)
	// The in-memory object still walked the full state machine.
	assert.Equal(t, league.StatusCompleted, tournament.ProcessingStatus)
}

func TestProcessTournaments_NotificationFailureStopsAtScored(t *testing.T) {
	tournament := &league.Tournament{
		ID:               "t1",
		Name:             "Spring Open",
		Category:         scoring.CategoryTour,
		PointsMode:       league.PointsModeCalculated,
		ProcessingStatus: league.StatusNew,
	}
	raw := []scoring.RawPlayerResult{
		{PlayerID: "p1", PlayerName: "A", NetScore: intp(70), GrossScore: intp(80)},
	}

	proc, store, notif, _, ps := setup(t, tournament, raw)
	notif.SendResultNotificationErr = errors.New("slack is down")

	proc.ProcessTournaments(false)

	// Scoring persisted and the tournament reached SCORED, then stalled.
	require.Len(t, store.ApplyScoringCalls, 2)
	require.Len(t, store.UpdateProcessingStatusCalls, 1)
	assert.Equal(t, league.StatusScored, store.UpdateProcessingStatusCalls[0].Status)
	assert.Empty(t, ps.SendMessageCalls)
}

func TestPublishStandings(t *testing.T) {
	tournament := &league.Tournament{ID: "t1", ProcessingStatus: league.StatusCompleted}

	proc, store, notif, _, _ := setup(t, tournament, nil)
	store.GetSeasonStandingsFunc = func() ([]league.Standing, error) {
		return []league.Standing{{PlayerID: "p1", PlayerName: "A", NetPoints: 40}}, nil
	}

	require.NoError(t, proc.PublishStandings(false))
	require.Len(t, notif.SendStandingsCalls, 1)
	assert.Equal(t, "A", notif.SendStandingsCalls[0][0].PlayerName)
}
