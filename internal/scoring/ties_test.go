package scoring_test

import (
	"testing"

	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func newHandler(t *testing.T, fallback scoring.Fallback) *scoring.TieHandler {
	t.Helper()
	table, err := scoring.NewPointsTable(validConfig(), fallback)
	require.NoError(t, err)
	return scoring.NewTieHandler(table)
}

func TestProcessResultsWithTies(t *testing.T) {
	t.Run("two-way tie for first splits the top two point values", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", PlayerName: "Alice", NetScore: intp(70)},
			{PlayerID: "p2", PlayerName: "Bob", NetScore: intp(68)},
			{PlayerID: "p3", PlayerName: "Carol", NetScore: intp(68)},
		}

		processed, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		require.Len(t, processed, 3)

		// Bob and Carol tie at position 1 and split avg(40, 36) = 38.
		assert.Equal(t, "p2", processed[0].PlayerID)
		assert.Equal(t, 1, processed[0].Position)
		assert.Equal(t, 38.0, processed[0].Points)
		assert.True(t, processed[0].Tied)

		assert.Equal(t, "p3", processed[1].PlayerID)
		assert.Equal(t, 1, processed[1].Position)
		assert.Equal(t, 38.0, processed[1].Points)
		assert.True(t, processed[1].Tied)

		// Alice is third: the tie consumed positions 1 and 2.
		assert.Equal(t, "p1", processed[2].PlayerID)
		assert.Equal(t, 3, processed[2].Position)
		assert.Equal(t, 32.0, processed[2].Points)
		assert.False(t, processed[2].Tied)
	})

	t.Run("gross axis always scores from the tour table", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", GrossScore: intp(80)},
			{PlayerID: "p2", GrossScore: intp(75)},
		}

		// Category is "league" (1st = 30) but gross must read "tour" (1st = 40).
		processed, err := h.ProcessResultsWithTies(results, scoring.CategoryLeague, scoring.AxisGross)
		require.NoError(t, err)
		require.Len(t, processed, 2)
		assert.Equal(t, "p2", processed[0].PlayerID)
		assert.Equal(t, 40.0, processed[0].Points)
		assert.Equal(t, 36.0, processed[1].Points)
	})

	t.Run("empty result list is a valid degenerate case", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		processed, err := h.ProcessResultsWithTies(nil, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		assert.Empty(t, processed)
	})

	t.Run("missing axis score sorts last and still earns points", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", NetScore: nil},
			{PlayerID: "p2", NetScore: intp(72)},
			{PlayerID: "p3", NetScore: intp(69)},
		}

		processed, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		require.Len(t, processed, 3)
		assert.Equal(t, "p3", processed[0].PlayerID)
		assert.Equal(t, "p2", processed[1].PlayerID)
		assert.Equal(t, "p1", processed[2].PlayerID)
		assert.Equal(t, 3, processed[2].Position)
		assert.Equal(t, 32.0, processed[2].Points)
	})

	t.Run("positions beyond the table earn the fallback floor", func(t *testing.T) {
		h := newHandler(t, scoring.Fallback{Mode: scoring.FallbackFloor, Floor: 0.5})

		// Supr is tabulated to position 2 only.
		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", NetScore: intp(70)},
			{PlayerID: "p2", NetScore: intp(71)},
			{PlayerID: "p3", NetScore: intp(72)},
			{PlayerID: "p4", NetScore: intp(73)},
		}

		processed, err := h.ProcessResultsWithTies(results, scoring.CategorySupr, scoring.AxisNet)
		require.NoError(t, err)
		require.Len(t, processed, 4)
		assert.Equal(t, 0.5, processed[2].Points)
		assert.Equal(t, 0.5, processed[3].Points)
		assert.Positive(t, processed[3].Points)
	})

	t.Run("unknown category is a configuration error", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		_, err := h.ProcessResultsWithTies([]scoring.RawPlayerResult{
			{PlayerID: "p1", NetScore: intp(70)},
		}, scoring.Category("unknown"), scoring.AxisNet)

		var cfgErr *scoring.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("three-way tie skips the consumed positions", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", NetScore: intp(68)},
			{PlayerID: "p2", NetScore: intp(70)},
			{PlayerID: "p3", NetScore: intp(70)},
			{PlayerID: "p4", NetScore: intp(70)},
			{PlayerID: "p5", NetScore: intp(74)},
		}

		processed, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		require.Len(t, processed, 5)

		assert.Equal(t, 1, processed[0].Position)
		for _, p := range processed[1:4] {
			assert.Equal(t, 2, p.Position)
			assert.InDelta(t, (36.0+32.0+28.0)/3, p.Points, 1e-9)
			assert.True(t, p.Tied)
		}
		// The block occupied 2,3,4 so the next distinct score lands at 5.
		assert.Equal(t, 5, processed[4].Position)
		assert.Equal(t, 24.0, processed[4].Points)
	})

	t.Run("sum of awarded points matches the untied total", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())
		table, err := scoring.NewPointsTable(validConfig(), scoring.DefaultFallback())
		require.NoError(t, err)

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", NetScore: intp(70)},
			{PlayerID: "p2", NetScore: intp(70)},
			{PlayerID: "p3", NetScore: intp(70)},
			{PlayerID: "p4", NetScore: intp(72)},
		}

		processed, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)

		var awarded, untied float64
		for i, p := range processed {
			awarded += p.Points
			v, err := table.Lookup(scoring.CategoryTour, i+1)
			require.NoError(t, err)
			untied += v
		}
		assert.InDelta(t, untied, awarded, 1e-9)
	})

	t.Run("better score never ranks below a worse one", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", NetScore: intp(74)},
			{PlayerID: "p2", NetScore: intp(69)},
			{PlayerID: "p3", NetScore: intp(71)},
			{PlayerID: "p4", NetScore: intp(69)},
			{PlayerID: "p5", NetScore: intp(80)},
		}

		processed, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)

		for i := 1; i < len(processed); i++ {
			prev, cur := processed[i-1], processed[i]
			assert.LessOrEqual(t, prev.Position, cur.Position)
			assert.GreaterOrEqual(t, prev.Points, cur.Points)
		}
	})

	t.Run("identical inputs yield identical outputs", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", NetScore: intp(70)},
			{PlayerID: "p2", NetScore: intp(70)},
			{PlayerID: "p3", NetScore: intp(73)},
		}

		first, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		second, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// The input slice itself is untouched.
		assert.Equal(t, "p1", results[0].PlayerID)
	})

	t.Run("tied players keep their relative input order", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "late", NetScore: intp(70)},
			{PlayerID: "early", NetScore: intp(70)},
		}

		processed, err := h.ProcessResultsWithTies(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		require.Len(t, processed, 2)
		assert.Equal(t, "late", processed[0].PlayerID)
		assert.Equal(t, "early", processed[1].PlayerID)
	})
}

func TestAssignManualPoints(t *testing.T) {
	t.Run("entered positions are honored without averaging", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", Position: intp(2)},
			{PlayerID: "p2", Position: intp(1)},
			{PlayerID: "p3", Position: intp(3)},
		}

		processed, err := h.AssignManualPoints(results, scoring.CategoryMajor, scoring.AxisNet)
		require.NoError(t, err)
		require.Len(t, processed, 3)
		assert.Equal(t, "p2", processed[0].PlayerID)
		assert.Equal(t, 50.0, processed[0].Points)
		assert.Equal(t, "p1", processed[1].PlayerID)
		assert.Equal(t, 45.0, processed[1].Points)
		assert.Equal(t, "p3", processed[2].PlayerID)
		assert.Equal(t, 40.0, processed[2].Points)
	})

	t.Run("shared entered positions are flagged tied", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", Position: intp(1)},
			{PlayerID: "p2", Position: intp(1)},
			{PlayerID: "p3", Position: intp(3)},
		}

		processed, err := h.AssignManualPoints(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		assert.True(t, processed[0].Tied)
		assert.True(t, processed[1].Tied)
		assert.False(t, processed[2].Tied)
	})

	t.Run("players without a position fall in after the field", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{
			{PlayerID: "p1", Position: intp(1)},
			{PlayerID: "p2"},
			{PlayerID: "p3", Position: intp(2)},
		}

		processed, err := h.AssignManualPoints(results, scoring.CategoryTour, scoring.AxisNet)
		require.NoError(t, err)
		require.Len(t, processed, 3)
		assert.Equal(t, "p2", processed[2].PlayerID)
		assert.Equal(t, 3, processed[2].Position)
	})

	t.Run("gross axis reads the tour table in manual mode too", func(t *testing.T) {
		h := newHandler(t, scoring.DefaultFallback())

		results := []scoring.RawPlayerResult{{PlayerID: "p1", Position: intp(1)}}

		processed, err := h.AssignManualPoints(results, scoring.CategoryMajor, scoring.AxisGross)
		require.NoError(t, err)
		assert.Equal(t, 40.0, processed[0].Points)
	})
}
