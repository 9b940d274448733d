package scoring_test

import (
	"errors"
	"testing"

	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() scoring.PointsConfig {
	return scoring.PointsConfig{
		scoring.CategoryMajor: {
			{Position: 1, Points: 50}, {Position: 2, Points: 45}, {Position: 3, Points: 40},
			{Position: 4, Points: 36}, {Position: 5, Points: 32},
		},
		scoring.CategoryTour: {
			{Position: 1, Points: 40}, {Position: 2, Points: 36}, {Position: 3, Points: 32},
			{Position: 4, Points: 28}, {Position: 5, Points: 24}, {Position: 6, Points: 20},
		},
		scoring.CategoryLeague: {
			{Position: 1, Points: 30}, {Position: 2, Points: 27}, {Position: 3, Points: 24},
		},
		scoring.CategorySupr: {
			{Position: 1, Points: 20}, {Position: 2, Points: 18},
		},
	}
}

func TestNewPointsTable(t *testing.T) {
	t.Run("accepts a valid configuration", func(t *testing.T) {
		table, err := scoring.NewPointsTable(validConfig(), scoring.DefaultFallback())
		require.NoError(t, err)

		points, err := table.Lookup(scoring.CategoryTour, 1)
		require.NoError(t, err)
		assert.Equal(t, 40.0, points)

		points, err = table.Lookup(scoring.CategoryMajor, 5)
		require.NoError(t, err)
		assert.Equal(t, 32.0, points)
	})

	t.Run("rejects a missing known category", func(t *testing.T) {
		cfg := validConfig()
		delete(cfg, scoring.CategorySupr)

		_, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		var cfgErr *scoring.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, scoring.CategorySupr, cfgErr.Category)
	})

	t.Run("rejects a gap in positions", func(t *testing.T) {
		cfg := validConfig()
		cfg[scoring.CategoryLeague] = []scoring.PointsRow{
			{Position: 1, Points: 30}, {Position: 3, Points: 24},
		}

		_, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		var cfgErr *scoring.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, scoring.CategoryLeague, cfgErr.Category)
	})

	t.Run("rejects positions not starting at 1", func(t *testing.T) {
		cfg := validConfig()
		cfg[scoring.CategoryLeague] = []scoring.PointsRow{
			{Position: 2, Points: 30}, {Position: 3, Points: 24},
		}

		_, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		assert.Error(t, err)
	})

	t.Run("rejects points increasing with position", func(t *testing.T) {
		cfg := validConfig()
		cfg[scoring.CategoryTour] = []scoring.PointsRow{
			{Position: 1, Points: 40}, {Position: 2, Points: 41},
		}

		_, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		var cfgErr *scoring.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, scoring.CategoryTour, cfgErr.Category)
	})

	t.Run("allows equal points at consecutive positions", func(t *testing.T) {
		cfg := validConfig()
		cfg[scoring.CategorySupr] = []scoring.PointsRow{
			{Position: 1, Points: 20}, {Position: 2, Points: 20}, {Position: 3, Points: 18},
		}

		_, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		assert.NoError(t, err)
	})

	t.Run("rejects negative points", func(t *testing.T) {
		cfg := validConfig()
		cfg[scoring.CategorySupr] = []scoring.PointsRow{
			{Position: 1, Points: 20}, {Position: 2, Points: -1},
		}

		_, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		assert.Error(t, err)
	})

	t.Run("rejects an empty category table", func(t *testing.T) {
		cfg := validConfig()
		cfg[scoring.CategoryLeague] = nil

		_, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		assert.Error(t, err)
	})

	t.Run("tolerates extra categories beyond the known four", func(t *testing.T) {
		cfg := validConfig()
		cfg[scoring.Category("invitational")] = []scoring.PointsRow{{Position: 1, Points: 10}}

		table, err := scoring.NewPointsTable(cfg, scoring.DefaultFallback())
		require.NoError(t, err)

		points, err := table.Lookup(scoring.Category("invitational"), 1)
		require.NoError(t, err)
		assert.Equal(t, 10.0, points)
	})
}

func TestPointsTableLookup(t *testing.T) {
	t.Run("floor fallback beyond the tabulated range", func(t *testing.T) {
		table, err := scoring.NewPointsTable(validConfig(), scoring.Fallback{Mode: scoring.FallbackFloor, Floor: 0.5})
		require.NoError(t, err)

		// Position 200 against a table tabulated to position 6.
		points, err := table.Lookup(scoring.CategoryTour, 200)
		require.NoError(t, err)
		assert.Equal(t, 0.5, points)
	})

	t.Run("last-row fallback repeats the final tabulated value", func(t *testing.T) {
		table, err := scoring.NewPointsTable(validConfig(), scoring.Fallback{Mode: scoring.FallbackLastRow})
		require.NoError(t, err)

		points, err := table.Lookup(scoring.CategorySupr, 50)
		require.NoError(t, err)
		assert.Equal(t, 18.0, points)
	})

	t.Run("unknown category is a configuration error", func(t *testing.T) {
		table, err := scoring.NewPointsTable(validConfig(), scoring.DefaultFallback())
		require.NoError(t, err)

		_, err = table.Lookup(scoring.Category("unknown"), 1)
		var cfgErr *scoring.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("position below 1 is rejected", func(t *testing.T) {
		table, err := scoring.NewPointsTable(validConfig(), scoring.DefaultFallback())
		require.NoError(t, err)

		_, err = table.Lookup(scoring.CategoryTour, 0)
		assert.Error(t, err)
	})
}
