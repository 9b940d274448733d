package scoring

import "fmt"

// ConfigurationError reports a points configuration that would corrupt
// ranking semantics: a missing category, gaps in the position sequence, or
// points that increase with position. It is never recovered locally; the
// scoring run aborts and nothing is persisted.
type ConfigurationError struct {
	Category Category
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("points configuration invalid: %s", e.Reason)
	}
	return fmt.Sprintf("points configuration invalid for category %q: %s", e.Category, e.Reason)
}

// FallbackMode selects what a position beyond the tabulated range is worth.
type FallbackMode string

const (
	// FallbackLastRow repeats the last tabulated value for every deeper position.
	FallbackLastRow FallbackMode = "last"
	// FallbackFloor awards a fixed constant for every deeper position.
	FallbackFloor FallbackMode = "floor"
)

// Fallback is the policy for positions past the end of a category's table.
// Every finisher earns something, however far down the field they are.
type Fallback struct {
	Mode  FallbackMode
	Floor float64
}

// DefaultFallback awards a half point token value past the tabulated range.
func DefaultFallback() Fallback {
	return Fallback{Mode: FallbackFloor, Floor: 0.5}
}

// PointsTable is an immutable (category, position) -> points lookup,
// constructed once per scoring run from a configuration snapshot.
type PointsTable struct {
	points   map[Category][]float64
	fallback Fallback
}

// NewPointsTable validates cfg and builds the lookup table. All known
// categories must be present, positions must run 1..n with no gaps, and
// points must not increase as position increases.
func NewPointsTable(cfg PointsConfig, fallback Fallback) (*PointsTable, error) {
	for _, cat := range KnownCategories() {
		if _, ok := cfg[cat]; !ok {
			return nil, &ConfigurationError{Category: cat, Reason: "category missing from configuration"}
		}
	}

	points := make(map[Category][]float64, len(cfg))
	for cat, rows := range cfg {
		if len(rows) == 0 {
			return nil, &ConfigurationError{Category: cat, Reason: "category has no point rows"}
		}
		values := make([]float64, len(rows))
		for i, row := range rows {
			if row.Position != i+1 {
				return nil, &ConfigurationError{
					Category: cat,
					Reason:   fmt.Sprintf("positions must be contiguous from 1, got %d at index %d", row.Position, i),
				}
			}
			if row.Points < 0 {
				return nil, &ConfigurationError{
					Category: cat,
					Reason:   fmt.Sprintf("negative points %v at position %d", row.Points, row.Position),
				}
			}
			if i > 0 && row.Points > values[i-1] {
				return nil, &ConfigurationError{
					Category: cat,
					Reason:   fmt.Sprintf("points increase from %v to %v at position %d", values[i-1], row.Points, row.Position),
				}
			}
			values[i] = row.Points
		}
		points[cat] = values
	}

	if fallback.Mode == "" {
		fallback = DefaultFallback()
	}

	return &PointsTable{points: points, fallback: fallback}, nil
}

// HasCategory reports whether the table carries a point list for category.
func (t *PointsTable) HasCategory(category Category) bool {
	_, ok := t.points[category]
	return ok
}

// Lookup returns the point value for finishing at position in category.
// Positions beyond the tabulated range resolve through the fallback policy
// rather than erroring; an unknown category is a ConfigurationError.
func (t *PointsTable) Lookup(category Category, position int) (float64, error) {
	values, ok := t.points[category]
	if !ok {
		return 0, &ConfigurationError{Category: category, Reason: "category not present in points table"}
	}
	if position < 1 {
		return 0, &ConfigurationError{Category: category, Reason: fmt.Sprintf("position must be >= 1, got %d", position)}
	}
	if position <= len(values) {
		return values[position-1], nil
	}
	if t.fallback.Mode == FallbackLastRow {
		return values[len(values)-1], nil
	}
	return t.fallback.Floor, nil
}
