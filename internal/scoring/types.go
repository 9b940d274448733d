package scoring

// Category classifies a tournament and selects which point table applies.
type Category string

const (
	CategoryMajor  Category = "major"
	CategoryTour   Category = "tour"
	CategoryLeague Category = "league"
	CategorySupr   Category = "supr"
)

// KnownCategories returns the categories every points configuration must cover.
func KnownCategories() []Category {
	return []Category{CategoryMajor, CategoryTour, CategoryLeague, CategorySupr}
}

// Axis is one of the two independent scoring tracks. Each axis produces its
// own position and points for the same tournament.
type Axis string

const (
	AxisNet   Axis = "net"
	AxisGross Axis = "gross"
)

// PointsRow is one (position, points) pair in a category's point table.
type PointsRow struct {
	Position int     `json:"position"`
	Points   float64 `json:"points"`
}

// PointsConfig maps each category to its ordered point table, as loaded from
// the points_config table.
type PointsConfig map[Category][]PointsRow

// RawPlayerResult is one player's normalized performance in one tournament.
// Score fields are pointers because uploads routinely omit them; a nil score
// on the requested axis sorts last, it never fails the run.
type RawPlayerResult struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Position   *int     `json:"position,omitempty"` // manually entered finishing position, if any
	GrossScore *int     `json:"gross_score,omitempty"`
	NetScore   *int     `json:"net_score,omitempty"`
	Handicap   *float64 `json:"handicap,omitempty"`
}

// ProcessedResult is a RawPlayerResult with its finishing position and point
// award resolved for one axis.
type ProcessedResult struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	GrossScore *int     `json:"gross_score,omitempty"`
	NetScore   *int     `json:"net_score,omitempty"`
	Handicap   *float64 `json:"handicap,omitempty"`
	Position   int      `json:"position"`
	Points     float64  `json:"points"`
	Tied       bool     `json:"tied"`
}
