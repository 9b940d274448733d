package scoring

import "sort"

// TieHandler converts unordered raw results into ranked, pointed, tie-aware
// results for one scoring axis. It holds no state beyond the points table it
// was constructed with, so a single handler is safe to share across
// concurrent scoring runs.
type TieHandler struct {
	table *PointsTable
}

// NewTieHandler creates a TieHandler backed by table.
func NewTieHandler(table *PointsTable) *TieHandler {
	return &TieHandler{table: table}
}

// lookupCategory applies the gross override: gross scoring always draws from
// the "tour" point table, whatever the tournament's own category. Net scoring
// uses the tournament's category. This is a league rule, not a bug.
func lookupCategory(category Category, axis Axis) Category {
	if axis == AxisGross {
		return CategoryTour
	}
	return category
}

// axisScore extracts the score for the requested axis. ok is false when the
// player has no score on that axis; such players sort below every real score.
func axisScore(r RawPlayerResult, axis Axis) (score int, ok bool) {
	var v *int
	if axis == AxisGross {
		v = r.GrossScore
	} else {
		v = r.NetScore
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// ProcessResultsWithTies sorts results ascending by the axis score, groups
// equal scores into tie blocks, assigns skip-ranked positions (1,2,2,4) and
// awards each tied player the mean of the point values the block would have
// earned in consecutive unique positions. The total points handed out is the
// same as if no tie had occurred.
//
// An empty result list is a valid degenerate case and returns an empty list.
// A category absent from the points table returns a ConfigurationError.
func (h *TieHandler) ProcessResultsWithTies(results []RawPlayerResult, category Category, axis Axis) ([]ProcessedResult, error) {
	cat := lookupCategory(category, axis)
	if !h.table.HasCategory(cat) {
		return nil, &ConfigurationError{Category: cat, Reason: "category not present in points table"}
	}
	if len(results) == 0 {
		return []ProcessedResult{}, nil
	}

	sorted := make([]RawPlayerResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, iOK := axisScore(sorted[i], axis)
		sj, jOK := axisScore(sorted[j], axis)
		if iOK != jOK {
			return iOK // missing scores sort to the bottom
		}
		if !iOK {
			return false
		}
		return si < sj
	})

	processed := make([]ProcessedResult, 0, len(sorted))
	position := 1
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sameScore(sorted[start], sorted[end], axis) {
			end++
		}
		size := end - start

		points, err := h.averagePoints(cat, position, size)
		if err != nil {
			return nil, err
		}

		for i := start; i < end; i++ {
			r := sorted[i]
			processed = append(processed, ProcessedResult{
				PlayerID:   r.PlayerID,
				PlayerName: r.PlayerName,
				GrossScore: r.GrossScore,
				NetScore:   r.NetScore,
				Handicap:   r.Handicap,
				Position:   position,
				Points:     points,
				Tied:       size > 1,
			})
		}

		position += size
		start = end
	}

	return processed, nil
}

// AssignManualPoints honors manually entered finishing positions instead of
// ranking by score. Each player's points are looked up at their entered
// position (the gross override still applies); no averaging occurs because
// the positions are the uploader's decision. Players without an entered
// position fall in after the last entered position, in input order.
func (h *TieHandler) AssignManualPoints(results []RawPlayerResult, category Category, axis Axis) ([]ProcessedResult, error) {
	cat := lookupCategory(category, axis)
	if !h.table.HasCategory(cat) {
		return nil, &ConfigurationError{Category: cat, Reason: "category not present in points table"}
	}
	if len(results) == 0 {
		return []ProcessedResult{}, nil
	}

	maxEntered := 0
	counts := make(map[int]int)
	for _, r := range results {
		if r.Position != nil {
			counts[*r.Position]++
			if *r.Position > maxEntered {
				maxEntered = *r.Position
			}
		}
	}

	processed := make([]ProcessedResult, 0, len(results))
	next := maxEntered + 1
	for _, r := range results {
		pos := next
		if r.Position != nil {
			pos = *r.Position
		} else {
			next++
		}

		points, err := h.table.Lookup(cat, pos)
		if err != nil {
			return nil, err
		}
		processed = append(processed, ProcessedResult{
			PlayerID:   r.PlayerID,
			PlayerName: r.PlayerName,
			GrossScore: r.GrossScore,
			NetScore:   r.NetScore,
			Handicap:   r.Handicap,
			Position:   pos,
			Points:     points,
			Tied:       counts[pos] > 1,
		})
	}

	sort.SliceStable(processed, func(i, j int) bool {
		return processed[i].Position < processed[j].Position
	})
	return processed, nil
}

func sameScore(a, b RawPlayerResult, axis Axis) bool {
	sa, aOK := axisScore(a, axis)
	sb, bOK := axisScore(b, axis)
	if aOK != bOK {
		return false
	}
	if !aOK {
		return true // all missing scores share one tie block at the bottom
	}
	return sa == sb
}

// averagePoints is the mean of the point values positions p..p+n-1 would have
// earned individually, so a tie block splits exactly what it occupies.
func (h *TieHandler) averagePoints(category Category, position, size int) (float64, error) {
	var sum float64
	for i := 0; i < size; i++ {
		v, err := h.table.Lookup(category, position+i)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(size), nil
}
