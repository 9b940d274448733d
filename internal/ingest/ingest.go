// Package ingest turns an uploaded results spreadsheet into raw player
// results. The first sheet is read; the first row is treated as a header and
// matched case-insensitively against a few common column spellings.
package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/birchwoodgc/league-tracker/internal/scoring"
	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"
)

// columns maps a canonical field to the header spellings that select it.
var columns = map[string][]string{
	"player":   {"player", "name", "golfer", "player name"},
	"position": {"pos", "position", "place"},
	"gross":    {"gross", "gross score", "total"},
	"net":      {"net", "net score"},
	"handicap": {"hcp", "hdcp", "handicap"},
}

// ParseWorkbook reads an xlsx results sheet into raw player results. A row
// needs at least a player name; score and position cells that are blank or
// non-numeric come back as nil so scoring can rank them last.
func ParseWorkbook(r io.Reader) ([]scoring.RawPlayerResult, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no result rows", sheets[0])
	}

	fields, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var results []scoring.RawPlayerResult
	for i, row := range rows[1:] {
		name := cell(row, fields["player"])
		if name == "" {
			continue
		}
		result := scoring.RawPlayerResult{
			PlayerID:   playerID(name),
			PlayerName: name,
			Position:   intCell(row, fields, "position"),
			GrossScore: intCell(row, fields, "gross"),
			NetScore:   intCell(row, fields, "net"),
			Handicap:   floatCell(row, fields, "handicap"),
		}
		if result.GrossScore == nil && result.NetScore == nil && result.Position == nil {
			log.Warn("Skipping row with no scores or position", "row", i+2, "player", name)
			continue
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("sheet %q has no usable result rows", sheets[0])
	}
	return results, nil
}

// playerID derives a stable identifier from the player name so repeat
// uploads of the same field resolve to the same players.
func playerID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// mapHeader resolves each canonical field to its column index, or -1 when the
// sheet does not carry it. A player column is mandatory.
func mapHeader(header []string) (map[string]int, error) {
	fields := map[string]int{
		"player":   -1,
		"position": -1,
		"gross":    -1,
		"net":      -1,
		"handicap": -1,
	}
	for idx, raw := range header {
		label := strings.ToLower(strings.TrimSpace(raw))
		for field, spellings := range columns {
			if fields[field] != -1 {
				continue
			}
			for _, spelling := range spellings {
				if label == spelling {
					fields[field] = idx
				}
			}
		}
	}
	if fields["player"] == -1 {
		return nil, fmt.Errorf("header has no player column: %v", header)
	}
	if fields["gross"] == -1 && fields["net"] == -1 && fields["position"] == -1 {
		return nil, fmt.Errorf("header has no score or position column: %v", header)
	}
	return fields, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intCell(row []string, fields map[string]int, field string) *int {
	raw := cell(row, fields[field])
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		// Some sheets carry "T3" style tied positions or "WD"/"DQ" markers.
		trimmed := strings.TrimPrefix(strings.ToUpper(raw), "T")
		value, err = strconv.Atoi(trimmed)
		if err != nil {
			return nil
		}
	}
	return &value
}

func floatCell(row []string, fields map[string]int, field string) *float64 {
	raw := cell(row, fields[field])
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}
