// Package cardparse turns the pipe-delimited micro-format returned by the
// AI into structured card records.
//
// Wire contract: one card per line, columns separated by `|`, column 0
// always the subtopic used for deck routing. `<br>` is the only permitted
// multi-value separator within a column; cloze blanks carry the literal
// substring `{{c`. Malformed lines are skipped with a warning, never
// failing the batch.
package cardparse

import (
	"fmt"
	"strings"

	"deckforge/internal/profile"
)

// Record is the parsed output of one line of AI response: slot contents
// plus the subtopic used only for deck placement.
type Record struct {
	Subtopic string
	Slots    map[profile.Slot]string
}

// Warning describes a line that was skipped or a degraded parse decision.
type Warning struct {
	Line   int // 1-based; 0 when not tied to a line
	Reason string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
	}
	return w.Reason
}

// ClozeMarker is the substring every fill-in-the-blank text column must
// contain.
const ClozeMarker = "{{c"

// lineValidator checks the trimmed columns of one candidate line and
// returns a non-empty reason to reject it.
type lineValidator func(cols []string) string

// parseLines implements the rules shared by all three formats: blank
// lines, comment lines (#) and lines without a separator are skipped;
// short lines and validation failures are skipped with a warning.
func parseLines(text string, format profile.Format, validate lineValidator) ([]Record, []Warning) {
	var records []Record
	var warnings []Warning

	slots := format.Slots()
	minCols := format.MinColumns()

	for i, raw := range strings.Split(text, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "|") {
			continue
		}

		cols := strings.Split(line, "|")
		if len(cols) < minCols {
			warnings = append(warnings, Warning{
				Line:   lineNum,
				Reason: fmt.Sprintf("has only %d of %d required columns, skipping", len(cols), minCols),
			})
			continue
		}

		for j := range cols {
			cols[j] = strings.TrimSpace(cols[j])
		}

		if reason := validate(cols); reason != "" {
			warnings = append(warnings, Warning{Line: lineNum, Reason: reason + ", skipping"})
			continue
		}

		rec := Record{Subtopic: cols[0], Slots: make(map[profile.Slot]string, len(slots))}
		for j, slot := range slots {
			if j+1 < len(cols) {
				rec.Slots[slot] = cols[j+1]
			} else {
				rec.Slots[slot] = ""
			}
		}
		records = append(records, rec)
	}

	return records, warnings
}

func parseOptionBased(text string) ([]Record, []Warning) {
	return parseLines(text, profile.FormatOptionBased, func(cols []string) string {
		if cols[1] == "" || cols[2] == "" {
			return "missing question or choices"
		}
		return ""
	})
}

func parseFillInBlank(text string) ([]Record, []Warning) {
	return parseLines(text, profile.FormatFillInBlank, func(cols []string) string {
		if cols[1] == "" {
			return "missing cloze text"
		}
		if !strings.Contains(cols[1], ClozeMarker) {
			return "cloze text has no " + ClozeMarker + " deletion"
		}
		return ""
	})
}

func parseFrontBack(text string) ([]Record, []Warning) {
	return parseLines(text, profile.FormatFrontBack, func(cols []string) string {
		if cols[1] == "" || cols[2] == "" {
			return "missing front or back"
		}
		return ""
	})
}
