package cardparse

import (
	"fmt"

	"deckforge/internal/profile"
)

// Parse routes text to the parser for the profile's format tag. An
// unrecognized tag most likely means a corrupted or legacy profile, so it
// degrades to the option-based parser with a warning instead of failing.
func Parse(text string, format profile.Format) ([]Record, []Warning) {
	switch format {
	case profile.FormatOptionBased:
		return parseOptionBased(text)
	case profile.FormatFillInBlank:
		return parseFillInBlank(text)
	case profile.FormatFrontBack:
		return parseFrontBack(text)
	default:
		records, warnings := parseOptionBased(text)
		warnings = append([]Warning{{
			Reason: fmt.Sprintf("unrecognized format tag %q, falling back to option-based", format),
		}}, warnings...)
		return records, warnings
	}
}
