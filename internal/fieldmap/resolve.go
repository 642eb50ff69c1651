// Package fieldmap reconciles a profile's logical slots with the
// destination note type's user-defined field names.
package fieldmap

import (
	"strings"

	"deckforge/internal/profile"
)

// Resolution maps each resolved slot to a concrete destination field name.
// A slot absent from the map is unmapped; the import path may still apply
// a positional fallback on top of this.
type Resolution map[profile.Slot]string

// Resolve assigns a destination field to each slot of the format.
//
// An explicit mapping that exactly names a schema field always wins,
// regardless of prior claims. Otherwise the slot's label is tokenized and
// matched case-insensitively as a substring against the schema, preferring
// fields not already claimed by an earlier slot in this pass. When no
// unclaimed field matches, a claimed field may be re-claimed rather than
// leaving the slot unmapped; with fewer fields than slots this can assign
// the same field twice, which is the long-observed behavior and is kept
// deliberately. The result is best-effort and is surfaced to the user
// before import.
func Resolve(format profile.Format, mapping map[profile.Slot]string, schema []string) Resolution {
	res := make(Resolution)
	claimed := make(map[string]bool, len(schema))
	slots := format.Slots()

	for _, slot := range slots {
		want := mapping[slot]
		if want == "" {
			continue
		}
		for _, field := range schema {
			if field == want {
				res[slot] = field
				claimed[field] = true
				break
			}
		}
	}

	for _, slot := range slots {
		if _, done := res[slot]; done {
			continue
		}
		if field, ok := fuzzyMatch(slot, schema, claimed); ok {
			res[slot] = field
			claimed[field] = true
		}
	}

	return res
}

func fuzzyMatch(slot profile.Slot, schema []string, claimed map[string]bool) (string, bool) {
	tokens := labelTokens(slot.Label())

	for _, token := range tokens {
		for _, field := range schema {
			if !claimed[field] && containsFold(field, token) {
				return field, true
			}
		}
	}
	for _, token := range tokens {
		for _, field := range schema {
			if containsFold(field, token) {
				return field, true
			}
		}
	}
	return "", false
}

// labelTokens splits a slot label on whitespace, slashes and parentheses
// and discards tokens of two characters or fewer.
func labelTokens(label string) []string {
	fields := strings.FieldsFunc(label, func(r rune) bool {
		switch r {
		case ' ', '\t', '/', '(', ')':
			return true
		}
		return false
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
