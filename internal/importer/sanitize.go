package importer

import "strings"

// FallbackDeckName is used when sanitization strips a name down to
// nothing.
const FallbackDeckName = "Imported"

// deckNameSanitizer strips the characters that are illegal in deck names.
var deckNameSanitizer = strings.NewReplacer(
	`\`, "", "/", "", ":", "", "*", "", "?", "", `"`, "", "<", "", ">", "", "|", "",
)

// SanitizeDeckName removes illegal characters from a single deck-name
// segment. An empty result falls back to "Imported".
func SanitizeDeckName(name string) string {
	clean := strings.TrimSpace(deckNameSanitizer.Replace(name))
	if clean == "" {
		return FallbackDeckName
	}
	return clean
}

// SanitizeDeckPath sanitizes a hierarchical "::"-separated deck path
// segment by segment, collapsing segments that strip away entirely. An
// empty result falls back to "Imported".
func SanitizeDeckPath(path string) string {
	var segments []string
	for _, seg := range strings.Split(path, "::") {
		clean := strings.TrimSpace(deckNameSanitizer.Replace(seg))
		if clean != "" {
			segments = append(segments, clean)
		}
	}
	if len(segments) == 0 {
		return FallbackDeckName
	}
	return strings.Join(segments, "::")
}
