package textutil

import "strings"

// CleanTitle strips a trailing bracketed or parenthetical annotation from a
// filename-derived title: everything from the first '(' or '[' onward is
// dropped, provided the marker is not at the very start of the string.
// Returns "" for blank input.
func CleanTitle(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cut := len(trimmed)
	for _, marker := range []string{"(", "["} {
		if idx := strings.Index(trimmed, marker); idx > 1 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(trimmed[:cut])
}

// CompareKey reduces a title to a canonical form for equality comparison.
// Two titles name the same game iff their comparison keys are equal.
func CompareKey(raw string) string {
	cleaned := strings.ToLower(CleanTitle(raw))
	if cleaned == "" {
		return ""
	}
	cleaned = strings.ReplaceAll(cleaned, "&", " and ")

	var b strings.Builder
	lastSpace := false
	for _, r := range cleaned {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	tokens := strings.Fields(b.String())
	if len(tokens) > 1 && tokens[len(tokens)-1] == "s" {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing
// whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
