// Package identifier derives short, filesystem-safe library identifiers
// from game titles. Assignment is deterministic: the same title against the
// same set of prior identifiers always produces the same result.
package identifier

import (
	"strconv"
	"strings"
)

// MaxLength bounds every assigned identifier.
const MaxLength = 16

// fallbackID is used when a title reduces to nothing after filtering.
const fallbackID = "game"

var stopWords = map[string]struct{}{
	"the": {},
	"and": {},
	"a":   {},
}

// Assign derives an identifier for title that does not collide with any id
// in existing. Identifiers are lowercase alphanumeric and at most MaxLength
// characters. Collisions are resolved with a numeric suffix separated by an
// underscore, shrinking the base as needed to stay within MaxLength.
func Assign(title string, existing map[string]struct{}) string {
	candidate := derive(title)
	if candidate == "" {
		candidate = fallbackID
	}

	counter := 2
	for {
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
		base := candidate
		if idx := strings.Index(base, "_"); idx >= 0 {
			base = base[:idx]
		}
		next := base + "_" + strconv.Itoa(counter)
		for len(next) > MaxLength && base != "" {
			base = base[:len(base)-1]
			next = base + "_" + strconv.Itoa(counter)
		}
		candidate = next
		counter++
	}
}

func derive(title string) string {
	var b strings.Builder
	for _, token := range strings.Fields(strings.ToLower(title)) {
		if strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")") {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		for _, r := range token {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
	}
	id := b.String()
	if len(id) > MaxLength {
		id = id[:MaxLength]
	}
	return id
}
