package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// discMarkerPattern matches "(Disk N of M)" annotations, case-insensitive.
// "Disc" spelling is accepted as well.
var discMarkerPattern = regexp.MustCompile(`(?i)\(dis[ck]\s+(\d+)\s+of\s+(\d+)\)`)

type discMarker struct {
	baseTitle string
	number    int
	total     int
}

// parseDiscMarker extracts a multi-disc marker from a filename-derived
// title. The base title is everything before the marker, trimmed.
func parseDiscMarker(title string) (discMarker, bool) {
	loc := discMarkerPattern.FindStringSubmatchIndex(title)
	if loc == nil {
		return discMarker{}, false
	}
	number, err := strconv.Atoi(title[loc[2]:loc[3]])
	if err != nil {
		return discMarker{}, false
	}
	total, err := strconv.Atoi(title[loc[4]:loc[5]])
	if err != nil {
		return discMarker{}, false
	}
	// A disc number outside 1..total is not a usable marker.
	if number < 1 || number > total {
		return discMarker{}, false
	}
	return discMarker{
		baseTitle: strings.TrimSpace(title[:loc[0]]),
		number:    number,
		total:     total,
	}, true
}
