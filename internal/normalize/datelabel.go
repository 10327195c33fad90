package normalize

import (
	"regexp"
	"strings"
	"time"
)

var labelDateRegex = regexp.MustCompile(`\bon ([A-Za-z]+, [A-Za-z]+ \d{1,2})`)

var labelDateLayouts = []string{
	"Monday, January 2",
	"Monday, Jan 2",
	"Mon, January 2",
	"Mon, Jan 2",
}

func parseLabelDate(fragment string, year int) (time.Time, bool) {
	match := labelDateRegex.FindStringSubmatch(fragment)
	if match == nil {
		return time.Time{}, false
	}
	for _, layout := range labelDateLayouts {
		parsed, err := time.Parse(layout, match[1])
		if err != nil {
			continue
		}
		return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// LabelDayOffset reads the accessibility label of a card ("Leaves ... on
// Wednesday, October 8 and arrives ... on Thursday, October 9") and returns
// how many days after departure the arrival is. ok is false unless both
// calendar days are present.
func LabelDayOffset(label string, year int) (offset int, ok bool) {
	text := Clean(label)
	departurePart, arrivalPart, found := strings.Cut(text, " and arrives ")
	if !found {
		return 0, false
	}

	departure, ok := parseLabelDate(departurePart, year)
	if !ok {
		return 0, false
	}
	arrival, ok := parseLabelDate(arrivalPart, year)
	if !ok {
		return 0, false
	}
	// Dec 31 -> Jan 1
	if arrival.Before(departure) {
		arrival = arrival.AddDate(1, 0, 0)
	}
	return int(arrival.Sub(departure).Hours() / 24), true
}
