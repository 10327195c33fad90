package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var stopsRegex = regexp.MustCompile(`(?i)^(\d+)\s*stops?\b(.*)$`)

// ParseStops turns a stopover label into a count and the trailing layover
// description. An empty label is a nonstop card that omitted the label,
// anything starting with "nonstop" counts as zero stops.
func ParseStops(label string) (count int, description string, err error) {
	text := Clean(label)
	if text == "" {
		return 0, "", nil
	}

	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "nonstop") || strings.HasPrefix(lower, "non-stop") {
		return 0, "", nil
	}

	match := stopsRegex.FindStringSubmatch(text)
	if match == nil {
		return 0, "", parseError("stops", label)
	}
	count, err = strconv.Atoi(match[1])
	if err != nil {
		return 0, "", parseError("stops", label)
	}
	return count, strings.TrimSpace(match[2]), nil
}
