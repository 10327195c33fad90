package normalize

import (
	"regexp"
	"strconv"
)

var durationRegex = regexp.MustCompile(`^(?:(\d+)\s*(?:hr|hrs|h))?\s*(?:(\d+)\s*(?:min|mins|m))?$`)

// ParseDuration parses "5 hr 20 min", "3 hr" or "45 min" into minutes.
func ParseDuration(label string) (int, error) {
	text := Clean(label)
	match := durationRegex.FindStringSubmatch(text)
	if match == nil || (match[1] == "" && match[2] == "") {
		return 0, parseError("duration", label)
	}

	total := 0
	if match[1] != "" {
		hours, _ := strconv.Atoi(match[1])
		total += hours * 60
	}
	if match[2] != "" {
		minutes, _ := strconv.Atoi(match[2])
		total += minutes
	}
	return total, nil
}
