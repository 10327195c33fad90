package plan

import (
	"fmt"
	"strings"
	"time"

	"flightscout/internal/chrono"
)

var targetLabelLayouts = []string{
	"Mon, Jan 2",
	"Mon, January 2",
	"Monday, Jan 2",
	"Monday, January 2",
	"Jan 2",
	"January 2",
}

// parseTargetDate accepts either an ISO date or the label the date picker
// shows ("Wed, Oct 8"), the latter is placed in the given year.
func parseTargetDate(value string, year int) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(chrono.ISODate, value); err == nil {
		return chrono.Day(parsed), nil
	}

	for _, layout := range targetLabelLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		d := chrono.Date(year, parsed.Month(), parsed.Day())
		if d.Day() != parsed.Day() {
			return time.Time{}, &ConfigError{
				Reason: fmt.Sprintf("target date %q does not exist in %d", value, year),
			}
		}
		return d, nil
	}

	return time.Time{}, &ConfigError{
		Reason: fmt.Sprintf("target date %q is neither YYYY-MM-DD nor a label like \"Wed, Oct 8\"", value),
	}
}
