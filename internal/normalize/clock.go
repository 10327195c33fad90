package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Clock is a local time of day.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(?:([AaPp])\.?[Mm]\.?)?(?:\s*([+-]\d+))?$`)

func parseClock(field, label string) (Clock, string, error) {
	text := Clean(label)
	match := clockRegex.FindStringSubmatch(text)
	if match == nil {
		return Clock{}, "", parseError(field, label)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if minute > 59 {
		return Clock{}, "", parseError(field, label)
	}

	switch strings.ToLower(match[3]) {
	case "a":
		if hour < 1 || hour > 12 {
			return Clock{}, "", parseError(field, label)
		}
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour < 1 || hour > 12 {
			return Clock{}, "", parseError(field, label)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		// no meridiem, take it as a 24 hour clock
		if hour > 23 {
			return Clock{}, "", parseError(field, label)
		}
	}

	return Clock{Hour: hour, Minute: minute}, match[4], nil
}

// ParseClock parses a departure label like "11:50 PM" into a 24 hour Clock.
func ParseClock(label string) (Clock, error) {
	clock, marker, err := parseClock("departure", label)
	if err != nil {
		return Clock{}, err
	}
	if marker != "" {
		return Clock{}, parseError("departure", label)
	}
	return clock, nil
}

// ParseArrival parses an arrival label, which may carry an explicit day
// marker ("1:20 AM+1"). hasMarker reports whether the marker was present.
func ParseArrival(label string) (clock Clock, marker int, hasMarker bool, err error) {
	clock, rawMarker, err := parseClock("arrival", label)
	if err != nil {
		return Clock{}, 0, false, err
	}
	if rawMarker == "" {
		return clock, 0, false, nil
	}
	marker, err = strconv.Atoi(rawMarker)
	if err != nil || marker < 0 {
		return Clock{}, 0, false, parseError("arrival", label)
	}
	return clock, marker, true, nil
}

// ResolveDayOffset decides how many calendar days after departure the
// arrival lands on. An explicit marker always wins. Without one this is a
// heuristic: an arrival clock strictly earlier than the departure clock is
// assumed to be the next day. It is wrong for trips of 24 hours or more
// and for multi-day layovers, which only the marker can express.
func ResolveDayOffset(departure, arrival Clock, marker int, hasMarker bool) int {
	if hasMarker {
		return marker
	}
	if arrival.Before(departure) {
		return 1
	}
	return 0
}
