// Package normalize converts the display strings scraped off a result card
// into typed values. Everything in here is pure.
package normalize

import (
	"regexp"

	"flightscout/lib/textutil"
)

var gluedDayMarker = regexp.MustCompile(`([AaPp]\.?[Mm]\.?)([+-]\d)`)

// Clean strips non-breaking and repeated whitespace and separates a day
// marker that was rendered flush against the meridiem ("1:20 AM+1").
func Clean(text string) string {
	text = textutil.Collapse(text)
	return gluedDayMarker.ReplaceAllString(text, "$1 $2")
}
