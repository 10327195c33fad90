package normalize

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	require.Equal(t, "1:20 AM +1", Clean("1:20 AM+1"))
	require.Equal(t, "Garuda Indonesia", Clean(" Garuda  Indonesia "))
	require.Equal(t, "5 hr 20 min", Clean("5 hr\n20 min"))
}

func TestParseClock(t *testing.T) {
	table := []struct {
		input    string
		expected Clock
	}{
		{input: "11:50 PM", expected: Clock{Hour: 23, Minute: 50}},
		{input: "12:05 AM", expected: Clock{Hour: 0, Minute: 5}},
		{input: "12:30 PM", expected: Clock{Hour: 12, Minute: 30}},
		{input: "9:00 AM", expected: Clock{Hour: 9, Minute: 0}},
		{input: "7:15pm", expected: Clock{Hour: 19, Minute: 15}},
		{input: "18:40", expected: Clock{Hour: 18, Minute: 40}},
	}
	for _, row := range table {
		clock, err := ParseClock(row.input)
		require.NoError(t, err, row.input)
		require.Equal(t, row.expected, clock, row.input)
	}

	for _, bad := range []string{"", "noon", "13:00 PM", "9:75 AM", "25:00", "11:50 PM+1"} {
		_, err := ParseClock(bad)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), bad)
	}
}

func TestParseArrival(t *testing.T) {
	clock, marker, hasMarker, err := ParseArrival("1:20 AM+1")
	require.NoError(t, err)
	require.Equal(t, Clock{Hour: 1, Minute: 20}, clock)
	require.True(t, hasMarker)
	require.Equal(t, 1, marker)

	clock, marker, hasMarker, err = ParseArrival("6:05 PM +2")
	require.NoError(t, err)
	require.Equal(t, Clock{Hour: 18, Minute: 5}, clock)
	require.True(t, hasMarker)
	require.Equal(t, 2, marker)

	clock, _, hasMarker, err = ParseArrival("11:30 AM")
	require.NoError(t, err)
	require.Equal(t, Clock{Hour: 11, Minute: 30}, clock)
	require.False(t, hasMarker)

	_, _, _, err = ParseArrival("3:00 PM-1")
	require.Error(t, err)
}

func TestResolveDayOffset(t *testing.T) {
	table := []struct {
		name      string
		departure Clock
		arrival   Clock
		marker    int
		hasMarker bool
		expected  int
	}{
		{name: "overnight inferred", departure: Clock{23, 50}, arrival: Clock{1, 20}, expected: 1},
		{name: "same day", departure: Clock{9, 0}, arrival: Clock{11, 30}, expected: 0},
		{name: "equal clocks", departure: Clock{9, 0}, arrival: Clock{9, 0}, expected: 0},
		{name: "marker beats inference", departure: Clock{23, 50}, arrival: Clock{1, 20}, marker: 2, hasMarker: true, expected: 2},
		{name: "zero marker", departure: Clock{23, 50}, arrival: Clock{1, 20}, marker: 0, hasMarker: true, expected: 0},
		{name: "marker on later clock", departure: Clock{9, 0}, arrival: Clock{11, 30}, marker: 1, hasMarker: true, expected: 1},
	}
	for _, row := range table {
		got := ResolveDayOffset(row.departure, row.arrival, row.marker, row.hasMarker)
		require.Equal(t, row.expected, got, row.name)
	}
}

func TestParseDuration(t *testing.T) {
	table := []struct {
		input    string
		expected int
	}{
		{input: "5 hr 20 min", expected: 320},
		{input: "45 min", expected: 45},
		{input: "3 hr", expected: 180},
		{input: "12 hrs 5 mins", expected: 725},
		{input: "1h 2m", expected: 62},
		{input: "5\u00a0hr\u00a020\u00a0min", expected: 320},
		{input: "5 hr  20 min", expected: 320},
		{input: "0 min", expected: 0},
	}
	for _, row := range table {
		got, err := ParseDuration(row.input)
		require.NoError(t, err, row.input)
		require.Equal(t, row.expected, got, row.input)
	}

	for _, bad := range []string{"", "about an hour", "5 days"} {
		_, err := ParseDuration(bad)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, bad)
		require.Equal(t, "duration", parseErr.Field)
	}
}

func TestParseStops(t *testing.T) {
	table := []struct {
		input       string
		count       int
		description string
	}{
		{input: "Nonstop", count: 0},
		{input: "nonstop", count: 0},
		{input: "Non-stop", count: 0},
		{input: "Nonstop flight", count: 0},
		{input: "", count: 0},
		{input: "1 stop", count: 1},
		{input: "1 stop CGK", count: 1, description: "CGK"},
		{input: "2 stops  DOH, LHR", count: 2, description: "DOH, LHR"},
	}
	for _, row := range table {
		count, description, err := ParseStops(row.input)
		require.NoError(t, err, row.input)
		require.Equal(t, row.count, count, row.input)
		require.Equal(t, row.description, description, row.input)
	}

	_, _, err := ParseStops("Direct-ish")
	require.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "$1,234", expected: "1234"},
		{input: "$89", expected: "89"},
		{input: "US$1,234.56", expected: "1234.56"},
		{input: "Rp 2.345.000", expected: "2345000"},
		{input: "IDR 2,345,000", expected: "2345000"},
		{input: "€1.234,50", expected: "1234.5"},
		{input: "12,50 €", expected: "12.5"},
		{input: "$.99", expected: "0.99"},
		{input: "$0.99", expected: "0.99"},
	}
	for _, row := range table {
		got, err := ParsePrice(row.input)
		require.NoError(t, err, row.input)
		require.True(t, decimal.RequireFromString(row.expected).Equal(got), "%s: got %s", row.input, got)
	}

	got, err := ParsePrice("$1,234")
	require.NoError(t, err)
	require.Equal(t, "1234.00", got.StringFixed(2))

	for _, bad := range []string{"", "Price unavailable", "$"} {
		_, err := ParsePrice(bad)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, bad)
		require.Equal(t, "price", parseErr.Field)
	}
}

func TestLabelDayOffset(t *testing.T) {
	table := []struct {
		label  string
		year   int
		offset int
		ok     bool
	}{
		{
			label:  "Leaves Soekarno-Hatta International Airport at 11:50 PM on Wednesday, October 8 and arrives at Singapore Changi Airport at 1:20 AM on Thursday, October 9.",
			year:   2025,
			offset: 1,
			ok:     true,
		},
		{
			label:  "Leaves CGK at 9:00 AM on Wed, Oct 8 and arrives at SIN at 11:30 AM on Wed, Oct 8.",
			year:   2025,
			offset: 0,
			ok:     true,
		},
		{
			label:  "Leaves JFK at 10:00 PM on Wednesday, December 31 and arrives at LHR at 10:05 AM on Thursday, January 1.",
			year:   2025,
			offset: 1,
			ok:     true,
		},
		{
			label:  "Leaves SYD at 4:00 PM on Friday, February 28 and arrives at LAX at 11:00 AM on Saturday, March 1.",
			year:   2024,
			offset: 2,
			ok:     true,
		},
		{label: "Leaves CGK at 9:00 AM on Wed, Oct 8.", year: 2025},
		{label: "", year: 2025},
	}
	for _, row := range table {
		offset, ok := LabelDayOffset(row.label, row.year)
		require.Equal(t, row.ok, ok, row.label)
		require.Equal(t, row.offset, offset, row.label)
	}
}
