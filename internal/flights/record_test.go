package flights

import (
	"testing"
	"time"

	"flightscout/internal/chrono"
	"flightscout/internal/normalize"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func overnightCard() RawCard {
	return RawCard{
		ID:        "card-1",
		Airline:   "Garuda Indonesia",
		Departure: "11:50 PM",
		Arrival:   "1:20 AM",
		Duration:  "2 hr 30 min",
		Stops:     "Nonstop",
		Price:     "$1,234",
	}
}

func TestFromRawCard(t *testing.T) {
	queryDate := chrono.Date(2025, time.October, 8)

	record, err := FromRawCard(overnightCard(), queryDate)
	require.NoError(t, err)
	require.Equal(t, "Garuda Indonesia", record.Airline)
	require.Equal(t, normalize.Clock{Hour: 23, Minute: 50}, record.Departure)
	require.Equal(t, normalize.Clock{Hour: 1, Minute: 20}, record.Arrival)
	require.Equal(t, 1, record.ArrivalDayOffset)
	require.Equal(t, 150, record.DurationMinutes)
	require.Equal(t, 0, record.StopCount)
	require.Equal(t, "", record.StopDescription)
	require.Equal(t, "1234.00", record.Price.StringFixed(2))
	require.Equal(t, queryDate, record.QueryDate)
}

func TestFromRawCardDayOffsetSources(t *testing.T) {
	queryDate := chrono.Date(2025, time.October, 8)

	// the explicit marker wins over both the label and the clocks
	card := overnightCard()
	card.Arrival = "1:20 AM+2"
	card.DateLabel = "Leaves CGK at 11:50 PM on Wednesday, October 8 and arrives at SIN at 1:20 AM on Thursday, October 9."
	record, err := FromRawCard(card, queryDate)
	require.NoError(t, err)
	require.Equal(t, 2, record.ArrivalDayOffset)

	// without a marker the label is used, here a long haul arriving two days later
	card = overnightCard()
	card.Departure = "9:00 AM"
	card.Arrival = "11:30 AM"
	card.DateLabel = "Leaves CGK at 9:00 AM on Wednesday, October 8 and arrives at JFK at 11:30 AM on Friday, October 10."
	record, err = FromRawCard(card, queryDate)
	require.NoError(t, err)
	require.Equal(t, 2, record.ArrivalDayOffset)

	// with neither, the clock heuristic applies
	card = overnightCard()
	card.Departure = "9:00 AM"
	card.Arrival = "11:30 AM"
	record, err = FromRawCard(card, queryDate)
	require.NoError(t, err)
	require.Equal(t, 0, record.ArrivalDayOffset)
}

func TestFromRawCardStops(t *testing.T) {
	card := overnightCard()
	card.Stops = "1 stop KUL"
	record, err := FromRawCard(card, chrono.Date(2025, time.October, 8))
	require.NoError(t, err)
	require.Equal(t, 1, record.StopCount)
	require.Equal(t, "KUL", record.StopDescription)
}

func TestFromRawCardFailures(t *testing.T) {
	queryDate := chrono.Date(2025, time.October, 8)

	table := []struct {
		field  string
		mutate func(*RawCard)
	}{
		{field: "airline", mutate: func(c *RawCard) { c.Airline = " " }},
		{field: "departure", mutate: func(c *RawCard) { c.Departure = "soon" }},
		{field: "arrival", mutate: func(c *RawCard) { c.Arrival = "" }},
		{field: "duration", mutate: func(c *RawCard) { c.Duration = "a while" }},
		{field: "stops", mutate: func(c *RawCard) { c.Stops = "via somewhere" }},
		{field: "price", mutate: func(c *RawCard) { c.Price = "Price unavailable" }},
	}
	for _, row := range table {
		card := overnightCard()
		row.mutate(&card)
		_, err := FromRawCard(card, queryDate)
		var parseErr *normalize.ParseError
		require.ErrorAs(t, err, &parseErr, row.field)
		require.Equal(t, row.field, parseErr.Field)
	}
}

func TestNormalizeAll(t *testing.T) {
	bad := overnightCard()
	bad.Price = "n/a"
	second := overnightCard()
	second.Airline = "Batik Air"

	out := NormalizeAll([]RawCard{overnightCard(), bad, second}, chrono.Date(2025, time.October, 8))
	require.Len(t, out.Records, 2)
	require.Len(t, out.Failures, 1)
	require.Equal(t, "Garuda Indonesia", out.Records[0].Airline)
	require.Equal(t, "Batik Air", out.Records[1].Airline)
}

func record(airline string, dep, arr normalize.Clock, offset int, price string) FlightRecord {
	return FlightRecord{
		Airline:          airline,
		Departure:        dep,
		Arrival:          arr,
		ArrivalDayOffset: offset,
		Price:            decimal.RequireFromString(price),
		QueryDate:        chrono.Date(2025, time.October, 8),
	}
}

func TestResultSetDates(t *testing.T) {
	a := record("A", normalize.Clock{Hour: 9}, normalize.Clock{Hour: 11}, 0, "10")
	b := a
	b.QueryDate = chrono.Date(2025, time.October, 9)

	dates := ResultSet{a, a, b}.Dates()
	require.Equal(t, []time.Time{a.QueryDate, b.QueryDate}, dates)
}
