// Package flights holds the records produced by a collection run and the
// rules for turning raw cards into them.
package flights

import (
	"time"

	"flightscout/internal/chrono"
	"flightscout/internal/normalize"

	"github.com/shopspring/decimal"
)

// RawCard is the untyped text of one result card, exactly as rendered.
type RawCard struct {
	// ID is the card's data-id attribute, only useful for diagnostics.
	ID        string
	Airline   string
	Departure string
	Arrival   string
	// DateLabel is the card's accessibility label, which spells out the
	// departure and arrival calendar days.
	DateLabel string
	Duration  string
	Stops     string
	Price     string
}

// FlightRecord is a normalized result card, attributable to one query date.
type FlightRecord struct {
	Airline          string
	Departure        normalize.Clock
	Arrival          normalize.Clock
	ArrivalDayOffset int
	DurationMinutes  int
	StopCount        int
	StopDescription  string
	Price            decimal.Decimal
	QueryDate        time.Time
}

// ResultSet is an ordered collection of records, in query date order and
// first-seen order within a date.
type ResultSet []FlightRecord

func (r ResultSet) Dates() []time.Time {
	var dates []time.Time
	for _, record := range r {
		if len(dates) == 0 || !dates[len(dates)-1].Equal(record.QueryDate) {
			dates = append(dates, record.QueryDate)
		}
	}
	return dates
}

// FromRawCard normalizes a card collected under queryDate. Any error is a
// *normalize.ParseError naming the offending field.
func FromRawCard(card RawCard, queryDate time.Time) (FlightRecord, error) {
	airline := normalize.Clean(card.Airline)
	if airline == "" {
		return FlightRecord{}, &normalize.ParseError{Field: "airline", Value: card.Airline}
	}

	departure, err := normalize.ParseClock(card.Departure)
	if err != nil {
		return FlightRecord{}, err
	}
	arrival, marker, hasMarker, err := normalize.ParseArrival(card.Arrival)
	if err != nil {
		return FlightRecord{}, err
	}
	if !hasMarker {
		marker, hasMarker = normalize.LabelDayOffset(card.DateLabel, queryDate.Year())
	}

	duration, err := normalize.ParseDuration(card.Duration)
	if err != nil {
		return FlightRecord{}, err
	}
	stopCount, stopDescription, err := normalize.ParseStops(card.Stops)
	if err != nil {
		return FlightRecord{}, err
	}
	price, err := normalize.ParsePrice(card.Price)
	if err != nil {
		return FlightRecord{}, err
	}

	return FlightRecord{
		Airline:          airline,
		Departure:        departure,
		Arrival:          arrival,
		ArrivalDayOffset: normalize.ResolveDayOffset(departure, arrival, marker, hasMarker),
		DurationMinutes:  duration,
		StopCount:        stopCount,
		StopDescription:  stopDescription,
		Price:            price,
		QueryDate:        chrono.Day(queryDate),
	}, nil
}

// Normalized is the outcome of normalizing a batch of cards.
type Normalized struct {
	Records  []FlightRecord
	Failures []error
}

// NormalizeAll runs FromRawCard over every card, keeping the successes in
// order and collecting the parse failures.
func NormalizeAll(cards []RawCard, queryDate time.Time) Normalized {
	out := Normalized{Records: make([]FlightRecord, 0, len(cards))}
	for _, card := range cards {
		record, err := FromRawCard(card, queryDate)
		if err != nil {
			out.Failures = append(out.Failures, err)
			continue
		}
		out.Records = append(out.Records, record)
	}
	return out
}
