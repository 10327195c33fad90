package flights

import "flightscout/internal/normalize"

type identityKey struct {
	airline          string
	departure        normalize.Clock
	arrival          normalize.Clock
	arrivalDayOffset int
	price            string
}

func (r FlightRecord) key() identityKey {
	return identityKey{
		airline:          r.Airline,
		departure:        r.Departure,
		arrival:          r.Arrival,
		arrivalDayOffset: r.ArrivalDayOffset,
		// decimal.Decimal holds a pointer, compare on the canonical string
		price: r.Price.String(),
	}
}

// Dedupe keeps the first record of every (airline, departure, arrival,
// arrival day offset, price) identity and drops the rest, preserving order.
// It is meant for the records of a single query date, the same card gets
// read twice when the list re-renders under scrolling.
func Dedupe(records []FlightRecord) (kept []FlightRecord, dropped int) {
	seen := make(map[identityKey]struct{}, len(records))
	kept = make([]FlightRecord, 0, len(records))
	for _, record := range records {
		k := record.key()
		if _, ok := seen[k]; ok {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, record)
	}
	return kept, dropped
}

// Merge concatenates independently produced result sets in argument order.
// No deduplication happens across sets.
func Merge(sets ...ResultSet) ResultSet {
	total := 0
	for _, s := range sets {
		total += len(s)
	}
	merged := make(ResultSet, 0, total)
	for _, s := range sets {
		merged = append(merged, s...)
	}
	return merged
}
