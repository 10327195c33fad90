// Package sink writes result sets out as csv files or console tables.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"flightscout/internal/chrono"
	"flightscout/internal/flights"
)

// Header is the column layout of every csv this package writes.
var Header = []string{
	"airline",
	"query_date",
	"departure_time",
	"arrival_time",
	"arrival_day_offset",
	"duration_minutes",
	"stop_count",
	"stop_description",
	"price",
}

func Row(record flights.FlightRecord) []string {
	return []string{
		record.Airline,
		record.QueryDate.Format(chrono.ISODate),
		record.Departure.String(),
		record.Arrival.String(),
		strconv.Itoa(record.ArrivalDayOffset),
		strconv.Itoa(record.DurationMinutes),
		strconv.Itoa(record.StopCount),
		record.StopDescription,
		record.Price.String(),
	}
}

// WriteCSV writes the header and one row per record.
func WriteCSV(w io.Writer, records flights.ResultSet) error {
	out := csv.NewWriter(w)
	err := out.Write(Header)
	if err != nil {
		return err
	}
	for _, record := range records {
		err = out.Write(Row(record))
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// WriteCSVFile writes records to path, creating its parent directories.
func WriteCSVFile(path string, records flights.ResultSet) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
	}()

	err = WriteCSV(f, records)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
