package sink

import (
	"io"

	"flightscout/internal/chrono"
	"flightscout/internal/flights"

	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderTable prints the records with the same columns as the csv.
func RenderTable(w io.Writer, records flights.ResultSet) {
	t := NewTable(w)
	header := table.Row{}
	for _, column := range Header {
		header = append(header, column)
	}
	t.AppendHeader(header)
	for _, r := range records {
		t.AppendRow(table.Row{
			r.Airline,
			r.QueryDate.Format(chrono.ISODate),
			r.Departure.String(),
			r.Arrival.String(),
			r.ArrivalDayOffset,
			r.DurationMinutes,
			r.StopCount,
			r.StopDescription,
			r.Price.String(),
		})
	}
	t.Render()
}
