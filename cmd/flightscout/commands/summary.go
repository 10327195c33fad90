package commands

import (
	"io"

	"flightscout/internal/chrono"
	"flightscout/internal/collector"
	"flightscout/internal/sink"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderSummary(w io.Writer, result collector.Result) {
	t := sink.NewTable(w)
	t.SetTitle("dates")
	t.AppendHeader(table.Row{"date", "records", "invalid", "parse failures", "duplicates", "list", "error"})
	for _, d := range result.Dates {
		errText := ""
		if d.Err != nil {
			errText = d.Err.Error()
		}
		t.AppendRow(table.Row{
			d.Date.Format(chrono.ISODate),
			d.Records,
			d.Invalid,
			d.ParseFailures,
			d.Duplicates,
			d.State.String(),
			errText,
		})
	}
	t.AppendFooter(table.Row{"total", len(result.Records)})
	t.Render()
}
