package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default slog handler, writing to stderr so stdout
// stays free for the results table.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// SlogAPI implements API on the default slog logger.
type SlogAPI struct{}

// attrs logs errors under "err" and everything else under "args".
func attrs(id string, params []any) []any {
	out := []any{}
	if id != "" {
		out = append(out, "id", id)
	}
	var args []any
	for _, p := range params {
		if err, ok := p.(error); ok {
			out = append(out, "err", err)
			continue
		}
		args = append(args, p)
	}
	if len(args) > 0 {
		out = append(out, "args", args)
	}
	return out
}

func (SlogAPI) ReportWarning(id string, params ...any) {
	slog.Warn("warning", attrs(id, params)...)
}

func (SlogAPI) ReportDebug(msg string, params ...any) {
	slog.Debug(msg, attrs("", params)...)
}

func (SlogAPI) ReportCount(id string, count int64) {
	slog.Debug("count", "id", id, "n", count)
}
