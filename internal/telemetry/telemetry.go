package telemetry

// API is where collection code reports what happened to it. Tests swap in a
// recording implementation to assert on warnings and counts.
type API interface {
	// ReportWarning flags something a run survived but someone should look
	// at, like a date that failed or a card that did not parse. id names the
	// component in dotted lowercase, ex. "collector.date".
	ReportWarning(id string, params ...any)
	// ReportDebug is only visible with --verbose.
	ReportDebug(msg string, params ...any)
	// ReportCount records the latest value of a per-date quantity.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with the name of the command that reported it.
type ScopedAPI struct {
	scope string
	inner API
}

func NewScopedAPI(scope string, inner API) ScopedAPI {
	return ScopedAPI{scope: scope, inner: inner}
}

func (s ScopedAPI) name(id string) string {
	return s.scope + ": " + id
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.name(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.name(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.name(id), count)
}
