// Package collector runs a date plan against a results page, one date at a
// time over a single browser session.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flightscout/internal/chrono"
	"flightscout/internal/flights"
	"flightscout/internal/plan"
	"flightscout/internal/scrapers/gflights"
	"flightscout/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("flightscout/collector")
var meter = otel.Meter("flightscout/collector")

var recordsCounter, _ = meter.Int64Counter(
	"flightscout.records",
	metric.WithDescription("Records kept after normalization and dedupe."),
)
var invalidCounter, _ = meter.Int64Counter(
	"flightscout.cards_invalid",
	metric.WithDescription("Result cards missing a required field."),
)
var parseFailuresCounter, _ = meter.Int64Counter(
	"flightscout.parse_failures",
	metric.WithDescription("Result cards dropped because a field failed to parse."),
)
var datesFailedCounter, _ = meter.Int64Counter(
	"flightscout.dates_failed",
	metric.WithDescription("Dates that could not be collected."),
)

const (
	report_collector_date      = "collector.date"
	report_collector_normalize = "collector.normalize"
	report_collector_load      = "collector.load"
	report_collector_records   = "collector.records"
)

type Options struct {
	// QueryURL is the search url, its embedded date is replaced per date.
	QueryURL string
	// MaxResults caps the records kept per date, 0 means unbounded.
	MaxResults int
	// Attempts is how many times a date's page is loaded before giving up.
	Attempts int
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration
	// ListTimeout bounds the wait for the first result card.
	ListTimeout time.Duration
	// DateTimeout bounds everything done for one date.
	DateTimeout time.Duration
	Reveal      gflights.RevealOptions
	// Snapshots receives the html of every date's page when set.
	Snapshots SnapshotWriter
}

// SnapshotWriter stores page snapshots for later inspection.
type SnapshotWriter interface {
	Write(id string, contents string)
}

func (o Options) withDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = 2
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 2 * time.Second
	}
	if o.ListTimeout <= 0 {
		o.ListTimeout = 45 * time.Second
	}
	if o.DateTimeout <= 0 {
		o.DateTimeout = 5 * time.Minute
	}
	return o
}

// DateFailure means nothing could be collected for a date.
type DateFailure struct {
	Date     time.Time
	Attempts int
	Err      error
}

func (e *DateFailure) Error() string {
	return fmt.Sprintf("collect %s (%d attempts): %v", e.Date.Format(chrono.ISODate), e.Attempts, e.Err)
}

func (e *DateFailure) Unwrap() error {
	return e.Err
}

// DateOutcome tallies what happened to one planned date.
type DateOutcome struct {
	Date time.Time
	// Records is how many records the date contributed.
	Records       int
	Invalid       int
	ParseFailures int
	Duplicates    int
	State         gflights.RevealState
	// Err is a *DateFailure when the date failed.
	Err error
}

func (o DateOutcome) Failed() bool {
	return o.Err != nil
}

type Result struct {
	Records flights.ResultSet
	Dates   []DateOutcome
}

// Failed is the number of dates that failed.
func (r Result) Failed() int {
	failed := 0
	for _, d := range r.Dates {
		if d.Failed() {
			failed++
		}
	}
	return failed
}

type Collector struct {
	session gflights.Session
	tel     telemetry.API
	opts    Options
}

func New(session gflights.Session, tel telemetry.API, opts Options) Collector {
	return Collector{
		session: session,
		tel:     tel,
		opts:    opts.withDefaults(),
	}
}

// Run collects every date of the plan in order. A date that fails is
// recorded in its outcome and the run moves on to the next one.
func (c Collector) Run(ctx context.Context, p plan.DatePlan) Result {
	ctx, span := tracer.Start(ctx, "collector:Run")
	defer span.End()

	var result Result
	for _, date := range p.Dates() {
		outcome, records := c.collectDate(ctx, date)
		result.Dates = append(result.Dates, outcome)
		if outcome.Failed() {
			c.tel.ReportWarning(report_collector_date, outcome.Err)
			datesFailedCounter.Add(ctx, 1)
			continue
		}
		result.Records = flights.Merge(result.Records, records)

		slog.InfoContext(
			ctx, "collected date",
			"date", date.Format(chrono.ISODate),
			"records", outcome.Records,
			"state", outcome.State.String(),
		)
	}

	span.SetAttributes(
		attribute.Int("dates", p.Len()),
		attribute.Int("failed", result.Failed()),
		attribute.Int("records", len(result.Records)),
	)
	if result.Failed() > 0 {
		span.SetStatus(codes.Error, "some dates failed")
	}
	return result
}

func (c Collector) collectDate(ctx context.Context, date time.Time) (DateOutcome, []flights.FlightRecord) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.DateTimeout)
	defer cancel()
	ctx, span := tracer.Start(ctx, "collector:date", trace.WithAttributes(
		attribute.String("date", date.Format(chrono.ISODate)),
	))
	defer span.End()

	outcome := DateOutcome{Date: date}
	fail := func(attempts int, err error) (DateOutcome, []flights.FlightRecord) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "date failed")
		outcome.Err = &DateFailure{Date: date, Attempts: attempts, Err: err}
		return outcome, nil
	}

	url := gflights.DateURL(c.opts.QueryURL, date)
	attempts, err := c.load(ctx, url)
	if err != nil {
		return fail(attempts, err)
	}

	revealOpts := c.opts.Reveal
	revealOpts.MaxResults = c.opts.MaxResults
	revealed, err := gflights.Reveal(ctx, c.session, c.tel, revealOpts)
	outcome.State = revealed.State
	if err != nil {
		return fail(attempts, fmt.Errorf("reveal: %w", err))
	}

	html, err := c.session.Snapshot(ctx)
	if err != nil {
		return fail(attempts, fmt.Errorf("snapshot: %w", err))
	}
	if c.opts.Snapshots != nil {
		c.opts.Snapshots.Write(date.Format(chrono.ISODate)+".html", html)
	}
	cards, invalid, err := gflights.Extract(ctx, html, 0)
	if err != nil {
		return fail(attempts, err)
	}
	outcome.Invalid = invalid
	invalidCounter.Add(ctx, int64(invalid))

	normalized := flights.NormalizeAll(cards, date)
	for _, failure := range normalized.Failures {
		c.tel.ReportWarning(report_collector_normalize, date.Format(chrono.ISODate), failure)
	}
	outcome.ParseFailures = len(normalized.Failures)
	parseFailuresCounter.Add(ctx, int64(outcome.ParseFailures))

	records, dropped := flights.Dedupe(normalized.Records)
	outcome.Duplicates = dropped
	if c.opts.MaxResults > 0 && len(records) > c.opts.MaxResults {
		records = records[:c.opts.MaxResults]
	}
	outcome.Records = len(records)
	recordsCounter.Add(ctx, int64(len(records)))
	c.tel.ReportCount(report_collector_records, int64(len(records)))

	span.SetAttributes(
		attribute.Int("records", outcome.Records),
		attribute.Int("invalid", outcome.Invalid),
		attribute.Int("parse_failures", outcome.ParseFailures),
		attribute.Int("duplicates", outcome.Duplicates),
		attribute.String("state", outcome.State.String()),
	)
	return outcome, records
}

// load navigates to url until the result list renders, returning the
// number of attempts it took.
func (c Collector) load(ctx context.Context, url string) (int, error) {
	var err error
	for attempt := 1; attempt <= c.opts.Attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return attempt - 1, ctx.Err()
			case <-time.After(c.opts.RetryDelay):
			}
		}

		err = c.session.Navigate(ctx, url)
		if err == nil {
			waitCtx, cancel := context.WithTimeout(ctx, c.opts.ListTimeout)
			err = c.session.WaitForList(waitCtx)
			cancel()
		}
		if err == nil {
			return attempt, nil
		}
		c.tel.ReportDebug(report_collector_load, url, attempt, err)
		if ctx.Err() != nil {
			return attempt, err
		}
	}
	return c.opts.Attempts, err
}
