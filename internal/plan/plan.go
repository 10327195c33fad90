// Package plan resolves the date selection options of a run into the
// ordered list of dates to query.
package plan

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"flightscout/internal/chrono"
)

// ConfigError reports an unsatisfiable or malformed date selection.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid date selection: %s: %s", e.Reason, e.Err.Error())
	}
	return fmt.Sprintf("invalid date selection: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type Options struct {
	ExplicitDates []string
	RangeStart    string
	RangeEnd      string
	TargetDate    string
	YearOffsets   []int
	// ReferenceYear is the year given to a display label target date like
	// "Wed, Oct 8", zero means the current year.
	ReferenceYear int
}

// DatePlan is an ordered set of distinct dates, immutable once resolved.
type DatePlan struct {
	dates []time.Time
}

// Dates returns a copy of the planned dates in ascending order.
func (p DatePlan) Dates() []time.Time {
	return slices.Clone(p.dates)
}

func (p DatePlan) Len() int {
	return len(p.dates)
}

func (p DatePlan) String() string {
	formatted := make([]string, len(p.dates))
	for i, d := range p.dates {
		formatted[i] = d.Format(chrono.ISODate)
	}
	return strings.Join(formatted, ", ")
}

func newPlan(dates []time.Time) (DatePlan, error) {
	slices.SortFunc(dates, func(a, b time.Time) int {
		return a.Compare(b)
	})
	dates = slices.CompactFunc(dates, func(a, b time.Time) bool {
		return a.Equal(b)
	})
	if len(dates) == 0 {
		return DatePlan{}, &ConfigError{Reason: "no dates selected"}
	}
	return DatePlan{dates: dates}, nil
}

func parseISO(option, value string) (time.Time, error) {
	parsed, err := time.Parse(chrono.ISODate, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &ConfigError{
			Reason: fmt.Sprintf("%s %q is not a YYYY-MM-DD date", option, value),
			Err:    err,
		}
	}
	return chrono.Day(parsed), nil
}

// Resolve applies the first satisfied rule of:
//  1. explicit dates
//  2. an inclusive range_start..range_end
//  3. target date shifted by each year offset
//  4. the target date alone
//
// warnings describes inputs that were skipped without failing the plan.
func Resolve(opts Options, clock chrono.TimeAPI) (plan DatePlan, warnings []string, err error) {
	if len(opts.ExplicitDates) > 0 {
		dates := make([]time.Time, 0, len(opts.ExplicitDates))
		for _, value := range opts.ExplicitDates {
			d, err := parseISO("date", value)
			if err != nil {
				return DatePlan{}, nil, err
			}
			dates = append(dates, d)
		}
		plan, err = newPlan(dates)
		return plan, warnings, err
	}

	if opts.RangeStart != "" && opts.RangeEnd != "" {
		start, err := parseISO("range start", opts.RangeStart)
		if err != nil {
			return DatePlan{}, nil, err
		}
		end, err := parseISO("range end", opts.RangeEnd)
		if err != nil {
			return DatePlan{}, nil, err
		}
		if start.After(end) {
			return DatePlan{}, nil, &ConfigError{
				Reason: fmt.Sprintf("range start %s is after range end %s", opts.RangeStart, opts.RangeEnd),
			}
		}
		var dates []time.Time
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		plan, err = newPlan(dates)
		return plan, warnings, err
	}

	if opts.RangeStart != "" || opts.RangeEnd != "" {
		warnings = append(warnings, "a date range needs both a start and an end, ignoring the half given")
	}

	if opts.TargetDate == "" {
		return DatePlan{}, warnings, &ConfigError{
			Reason: "expected explicit dates, a start and end range, or a target date",
		}
	}

	year := opts.ReferenceYear
	if year == 0 {
		year = clock.Now().Year()
	}
	target, err := parseTargetDate(opts.TargetDate, year)
	if err != nil {
		return DatePlan{}, warnings, err
	}

	if len(opts.YearOffsets) == 0 {
		plan, err = newPlan([]time.Time{target})
		return plan, warnings, err
	}

	var dates []time.Time
	for _, offset := range opts.YearOffsets {
		shifted, ok := shiftYear(target, offset)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"skipping year offset %d: %s %d does not exist",
				offset, target.Format("Jan 2"), target.Year()+offset,
			))
			continue
		}
		dates = append(dates, shifted)
	}
	plan, err = newPlan(dates)
	return plan, warnings, err
}

// shiftYear replaces the year of d, ok is false when the month and day do
// not exist in that year (Feb 29).
func shiftYear(d time.Time, offset int) (time.Time, bool) {
	shifted := chrono.Date(d.Year()+offset, d.Month(), d.Day())
	if shifted.Month() != d.Month() || shifted.Day() != d.Day() {
		return time.Time{}, false
	}
	return shifted, true
}

// SplitList splits a comma separated flag value, dropping empty entries.
func SplitList(value string) []string {
	var out []string
	for _, chunk := range strings.Split(value, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}

// ParseOffsets parses a comma separated list of year offsets like "0,1".
func ParseOffsets(value string) ([]int, error) {
	var offsets []int
	for _, chunk := range SplitList(value) {
		offset, err := strconv.Atoi(chunk)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("year offset %q is not an integer", chunk), Err: err}
		}
		offsets = append(offsets, offset)
	}
	return offsets, nil
}
