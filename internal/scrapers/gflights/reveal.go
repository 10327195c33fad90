package gflights

import (
	"context"
	"time"

	"flightscout/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("flightscout/scrapers/gflights")

const (
	report_reveal_click   = "reveal.click"
	report_reveal_loading = "reveal.loading"
)

type RevealState int

const (
	Idle RevealState = iota
	Loading
	Stalled
	Capped
	Exhausted
)

func (s RevealState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Stalled:
		return "stalled"
	case Capped:
		return "capped"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

type RevealOptions struct {
	// MaxResults stops revealing once this many cards are visible, 0 means no cap.
	MaxResults int
	// StallCycles is how many cycles without growth mean the list is exhausted.
	StallCycles int
	// PollInterval is the time between item counts within a cycle.
	PollInterval time.Duration
	// CycleTimeout bounds how long a cycle waits for the list to grow.
	CycleTimeout time.Duration
	// MaxCycles is a hard bound on cycles regardless of growth.
	MaxCycles int
}

func (o RevealOptions) withDefaults() RevealOptions {
	if o.StallCycles <= 0 {
		o.StallCycles = 3
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 250 * time.Millisecond
	}
	if o.CycleTimeout <= 0 {
		o.CycleTimeout = 2500 * time.Millisecond
	}
	if o.MaxCycles <= 0 {
		o.MaxCycles = 200
	}
	return o
}

type RevealResult struct {
	// State is terminal, either Capped or Exhausted.
	State   RevealState
	Visible int
	Cycles  int
	Clicks  int
}

type revealer struct {
	session Session
	tel     telemetry.API
	opts    RevealOptions
}

// Reveal drives the progressively loading result list until it stops
// growing or MaxResults cards are visible. Each cycle scrolls to the bottom,
// activates the reveal-more control if there is one and polls the card
// count. StallCycles cycles without growth exhaust the list, unless a
// loading indicator is still up, which buys one extra cycle.
//
// Reveal never reads card contents. Errors come only from the session
// failing to scroll or count, a missing or unclickable reveal-more control
// is expected and only reported as debug information.
func Reveal(ctx context.Context, session Session, tel telemetry.API, opts RevealOptions) (RevealResult, error) {
	ctx, span := tracer.Start(ctx, "gflights:Reveal")
	defer span.End()

	r := revealer{
		session: session,
		tel:     tel,
		opts:    opts.withDefaults(),
	}
	result, err := r.run(ctx)
	span.SetAttributes(
		attribute.String("state", result.State.String()),
		attribute.Int("visible", result.Visible),
		attribute.Int("cycles", result.Cycles),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reveal failed")
	}
	return result, err
}

func (r revealer) capped(count int) bool {
	return r.opts.MaxResults > 0 && count >= r.opts.MaxResults
}

func (r revealer) run(ctx context.Context) (RevealResult, error) {
	result := RevealResult{State: Loading}

	count, err := r.session.ItemCount(ctx)
	if err != nil {
		return result, err
	}
	result.Visible = count

	stalls := 0
	graceUsed := false
	for {
		if r.capped(count) {
			result.State = Capped
			return result, nil
		}
		if result.Cycles >= r.opts.MaxCycles {
			r.tel.ReportDebug("reveal cycle bound reached", result.Cycles, count)
			result.State = Exhausted
			return result, nil
		}
		result.Cycles++

		err := r.session.ScrollToBottom(ctx)
		if err != nil {
			return result, err
		}
		clicked, err := r.session.ClickRevealMore(ctx)
		if err != nil {
			r.tel.ReportDebug(report_reveal_click, err)
		}
		if clicked {
			result.Clicks++
		}

		next, err := r.waitForGrowth(ctx, count)
		if err != nil {
			return result, err
		}
		if next > count {
			count = next
			result.Visible = count
			stalls = 0
			graceUsed = false
			continue
		}

		stalls++
		if stalls < r.opts.StallCycles {
			continue
		}

		result.State = Stalled
		loading, err := r.session.LoadingActive(ctx)
		if err != nil {
			r.tel.ReportDebug(report_reveal_loading, err)
		}
		if loading && !graceUsed {
			graceUsed = true
			stalls--
			result.State = Loading
			continue
		}

		result.State = Exhausted
		return result, nil
	}
}

// waitForGrowth polls the item count until it exceeds previous or the
// cycle timeout elapses, returning the last count seen.
func (r revealer) waitForGrowth(ctx context.Context, previous int) (int, error) {
	timeout := time.NewTimer(r.opts.CycleTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	last := previous
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-timeout.C:
			return last, nil
		case <-ticker.C:
			count, err := r.session.ItemCount(ctx)
			if err != nil {
				return last, err
			}
			last = count
			if count > previous {
				return count, nil
			}
		}
	}
}
