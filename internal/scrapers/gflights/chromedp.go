package gflights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

type ChromeOptions struct {
	Headless bool
	// ExecPath overrides the chrome binary, empty means search the usual locations.
	ExecPath string
}

// ChromeSession is a Session backed by a single chrome tab.
type ChromeSession struct {
	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewChromeSession starts chrome. The browser lives until Close is called
// or ctx is cancelled.
func NewChromeSession(ctx context.Context, opts ChromeOptions) (*ChromeSession, error) {
	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1400, 1080),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tab, cancelTab := chromedp.NewContext(
		allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			slog.Debug("chromedp: " + fmt.Sprintf(format, args...))
		}),
	)

	// starts the browser, cards are parsed as english so the page must render in it
	err := chromedp.Run(tab, emulation.SetLocaleOverride().WithLocale("en-US"))
	if err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &ChromeSession{
		tab:         tab,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

func (s *ChromeSession) Close() {
	s.cancelTab()
	s.cancelAlloc()
}

// run executes actions in the tab, bounded by the deadline and cancellation of ctx.
func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.tab)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

func (s *ChromeSession) WaitForList(ctx context.Context) error {
	return s.run(ctx, chromedp.WaitReady(itemSelector, chromedp.ByQuery))
}

func (s *ChromeSession) ItemCount(ctx context.Context) (int, error) {
	var count int
	err := s.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(`document.querySelectorAll(%q).length`, itemSelector),
		&count,
	))
	return count, err
}

func (s *ChromeSession) ScrollToBottom(ctx context.Context) error {
	var done bool
	return s.run(ctx, chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight); true;`, &done))
}

const clickRevealMoreScript = `((labels) => {
	const normalize = (s) => (s || '').replace(/\s+/g, ' ').trim().toLowerCase();
	const candidates = document.querySelectorAll('button, [role="button"]');
	for (const el of candidates) {
		if (el.offsetParent === null) continue;
		const text = normalize(el.textContent);
		if (!labels.some((label) => text.includes(label))) continue;
		el.click();
		return true;
	}
	return false;
})(%s);`

func (s *ChromeSession) ClickRevealMore(ctx context.Context) (bool, error) {
	labels, err := json.Marshal(revealMoreLabels)
	if err != nil {
		return false, err
	}
	var clicked bool
	err = s.run(ctx, chromedp.Evaluate(fmt.Sprintf(clickRevealMoreScript, labels), &clicked))
	return clicked, err
}

func (s *ChromeSession) LoadingActive(ctx context.Context) (bool, error) {
	var active bool
	err := s.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(`document.querySelector(%q) !== null`, loadingSelector),
		&active,
	))
	return active, err
}

func (s *ChromeSession) Snapshot(ctx context.Context) (string, error) {
	var html string
	err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}
