package gflights

import "context"

const (
	// every result card carries this controller attribute
	itemSelector    = `div[jscontroller='yGdjUc']`
	loadingSelector = `[role='progressbar']:not([aria-hidden='true'])`
)

// the labels of the control that discloses more results, lowercase
var revealMoreLabels = []string{
	"more flights",
	"view more flights",
	"show more flights",
}

// Session is the stateful browser view a collection drives. It is owned by
// the caller and handed to everything that needs it, one date at a time.
type Session interface {
	// Navigate loads the given url.
	Navigate(ctx context.Context, url string) error
	// WaitForList blocks until at least one result card is rendered.
	WaitForList(ctx context.Context) error
	// ItemCount reports how many result cards are currently rendered.
	ItemCount(ctx context.Context) (int, error)
	// ScrollToBottom scrolls the page to its end.
	ScrollToBottom(ctx context.Context) error
	// ClickRevealMore activates the reveal-more control, clicked is false
	// when the page has no such control, which is not an error.
	ClickRevealMore(ctx context.Context) (clicked bool, err error)
	// LoadingActive reports whether a loading indicator is showing.
	LoadingActive(ctx context.Context) (bool, error)
	// Snapshot returns the rendered html of the page.
	Snapshot(ctx context.Context) (string, error)
}
