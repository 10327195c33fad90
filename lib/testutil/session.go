package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// FakePage is the scripted state of one results page.
type FakePage struct {
	// Visible is how many cards are rendered right after navigation.
	Visible int
	// Total is how many cards the page can reveal at most.
	Total int
	// ClickBatch cards appear per reveal-more click, ScrollBatch per scroll.
	ClickBatch  int
	ScrollBatch int
	// NoControl hides the reveal-more control.
	NoControl bool
	// LoadingCycles is how many times the loading indicator reports active.
	LoadingCycles int
	// WaitFailures is how many WaitForList calls fail before the list renders.
	WaitFailures int
	HTML         string
}

func (p *FakePage) grow(n int) {
	p.Visible = min(p.Visible+n, p.Total)
}

// FakeSession is a browser session that serves FakePages by url.
type FakeSession struct {
	mu      sync.Mutex
	pages   map[string]*FakePage
	current *FakePage

	Navigated []string
	Clicks    int
	Scrolls   int
	// ScrollErr is returned by every ScrollToBottom when set.
	ScrollErr error
	// ClickErr is returned by every ClickRevealMore when set.
	ClickErr error
}

func NewFakeSession(pages map[string]*FakePage) *FakeSession {
	return &FakeSession{pages: pages}
}

// NewFakePage returns a session already showing page.
func NewFakePage(page FakePage) *FakeSession {
	return &FakeSession{
		pages:   map[string]*FakePage{},
		current: &page,
	}
}

func (s *FakeSession) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Navigated = append(s.Navigated, url)
	page, ok := s.pages[url]
	if !ok {
		s.current = nil
		return fmt.Errorf("navigate %s: no such page", url)
	}
	s.current = page
	return nil
}

func (s *FakeSession) WaitForList(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return errors.New("no page loaded")
	}
	if s.current.WaitFailures > 0 {
		s.current.WaitFailures--
		return errors.New("result list did not render")
	}
	if s.current.Visible == 0 {
		return errors.New("result list is empty")
	}
	return nil
}

func (s *FakeSession) ItemCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0, errors.New("no page loaded")
	}
	return s.current.Visible, nil
}

func (s *FakeSession) ScrollToBottom(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ScrollErr != nil {
		return s.ScrollErr
	}
	s.Scrolls++
	if s.current != nil {
		s.current.grow(s.current.ScrollBatch)
	}
	return nil
}

func (s *FakeSession) ClickRevealMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClickErr != nil {
		return false, s.ClickErr
	}
	page := s.current
	if page == nil || page.NoControl || page.Visible >= page.Total {
		return false, nil
	}
	s.Clicks++
	page.grow(page.ClickBatch)
	return true, nil
}

func (s *FakeSession) LoadingActive(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.LoadingCycles == 0 {
		return false, nil
	}
	s.current.LoadingCycles--
	return true, nil
}

func (s *FakeSession) Snapshot(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", errors.New("no page loaded")
	}
	return s.current.HTML, nil
}
