// Package gestures provides the list gestures the page objects use to bring
// elements on screen: swipes, scrolling until an element is displayed, and
// displayed checks that scroll first.
package gestures

import (
	"context"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/element"
	"github.com/devicelab-dev/messenger-pages/pkg/logger"
)

// ScrollDirection is the direction the content moves towards.
type ScrollDirection string

// Scroll directions. Scrolling down moves the finger up.
const (
	ScrollDown ScrollDirection = "down"
	ScrollUp   ScrollDirection = "up"
)

// DefaultSettle is the pause after each scroll before the next check.
const DefaultSettle = 300 * time.Millisecond

// Gestures wraps element helpers with list gestures.
type Gestures struct {
	h      *element.Helpers
	Settle time.Duration
}

// New creates gestures on top of h.
func New(h *element.Helpers) *Gestures {
	return &Gestures{h: h, Settle: DefaultSettle}
}

// SwipeUp swipes the finger up count times, revealing content further down.
func (g *Gestures) SwipeUp(ctx context.Context, count int) error {
	return g.h.Swipe(ctx, element.Up, count)
}

// SwipeDown swipes the finger down count times. On a list at its top this
// pulls to refresh.
func (g *Gestures) SwipeDown(ctx context.Context, count int) error {
	return g.h.Swipe(ctx, element.Down, count)
}

// Scroll scrolls the content once in dir.
func (g *Gestures) Scroll(ctx context.Context, dir ScrollDirection) error {
	if dir == ScrollUp {
		return g.SwipeDown(ctx, 1)
	}
	return g.SwipeUp(ctx, 1)
}

// ScrollUntilDisplayed scrolls in dir until t is displayed, at most
// maxSwipes times, and reports whether t ended up displayed.
func (g *Gestures) ScrollUntilDisplayed(ctx context.Context, t element.Target, maxSwipes int, dir ScrollDirection) (bool, error) {
	for i := 0; ; i++ {
		shown, err := g.h.IsDisplayed(ctx, t)
		if err != nil {
			return false, err
		}
		if shown {
			return true, nil
		}
		if i >= maxSwipes {
			logger.Debug("%s not displayed after %d scroll(s) %s", t.Describe(), maxSwipes, dir)
			return false, nil
		}
		if err := g.Scroll(ctx, dir); err != nil {
			return false, err
		}
		if err := element.Pause(ctx, g.Settle); err != nil {
			return false, err
		}
	}
}

// CheckIfDisplayedWithScrollDown scrolls down until t is displayed.
func (g *Gestures) CheckIfDisplayedWithScrollDown(ctx context.Context, t element.Target, maxSwipes int) (bool, error) {
	return g.ScrollUntilDisplayed(ctx, t, maxSwipes, ScrollDown)
}

// CheckIfDisplayedWithScrollUp scrolls up until t is displayed.
func (g *Gestures) CheckIfDisplayedWithScrollUp(ctx context.Context, t element.Target, maxSwipes int) (bool, error) {
	return g.ScrollUntilDisplayed(ctx, t, maxSwipes, ScrollUp)
}
