package element

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// Direction is the direction the finger moves during a swipe.
type Direction string

// Swipe directions.
const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// SwipeDuration is the duration of a single swipe gesture.
const SwipeDuration = 500 * time.Millisecond

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down, Left, Right:
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction: %s", s)
	}
}

// swipePoints returns the start and end points of a swipe over the middle
// third of a w x h screen.
func swipePoints(dir Direction, w, h int) (core.Point, core.Point, error) {
	centerX, centerY := w/2, h/2
	switch dir {
	case Up:
		return core.Point{X: centerX, Y: h * 2 / 3}, core.Point{X: centerX, Y: h / 3}, nil
	case Down:
		return core.Point{X: centerX, Y: h / 3}, core.Point{X: centerX, Y: h * 2 / 3}, nil
	case Left:
		return core.Point{X: w * 2 / 3, Y: centerY}, core.Point{X: w / 3, Y: centerY}, nil
	case Right:
		return core.Point{X: w / 3, Y: centerY}, core.Point{X: w * 2 / 3, Y: centerY}, nil
	default:
		return core.Point{}, core.Point{}, fmt.Errorf("invalid direction: %s", dir)
	}
}

// Swipe swipes count times in dir. A count below one swipes once.
func (h *Helpers) Swipe(ctx context.Context, dir Direction, count int) error {
	w, ht, err := h.driver.ScreenSize(ctx)
	if err != nil {
		return core.DriverError("screen size", err)
	}
	from, to, err := swipePoints(dir, w, ht)
	if err != nil {
		return err
	}
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if err := h.driver.Swipe(ctx, from, to, SwipeDuration); err != nil {
			return core.DriverError("swipe "+string(dir), err)
		}
	}
	return nil
}
