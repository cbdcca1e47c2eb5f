// Package mock provides a scriptable driver for testing without a real device.
//
// Elements are registered per locator and can be scripted to appear or
// disappear after a delay or after a number of lookups. Gestures are recorded
// so tests can assert on what the page objects did.
package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/locator"
)

// Config configures mock driver behavior.
type Config struct {
	// Platform info to report
	Platform string
	DeviceID string
	// Screen size, default 1080x2400
	ScreenWidth  int
	ScreenHeight int
	// FindDelay adds artificial latency per lookup
	FindDelay time.Duration
}

// Element is a scripted UI element.
type Element struct {
	ID         string
	Text       string
	Attributes map[string]string
	Bounds     core.Bounds
	// Hidden elements exist but report displayed=false.
	Hidden bool

	// Visibility window. Zero values mean "always".
	VisibleFrom  time.Time
	VisibleUntil time.Time
	// AppearAfterFinds makes the element match only from the Nth lookup on.
	AppearAfterFinds int
	// GoneAfterFinds makes the element stop matching after N lookups.
	GoneAfterFinds int

	// OnClick runs after a click on the element.
	OnClick func(d *Driver)

	finds int
}

// Swipe records one swipe gesture.
type Swipe struct {
	From, To core.Point
	Duration time.Duration
}

// Drag records one drag gesture.
type Drag struct {
	ElementID string
	DX, DY    int
}

// Driver is a mock implementation of core.Driver for testing.
type Driver struct {
	Config Config

	mu       sync.Mutex
	elements map[locator.Locator]*Element
	byID     map[string]*Element
	nextID   int
	errs     map[string]error

	clicks        []string
	longPresses   map[string]time.Duration
	drags         []Drag
	swipes        []Swipe
	keys          map[string]string
	notifications int
	screenshots   int
	finds         map[locator.Locator]int
}

var _ core.Driver = (*Driver)(nil)

// New creates a new mock driver.
func New(cfg Config) *Driver {
	if cfg.Platform == "" {
		cfg.Platform = "mock"
	}
	if cfg.DeviceID == "" {
		cfg.DeviceID = "mock-device"
	}
	if cfg.ScreenWidth == 0 {
		cfg.ScreenWidth = 1080
	}
	if cfg.ScreenHeight == 0 {
		cfg.ScreenHeight = 2400
	}
	return &Driver{
		Config:      cfg,
		elements:    make(map[locator.Locator]*Element),
		byID:        make(map[string]*Element),
		errs:        make(map[string]error),
		longPresses: make(map[string]time.Duration),
		keys:        make(map[string]string),
		finds:       make(map[locator.Locator]int),
	}
}

// Add registers el under l and returns it. An empty ID is generated.
func (d *Driver) Add(l locator.Locator, el *Element) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el.ID == "" {
		d.nextID++
		el.ID = fmt.Sprintf("mock-%d", d.nextID)
	}
	if el.Bounds == (core.Bounds{}) {
		el.Bounds = core.Bounds{X: 100, Y: 200, Width: 200, Height: 50}
	}
	d.elements[l] = el
	d.byID[el.ID] = el
	return el
}

// Show registers a visible element with the given text.
func (d *Driver) Show(l locator.Locator, text string) *Element {
	return d.Add(l, &Element{Text: text})
}

// ShowAfter registers an element that appears after delay.
func (d *Driver) ShowAfter(l locator.Locator, delay time.Duration) *Element {
	return d.Add(l, &Element{VisibleFrom: time.Now().Add(delay)})
}

// HideAfter makes a registered element disappear after delay.
func (d *Driver) HideAfter(l locator.Locator, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[l]; ok {
		el.VisibleUntil = time.Now().Add(delay)
	}
}

// Remove unregisters the element under l.
func (d *Driver) Remove(l locator.Locator) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[l]; ok {
		delete(d.byID, el.ID)
		delete(d.elements, l)
	}
}

// SetText changes the text of the element under l.
func (d *Driver) SetText(l locator.Locator, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[l]; ok {
		el.Text = text
	}
}

// FailOn makes every call of the named method ("FindElements", "Click", ...)
// return err. A nil err clears the failure.
func (d *Driver) FailOn(method string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.errs, method)
		return
	}
	d.errs[method] = err
}

func (d *Driver) failure(method string) error {
	return d.errs[method]
}

func (el *Element) present(now time.Time) bool {
	if !el.VisibleFrom.IsZero() && now.Before(el.VisibleFrom) {
		return false
	}
	if !el.VisibleUntil.IsZero() && !now.Before(el.VisibleUntil) {
		return false
	}
	if el.AppearAfterFinds > 0 && el.finds < el.AppearAfterFinds {
		return false
	}
	if el.GoneAfterFinds > 0 && el.finds > el.GoneAfterFinds {
		return false
	}
	return true
}

func (d *Driver) lookup(elementID string) (*Element, error) {
	el, ok := d.byID[elementID]
	if !ok || !el.present(time.Now()) {
		return nil, fmt.Errorf("stale element reference: %s", elementID)
	}
	return el, nil
}

// FindElements implements core.Driver.
func (d *Driver) FindElements(ctx context.Context, strategy, value string) ([]string, error) {
	if d.Config.FindDelay > 0 {
		select {
		case <-time.After(d.Config.FindDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("FindElements"); err != nil {
		return nil, err
	}

	l := locator.New(locator.Strategy(strategy), value)
	d.finds[l]++
	el, ok := d.elements[l]
	if !ok {
		return []string{}, nil
	}
	el.finds++
	if !el.present(time.Now()) {
		return []string{}, nil
	}
	return []string{el.ID}, nil
}

// ElementText implements core.Driver.
func (d *Driver) ElementText(_ context.Context, elementID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("ElementText"); err != nil {
		return "", err
	}
	el, err := d.lookup(elementID)
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

// ElementAttribute implements core.Driver. "text" and "value" fall back to
// the element text.
func (d *Driver) ElementAttribute(_ context.Context, elementID, name string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("ElementAttribute"); err != nil {
		return "", err
	}
	el, err := d.lookup(elementID)
	if err != nil {
		return "", err
	}
	if v, ok := el.Attributes[name]; ok {
		return v, nil
	}
	if name == "text" || name == "value" {
		return el.Text, nil
	}
	return "", nil
}

// ElementDisplayed implements core.Driver.
func (d *Driver) ElementDisplayed(_ context.Context, elementID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("ElementDisplayed"); err != nil {
		return false, err
	}
	el, err := d.lookup(elementID)
	if err != nil {
		return false, err
	}
	return !el.Hidden, nil
}

// ElementRect implements core.Driver.
func (d *Driver) ElementRect(_ context.Context, elementID string) (core.Bounds, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, err := d.lookup(elementID)
	if err != nil {
		return core.Bounds{}, err
	}
	return el.Bounds, nil
}

// Click implements core.Driver.
func (d *Driver) Click(_ context.Context, elementID string) error {
	d.mu.Lock()
	if err := d.failure("Click"); err != nil {
		d.mu.Unlock()
		return err
	}
	el, err := d.lookup(elementID)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	d.clicks = append(d.clicks, elementID)
	hook := el.OnClick
	d.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return nil
}

// LongPress implements core.Driver.
func (d *Driver) LongPress(_ context.Context, elementID string, duration time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("LongPress"); err != nil {
		return err
	}
	if _, err := d.lookup(elementID); err != nil {
		return err
	}
	d.longPresses[elementID] = duration
	return nil
}

// Drag implements core.Driver.
func (d *Driver) Drag(_ context.Context, elementID string, dx, dy int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("Drag"); err != nil {
		return err
	}
	if _, err := d.lookup(elementID); err != nil {
		return err
	}
	d.drags = append(d.drags, Drag{ElementID: elementID, DX: dx, DY: dy})
	return nil
}

// Swipe implements core.Driver.
func (d *Driver) Swipe(_ context.Context, from, to core.Point, duration time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("Swipe"); err != nil {
		return err
	}
	d.swipes = append(d.swipes, Swipe{From: from, To: to, Duration: duration})
	return nil
}

// SendKeys implements core.Driver.
func (d *Driver) SendKeys(_ context.Context, elementID, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("SendKeys"); err != nil {
		return err
	}
	if _, err := d.lookup(elementID); err != nil {
		return err
	}
	d.keys[elementID] += text
	return nil
}

// ScreenSize implements core.Driver.
func (d *Driver) ScreenSize(context.Context) (int, int, error) {
	return d.Config.ScreenWidth, d.Config.ScreenHeight, nil
}

// OpenNotifications implements core.Driver.
func (d *Driver) OpenNotifications(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("OpenNotifications"); err != nil {
		return err
	}
	d.notifications++
	return nil
}

// Screenshot returns a mock PNG image.
func (d *Driver) Screenshot(context.Context) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure("Screenshot"); err != nil {
		return nil, err
	}
	d.screenshots++
	// Minimal valid PNG (1x1 transparent pixel)
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52, // IHDR chunk
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}, nil
}

// Source returns a flat Android-style hierarchy of the present elements.
func (d *Driver) Source(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	b.WriteString(`<hierarchy rotation="0">`)
	now := time.Now()
	ids := make([]string, 0, len(d.byID))
	for id := range d.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		el := d.byID[id]
		if !el.present(now) {
			continue
		}
		fmt.Fprintf(&b, `<android.view.View resource-id=%q text=%q bounds="[%d,%d][%d,%d]" displayed="%t"/>`,
			el.ID, el.Text, el.Bounds.X, el.Bounds.Y, el.Bounds.X+el.Bounds.Width, el.Bounds.Y+el.Bounds.Height, !el.Hidden)
	}
	b.WriteString(`</hierarchy>`)
	return b.String(), nil
}

// GetPlatformInfo returns mock platform info.
func (d *Driver) GetPlatformInfo() *core.PlatformInfo {
	return &core.PlatformInfo{
		Platform:     d.Config.Platform,
		DeviceID:     d.Config.DeviceID,
		DeviceName:   "Mock Device",
		OSVersion:    "1.0",
		ScreenWidth:  d.Config.ScreenWidth,
		ScreenHeight: d.Config.ScreenHeight,
	}
}

// Recorded interactions.

// Clicks returns the ids of clicked elements in order.
func (d *Driver) Clicks() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.clicks...)
}

// Clicked reports how many times the element under l was clicked.
func (d *Driver) Clicked(l locator.Locator) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[l]
	if !ok {
		return 0
	}
	n := 0
	for _, id := range d.clicks {
		if id == el.ID {
			n++
		}
	}
	return n
}

// LongPressed returns the hold duration of the last long press on l.
func (d *Driver) LongPressed(l locator.Locator) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[l]
	if !ok {
		return 0, false
	}
	dur, ok := d.longPresses[el.ID]
	return dur, ok
}

// Drags returns the recorded drags.
func (d *Driver) Drags() []Drag {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Drag(nil), d.drags...)
}

// Swipes returns the recorded swipes.
func (d *Driver) Swipes() []Swipe {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Swipe(nil), d.swipes...)
}

// Typed returns the text sent to the element under l.
func (d *Driver) Typed(l locator.Locator) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[l]
	if !ok {
		return ""
	}
	return d.keys[el.ID]
}

// Notifications returns how often the notification shade was opened.
func (d *Driver) Notifications() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notifications
}

// Screenshots returns how many screenshots were taken.
func (d *Driver) Screenshots() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.screenshots
}

// Finds returns how many lookups were made for l.
func (d *Driver) Finds(l locator.Locator) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.finds[l]
}
