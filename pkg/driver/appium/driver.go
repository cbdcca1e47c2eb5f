package appium

import (
	"context"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// Driver implements core.Driver using Appium server.
type Driver struct {
	client *Client
	appID  string // bundle id or package from capabilities
}

var _ core.Driver = (*Driver)(nil)

// NewDriver connects to serverURL and creates a session.
func NewDriver(ctx context.Context, serverURL string, capabilities map[string]interface{}) (*Driver, error) {
	client := NewClient(serverURL)

	if err := client.Connect(ctx, capabilities); err != nil {
		return nil, err
	}

	return newDriver(client, capabilities), nil
}

func newDriver(client *Client, capabilities map[string]interface{}) *Driver {
	d := &Driver{client: client}
	if appID, ok := capabilities["appium:appPackage"].(string); ok {
		d.appID = appID
	} else if appID, ok := capabilities["appium:bundleId"].(string); ok {
		d.appID = appID
	}
	return d
}

// Close disconnects from Appium server.
func (d *Driver) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Client exposes the underlying HTTP client.
func (d *Driver) Client() *Client {
	return d.client
}

// FindElements implements core.Driver. A "no such element" response is
// reported as no match.
func (d *Driver) FindElements(ctx context.Context, strategy, value string) ([]string, error) {
	ids, err := d.client.FindElements(ctx, strategy, value)
	if isNotFound(err) {
		return []string{}, nil
	}
	return ids, err
}

// ElementText implements core.Driver.
func (d *Driver) ElementText(ctx context.Context, elementID string) (string, error) {
	return d.client.GetElementText(ctx, elementID)
}

// ElementAttribute implements core.Driver.
func (d *Driver) ElementAttribute(ctx context.Context, elementID, name string) (string, error) {
	return d.client.GetElementAttribute(ctx, elementID, name)
}

// ElementDisplayed implements core.Driver.
func (d *Driver) ElementDisplayed(ctx context.Context, elementID string) (bool, error) {
	return d.client.IsElementDisplayed(ctx, elementID)
}

// ElementRect implements core.Driver.
func (d *Driver) ElementRect(ctx context.Context, elementID string) (core.Bounds, error) {
	return d.client.GetElementRect(ctx, elementID)
}

// Click implements core.Driver.
func (d *Driver) Click(ctx context.Context, elementID string) error {
	return d.client.ClickElement(ctx, elementID)
}

// LongPress implements core.Driver.
func (d *Driver) LongPress(ctx context.Context, elementID string, duration time.Duration) error {
	return d.client.LongPressElement(ctx, elementID, int(duration.Milliseconds()))
}

// Drag implements core.Driver.
func (d *Driver) Drag(ctx context.Context, elementID string, dx, dy int) error {
	return d.client.DragElement(ctx, elementID, dx, dy)
}

// Swipe implements core.Driver.
func (d *Driver) Swipe(ctx context.Context, from, to core.Point, duration time.Duration) error {
	return d.client.Swipe(ctx, from.X, from.Y, to.X, to.Y, int(duration.Milliseconds()))
}

// SendKeys implements core.Driver.
func (d *Driver) SendKeys(ctx context.Context, elementID, text string) error {
	return d.client.SetElementValue(ctx, elementID, text)
}

// ScreenSize implements core.Driver. The size is read once at session
// creation and refetched only when that read failed.
func (d *Driver) ScreenSize(ctx context.Context) (int, int, error) {
	w, h := d.client.ScreenSize()
	if w > 0 && h > 0 {
		return w, h, nil
	}
	d.client.fetchScreenSize(ctx)
	w, h = d.client.ScreenSize()
	if w == 0 || h == 0 {
		return 0, 0, core.ErrDriver.WithMessage("screen size unavailable")
	}
	return w, h, nil
}

// OpenNotifications implements core.Driver.
func (d *Driver) OpenNotifications(ctx context.Context) error {
	return d.client.OpenNotifications(ctx)
}

// Screenshot implements core.Driver.
func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	return d.client.Screenshot(ctx)
}

// Source implements core.Driver.
func (d *Driver) Source(ctx context.Context) (string, error) {
	return d.client.Source(ctx)
}

// GetPlatformInfo implements core.Driver.
func (d *Driver) GetPlatformInfo() *core.PlatformInfo {
	w, h := d.client.ScreenSize()
	name, version := d.client.Device()
	return &core.PlatformInfo{
		Platform:     d.client.Platform(),
		DeviceName:   name,
		OSVersion:    version,
		DeviceID:     d.client.SessionID(),
		ScreenWidth:  w,
		ScreenHeight: h,
		AppID:        d.appID,
	}
}
