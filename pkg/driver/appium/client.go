// Package appium implements core.Driver on an Appium server via the W3C
// WebDriver protocol.
package appium

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// W3C WebDriver element identifier key (standard constant)
const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

// Client handles HTTP communication with Appium server.
type Client struct {
	serverURL string
	sessionID string
	client    *http.Client
	platform  string // ios, android
	device    string // deviceName reported by the session
	osVersion string
	screenW   int
	screenH   int
}

// NewClient creates a new Appium client.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client: &http.Client{
			Timeout: 2 * time.Minute, // session creation installs the app
		},
	}
}

// Connect creates a new session with the given capabilities.
func (c *Client) Connect(ctx context.Context, capabilities map[string]interface{}) error {
	body := map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": capabilities,
		},
	}

	resp, err := c.post(ctx, "/session", body)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	c.sessionID = resp.Get("value.sessionId").String()
	if c.sessionID == "" {
		return core.ErrNoSession.WithMessage("no session ID in response")
	}
	caps := resp.Get("value.capabilities")
	c.platform = strings.ToLower(caps.Get("platformName").String())
	c.device = caps.Get("deviceName").String()
	c.osVersion = caps.Get("platformVersion").String()

	c.fetchScreenSize(ctx)
	_ = c.SetImplicitWait(ctx, 0)

	// Element lookups are polled by the caller; the server must not add its
	// own idle or selector waits on top.
	if c.platform == "ios" {
		_ = c.SetSettings(ctx, map[string]interface{}{
			"waitForIdleTimeout":      0,
			"animationCoolOffTimeout": 0,
		})
	} else {
		_ = c.SetSettings(ctx, map[string]interface{}{
			"waitForIdleTimeout":     0,
			"waitForSelectorTimeout": 0,
		})
	}
	return nil
}

// Disconnect closes the session.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.delete(ctx, c.sessionPath())
	c.sessionID = ""
	return err
}

// SessionID returns the current session id, empty when not connected.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Platform returns the platform (ios/android).
func (c *Client) Platform() string {
	return c.platform
}

// Device returns the device name and OS version the session reported.
func (c *Client) Device() (name, osVersion string) {
	return c.device, c.osVersion
}

// ScreenSize returns the screen dimensions.
func (c *Client) ScreenSize() (int, int) {
	return c.screenW, c.screenH
}

func (c *Client) fetchScreenSize(ctx context.Context) {
	resp, err := c.get(ctx, c.sessionPath()+"/window/rect")
	if err != nil {
		return
	}
	c.screenW = int(resp.Get("value.width").Int())
	c.screenH = int(resp.Get("value.height").Int())
}

// Element Operations

// FindElement finds a single element.
func (c *Client) FindElement(ctx context.Context, strategy, value string) (string, error) {
	body := map[string]interface{}{
		"using": strategy,
		"value": value,
	}

	resp, err := c.post(ctx, c.sessionPath()+"/element", body)
	if err != nil {
		return "", err
	}

	id := extractElementID(resp.Get("value"))
	if id == "" {
		return "", core.ErrElementNotFound.WithMessagef("no element for %s=%s", strategy, value)
	}
	return id, nil
}

// FindElements finds multiple elements. No match is an empty slice.
func (c *Client) FindElements(ctx context.Context, strategy, value string) ([]string, error) {
	body := map[string]interface{}{
		"using": strategy,
		"value": value,
	}

	resp, err := c.post(ctx, c.sessionPath()+"/elements", body)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	resp.Get("value").ForEach(func(_, elem gjson.Result) bool {
		if id := extractElementID(elem); id != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids, nil
}

// ClickElement clicks an element using WebDriver standard endpoint.
func (c *Client) ClickElement(ctx context.Context, elementID string) error {
	_, err := c.post(ctx, c.elementPath(elementID)+"/click", nil)
	return err
}

// SetElementValue types text into an element.
func (c *Client) SetElementValue(ctx context.Context, elementID, text string) error {
	_, err := c.post(ctx, c.elementPath(elementID)+"/value", map[string]interface{}{
		"text": text,
	})
	return err
}

// GetElementText returns an element's text.
func (c *Client) GetElementText(ctx context.Context, elementID string) (string, error) {
	resp, err := c.get(ctx, c.elementPath(elementID)+"/text")
	if err != nil {
		return "", err
	}
	return resp.Get("value").String(), nil
}

// GetElementAttribute returns an element's attribute value.
func (c *Client) GetElementAttribute(ctx context.Context, elementID, name string) (string, error) {
	resp, err := c.get(ctx, c.elementPath(elementID)+"/attribute/"+name)
	if err != nil {
		return "", err
	}
	return resp.Get("value").String(), nil
}

// GetElementRect returns an element's position and size.
func (c *Client) GetElementRect(ctx context.Context, elementID string) (core.Bounds, error) {
	resp, err := c.get(ctx, c.elementPath(elementID)+"/rect")
	if err != nil {
		return core.Bounds{}, err
	}
	value := resp.Get("value")
	if !value.IsObject() {
		return core.Bounds{}, fmt.Errorf("invalid rect response")
	}
	return core.Bounds{
		X:      int(value.Get("x").Int()),
		Y:      int(value.Get("y").Int()),
		Width:  int(value.Get("width").Int()),
		Height: int(value.Get("height").Int()),
	}, nil
}

// IsElementDisplayed checks if element is visible.
func (c *Client) IsElementDisplayed(ctx context.Context, elementID string) (bool, error) {
	resp, err := c.get(ctx, c.elementPath(elementID)+"/displayed")
	if err != nil {
		return false, err
	}
	return resp.Get("value").Bool(), nil
}

// Touch/Gesture Operations (W3C Actions)

func (c *Client) performTouchAction(ctx context.Context, actions []map[string]interface{}) error {
	payload := []map[string]interface{}{
		{
			"type":       "pointer",
			"id":         "finger1",
			"parameters": map[string]interface{}{"pointerType": "touch"},
			"actions":    actions,
		},
	}
	_, err := c.post(ctx, c.sessionPath()+"/actions", map[string]interface{}{"actions": payload})
	return err
}

func elementOrigin(elementID string) map[string]interface{} {
	return map[string]interface{}{w3cElementKey: elementID}
}

// LongPressElement presses and holds the center of an element.
func (c *Client) LongPressElement(ctx context.Context, elementID string, durationMs int) error {
	return c.performTouchAction(ctx, []map[string]interface{}{
		{"type": "pointerMove", "duration": 0, "x": 0, "y": 0, "origin": elementOrigin(elementID)},
		{"type": "pointerDown", "button": 0},
		{"type": "pause", "duration": durationMs},
		{"type": "pointerUp", "button": 0},
	})
}

// DragElement presses the center of an element and moves the pointer by
// (dx, dy) before releasing.
func (c *Client) DragElement(ctx context.Context, elementID string, dx, dy int) error {
	return c.performTouchAction(ctx, []map[string]interface{}{
		{"type": "pointerMove", "duration": 0, "x": 0, "y": 0, "origin": elementOrigin(elementID)},
		{"type": "pointerDown", "button": 0},
		{"type": "pause", "duration": 250},
		{"type": "pointerMove", "duration": 500, "x": dx, "y": dy, "origin": "pointer"},
		{"type": "pointerUp", "button": 0},
	})
}

// Swipe performs a swipe gesture.
func (c *Client) Swipe(ctx context.Context, startX, startY, endX, endY, durationMs int) error {
	return c.performTouchAction(ctx, []map[string]interface{}{
		{"type": "pointerMove", "duration": 0, "x": startX, "y": startY},
		{"type": "pointerDown", "button": 0},
		{"type": "pointerMove", "duration": durationMs, "x": endX, "y": endY},
		{"type": "pointerUp", "button": 0},
	})
}

// Device

// OpenNotifications pulls down the notification shade (Android).
func (c *Client) OpenNotifications(ctx context.Context) error {
	_, err := c.post(ctx, c.sessionPath()+"/appium/device/open_notifications", nil)
	return err
}

// Screenshot returns a screenshot as PNG bytes.
func (c *Client) Screenshot(ctx context.Context) ([]byte, error) {
	resp, err := c.get(ctx, c.sessionPath()+"/screenshot")
	if err != nil {
		return nil, err
	}
	value := resp.Get("value")
	if value.Type != gjson.String {
		return nil, fmt.Errorf("invalid screenshot response")
	}
	return base64.StdEncoding.DecodeString(value.String())
}

// Source returns the page source XML.
func (c *Client) Source(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, c.sessionPath()+"/source")
	if err != nil {
		return "", err
	}
	return resp.Get("value").String(), nil
}

// SetImplicitWait sets the implicit wait timeout. Connect resets it to zero
// since lookups are polled by the caller.
func (c *Client) SetImplicitWait(ctx context.Context, timeout time.Duration) error {
	_, err := c.post(ctx, c.sessionPath()+"/timeouts", map[string]interface{}{
		"implicit": timeout.Milliseconds(),
	})
	return err
}

// SetSettings updates Appium driver settings.
// For Android UiAutomator2: waitForIdleTimeout, waitForSelectorTimeout
// For iOS XCUITest: waitForIdleTimeout, animationCoolOffTimeout
func (c *Client) SetSettings(ctx context.Context, settings map[string]interface{}) error {
	_, err := c.post(ctx, c.sessionPath()+"/appium/settings", map[string]interface{}{
		"settings": settings,
	})
	return err
}

// HTTP Helpers

func (c *Client) sessionPath() string {
	return "/session/" + c.sessionID
}

func (c *Client) elementPath(elementID string) string {
	return c.sessionPath() + "/element/" + elementID
}

func (c *Client) get(ctx context.Context, path string) (gjson.Result, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (gjson.Result, error) {
	if body == nil {
		body = map[string]interface{}{}
	}
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *Client) delete(ctx context.Context, path string) (gjson.Result, error) {
	return c.request(ctx, http.MethodDelete, path, nil)
}

func (c *Client) request(ctx context.Context, method, path string, body interface{}) (gjson.Result, error) {
	url := c.serverURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return gjson.Result{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gjson.Result{}, ctxErr
		}
		return gjson.Result{}, core.ErrServerUnreachable.
			WithMessagef("%s %s", method, c.serverURL).
			WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.ValidBytes(respBody) {
		return gjson.Result{}, fmt.Errorf("failed to parse response (HTTP %d): %.200s", resp.StatusCode, respBody)
	}
	result := gjson.ParseBytes(respBody)

	// Check for WebDriver error
	if errType := result.Get("value.error"); errType.Exists() {
		return result, webDriverError(errType.String(), result.Get("value.message").String())
	}

	return result, nil
}

// webDriverError maps a W3C error code to the error kinds callers branch on.
func webDriverError(code, message string) error {
	err := fmt.Errorf("%s: %s", code, message)
	switch code {
	case "no such element":
		return core.ErrElementNotFound.WithMessage(message).WithCause(err)
	case "invalid session id":
		return core.ErrNoSession.WithMessage(message).WithCause(err)
	case "invalid selector", "invalid argument":
		return core.ErrInvalidLocator.WithMessage(message).WithCause(err)
	default:
		return err
	}
}

func extractElementID(value gjson.Result) string {
	// W3C format
	if id := value.Get(w3cElementKey); id.Exists() {
		return id.String()
	}
	// Legacy format
	return value.Get("ELEMENT").String()
}

// isNotFound reports whether err is a "no such element" response.
func isNotFound(err error) bool {
	return errors.Is(err, core.ErrElementNotFound)
}
