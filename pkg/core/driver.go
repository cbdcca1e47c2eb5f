// Package core provides the shared model for messenger-pages: the contract of
// the device-automation driver, element information and structured errors.
package core

import (
	"context"
	"time"
)

// Driver is the device-automation backend the interaction helpers run on.
// Implementations: Appium (W3C WebDriver), mock.
//
// FindElements returns an empty slice, not an error, when nothing matches.
// Every other method returns an error only for backend failures.
type Driver interface {
	// Element lookup
	FindElements(ctx context.Context, strategy, value string) ([]string, error)

	// Element queries
	ElementText(ctx context.Context, elementID string) (string, error)
	ElementAttribute(ctx context.Context, elementID, name string) (string, error)
	ElementDisplayed(ctx context.Context, elementID string) (bool, error)
	ElementRect(ctx context.Context, elementID string) (Bounds, error)

	// Gestures
	Click(ctx context.Context, elementID string) error
	LongPress(ctx context.Context, elementID string, duration time.Duration) error
	Drag(ctx context.Context, elementID string, dx, dy int) error
	Swipe(ctx context.Context, from, to Point, duration time.Duration) error

	// Input
	SendKeys(ctx context.Context, elementID, text string) error

	// Device
	ScreenSize(ctx context.Context) (width, height int, err error)
	OpenNotifications(ctx context.Context) error
	Screenshot(ctx context.Context) ([]byte, error)
	Source(ctx context.Context) (string, error)
	GetPlatformInfo() *PlatformInfo
}

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds represents element position and size
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the bounds
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains checks if a point is within the bounds
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// PlatformInfo contains device and platform details
type PlatformInfo struct {
	Platform     string `json:"platform"`               // ios, android
	OSVersion    string `json:"osVersion"`              // e.g., "17.0", "14"
	DeviceName   string `json:"deviceName"`             // e.g., "iPhone 15 Pro", "Pixel 8"
	DeviceID     string `json:"deviceId"`               // Unique device identifier
	ScreenWidth  int    `json:"screenWidth,omitempty"`  // Screen width in pixels
	ScreenHeight int    `json:"screenHeight,omitempty"` // Screen height in pixels
	AppID        string `json:"appId,omitempty"`        // Bundle ID / Package name
}
