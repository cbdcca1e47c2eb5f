// Package platform defines the target platform and execution service of a run.
//
// Both values are decided once when a run starts and are passed explicitly to
// the resolver and the page objects through Env.
package platform

import (
	"strings"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// Platform is the mobile platform the app under test runs on.
type Platform int

const (
	Unknown Platform = iota
	Android
	IOS
)

// String returns the lowercase platform name.
func (p Platform) String() string {
	switch p {
	case Android:
		return "android"
	case IOS:
		return "ios"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	return p == Android || p == IOS
}

// Parse converts a platform name (case-insensitive) to a Platform.
// Unrecognized names return Unknown and core.ErrUnsupportedPlatform.
func Parse(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "android":
		return Android, nil
	case "ios":
		return IOS, nil
	default:
		return Unknown, core.ErrUnsupportedPlatform.WithMessagef("unsupported platform %q (expected android or ios)", s)
	}
}

// UnmarshalText lets Platform be decoded from YAML and flags.
func (p *Platform) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Service identifies where the device runs.
type Service string

const (
	ServiceLocal Service = "local"
	ServiceSauce Service = "sauce"
)

// ParseService normalizes a service name. Empty input means local.
func ParseService(s string) Service {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ServiceLocal
	}
	return Service(s)
}

// Env is the run configuration every page object and resolver receives.
type Env struct {
	Platform Platform
	Service  Service
}

// IsAndroid reports whether the run targets Android.
func (e Env) IsAndroid() bool { return e.Platform == Android }

// IsIOS reports whether the run targets iOS.
func (e Env) IsIOS() bool { return e.Platform == IOS }

// Slow reports whether the run is on Sauce Labs, where page objects add
// stabilizing waits.
func (e Env) Slow() bool { return e.Service == ServiceSauce }
