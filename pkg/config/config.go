// Package config handles the run configuration of messenger-pages
// (messenger.yaml): target platform and service, the Appium endpoint,
// element timings, failure artifacts and logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/element"
	"github.com/devicelab-dev/messenger-pages/pkg/platform"
)

// DefaultAppiumURL is the local Appium server.
const DefaultAppiumURL = "http://127.0.0.1:4723"

// Config represents the run configuration.
type Config struct {
	// Target
	Platform      string `yaml:"platform"`      // android or ios
	Service       string `yaml:"service"`       // local or a device cloud such as sauce
	AppiumURL     string `yaml:"appiumURL"`     // Appium server URL
	UserFirstName string `yaml:"userFirstName"` // signed-in user, labels the iOS settings icon

	// Extra session capabilities, merged over the platform defaults
	Capabilities map[string]interface{} `yaml:"capabilities"`

	Timeouts  Timeouts            `yaml:"timeouts"`
	Artifacts core.ArtifactConfig `yaml:"artifacts"`
	Log       Log                 `yaml:"log"`
}

// Timeouts are element timings in milliseconds. Zero means the default.
type Timeouts struct {
	Click    int `yaml:"click"`    // wait for an element before tapping it
	Present  int `yaml:"present"`  // default presence check window
	Poll     int `yaml:"poll"`     // interval between checks
	OpenWait int `yaml:"openWait"` // extra wait for a conversation to open on slow services
}

// Log configures the log file.
type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() *Config {
	return &Config{
		Platform:  platform.Android.String(),
		Service:   string(platform.ServiceLocal),
		AppiumURL: DefaultAppiumURL,
		Timeouts: Timeouts{
			Click:    int(element.DefaultConfig().ClickTimeout / time.Millisecond),
			Present:  int(element.DefaultConfig().PresentTimeout / time.Millisecond),
			Poll:     int(element.DefaultConfig().PollInterval / time.Millisecond),
			OpenWait: 5000,
		},
		Artifacts: core.DefaultArtifactConfig(),
		Log:       Log{Level: "info"},
	}
}

// Load loads configuration from a file. Values the file leaves out keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, core.ErrInvalidConfig.WithMessagef("parse %s", path).WithCause(err)
	}
	return cfg, nil
}

// LoadFromDir looks for messenger.yaml or messenger.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{"messenger.yaml", "messenger.yml"} {
		configPath := filepath.Join(dir, name)
		if _, err := os.Stat(configPath); err == nil {
			return Load(configPath)
		}
	}

	// No config file found, use defaults
	return Defaults(), nil
}

// Validate checks the configuration. It fails with ErrUnsupportedPlatform for
// an unknown platform and ErrInvalidConfig for any other bad value.
func (c *Config) Validate() error {
	var errs []error
	if _, err := platform.Parse(c.Platform); err != nil {
		errs = append(errs, err)
	}
	if c.AppiumURL == "" {
		errs = append(errs, core.ErrMissingRequired.WithMessage("appiumURL is required"))
	}
	for name, v := range map[string]int{
		"timeouts.click":    c.Timeouts.Click,
		"timeouts.present":  c.Timeouts.Present,
		"timeouts.poll":     c.Timeouts.Poll,
		"timeouts.openWait": c.Timeouts.OpenWait,
	} {
		if v < 0 {
			errs = append(errs, core.ErrInvalidConfig.WithMessagef("%s must not be negative, got %d", name, v))
		}
	}
	return errors.Join(errs...)
}

// Env returns the platform and service the configuration targets.
func (c *Config) Env() (platform.Env, error) {
	p, err := platform.Parse(c.Platform)
	if err != nil {
		return platform.Env{}, err
	}
	return platform.Env{Platform: p, Service: platform.ParseService(c.Service)}, nil
}

// ElementConfig returns the element helper timings and artifact settings.
func (c *Config) ElementConfig() element.Config {
	artifacts := c.Artifacts
	artifacts.Dir = ResolvePath(artifacts.Dir)
	return element.Config{
		ClickTimeout:   ms(c.Timeouts.Click),
		PresentTimeout: ms(c.Timeouts.Present),
		PollInterval:   ms(c.Timeouts.Poll),
		Artifacts:      artifacts,
	}
}

// OpenWait returns the slow-service conversation open wait.
func (c *Config) OpenWait() time.Duration {
	return ms(c.Timeouts.OpenWait)
}

// LogFile returns the log file path, defaulting to <home>/logs/messenger.log.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogFile()
}

// SessionCapabilities returns the Appium capabilities for the session: the
// platform defaults with the configured capabilities on top.
func (c *Config) SessionCapabilities() (map[string]interface{}, error) {
	p, err := platform.Parse(c.Platform)
	if err != nil {
		return nil, err
	}
	caps := map[string]interface{}{}
	switch p {
	case platform.Android:
		caps["platformName"] = "Android"
		caps["appium:automationName"] = "UiAutomator2"
	case platform.IOS:
		caps["platformName"] = "iOS"
		caps["appium:automationName"] = "XCUITest"
	default:
		return nil, fmt.Errorf("no capabilities for platform %s", p)
	}
	for k, v := range c.Capabilities {
		caps[k] = v
	}
	return caps, nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
