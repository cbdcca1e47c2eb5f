package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/platform"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "messenger.yaml", `
platform: ios
service: sauce
appiumURL: https://ondemand.example.com/wd/hub
userFirstName: Jane
capabilities:
  appium:deviceName: iPhone 15
timeouts:
  click: 8000
  poll: 250
artifacts:
  dir: /tmp/artifacts
  captureOnTimeout: true
  uiHierarchy: true
log:
  file: /tmp/messenger.log
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Platform != "ios" {
		t.Errorf("expected platform ios, got %s", cfg.Platform)
	}
	if cfg.UserFirstName != "Jane" {
		t.Errorf("expected userFirstName Jane, got %s", cfg.UserFirstName)
	}
	if cfg.Capabilities["appium:deviceName"] != "iPhone 15" {
		t.Errorf("expected deviceName capability, got %v", cfg.Capabilities)
	}
	if cfg.Timeouts.Click != 8000 || cfg.Timeouts.Poll != 250 {
		t.Errorf("unexpected timeouts %+v", cfg.Timeouts)
	}
	if cfg.Timeouts.Present != 5000 {
		t.Errorf("expected default present timeout 5000, got %d", cfg.Timeouts.Present)
	}
	if !cfg.Artifacts.CaptureOnTimeout || !cfg.Artifacts.UIHierarchy {
		t.Errorf("expected artifact flags from file, got %+v", cfg.Artifacts)
	}
	if !cfg.Artifacts.CaptureOnSoftFailure || !cfg.Artifacts.Screenshot {
		t.Errorf("expected artifact defaults kept, got %+v", cfg.Artifacts)
	}
	if cfg.LogFile() != "/tmp/messenger.log" || cfg.Log.Level != "debug" {
		t.Errorf("unexpected log settings %+v", cfg.Log)
	}

	env, err := cfg.Env()
	if err != nil {
		t.Fatalf("Env() error: %v", err)
	}
	if env.Platform != platform.IOS || !env.Slow() {
		t.Errorf("unexpected env %+v", env)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/messenger.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "messenger.yaml", `capabilities: [invalid yaml`)

	_, err := Load(path)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "messenger.yaml", ``)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Platform != "android" || cfg.AppiumURL != DefaultAppiumURL {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromDir_Yml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "messenger.yml", `platform: ios`)

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Platform != "ios" {
		t.Errorf("expected platform ios, got %s", cfg.Platform)
	}
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Platform != "android" {
		t.Errorf("expected default platform, got %s", cfg.Platform)
	}
}

func TestLoadFromDir_PrefersYamlOverYml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "messenger.yaml", `platform: ios`)
	writeConfig(t, dir, "messenger.yml", `platform: android`)

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Platform != "ios" {
		t.Errorf("expected platform ios (from messenger.yaml), got %s", cfg.Platform)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"unknown platform", func(c *Config) { c.Platform = "windows" }, core.ErrUnsupportedPlatform},
		{"missing appium url", func(c *Config) { c.AppiumURL = "" }, core.ErrMissingRequired},
		{"negative timeout", func(c *Config) { c.Timeouts.Click = -1 }, core.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEnv_UnsupportedPlatform(t *testing.T) {
	cfg := Defaults()
	cfg.Platform = "symbian"

	if _, err := cfg.Env(); !errors.Is(err, core.ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestElementConfig(t *testing.T) {
	ResetHome()
	t.Setenv("MESSENGER_PAGES_HOME", "/test/home")
	defer ResetHome()

	cfg := Defaults()
	cfg.Timeouts.Click = 1500

	ec := cfg.ElementConfig()
	if ec.ClickTimeout != 1500*time.Millisecond {
		t.Errorf("ClickTimeout = %v", ec.ClickTimeout)
	}
	if ec.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v", ec.PollInterval)
	}
	if want := filepath.Join("/test/home", "artifacts"); ec.Artifacts.Dir != want {
		t.Errorf("Artifacts.Dir = %q, want %q", ec.Artifacts.Dir, want)
	}
	if cfg.OpenWait() != 5*time.Second {
		t.Errorf("OpenWait() = %v", cfg.OpenWait())
	}
	if want := filepath.Join("/test/home", "logs", "messenger.log"); cfg.LogFile() != want {
		t.Errorf("LogFile() = %q, want %q", cfg.LogFile(), want)
	}
}

func TestSessionCapabilities(t *testing.T) {
	cfg := Defaults()
	cfg.Capabilities = map[string]interface{}{
		"appium:automationName": "Espresso",
		"appium:udid":           "emulator-5554",
	}

	caps, err := cfg.SessionCapabilities()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caps["platformName"] != "Android" {
		t.Errorf("platformName = %v", caps["platformName"])
	}
	if caps["appium:automationName"] != "Espresso" {
		t.Errorf("configured capability should win, got %v", caps["appium:automationName"])
	}
	if caps["appium:udid"] != "emulator-5554" {
		t.Errorf("appium:udid = %v", caps["appium:udid"])
	}
}
