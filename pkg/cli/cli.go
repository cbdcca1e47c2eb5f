// Package cli provides the command-line interface for messenger-pages.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/messenger-pages/pkg/config"
	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/driver/appium"
	"github.com/devicelab-dev/messenger-pages/pkg/element"
	"github.com/devicelab-dev/messenger-pages/pkg/logger"
	"github.com/devicelab-dev/messenger-pages/pkg/pages"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Config file (default: messenger.yaml in the working directory)",
		EnvVars: []string{"MESSENGER_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "platform",
		Aliases: []string{"p"},
		Usage:   "Platform to run on (android, ios)",
		EnvVars: []string{"MESSENGER_PLATFORM"},
	},
	&cli.StringFlag{
		Name:    "service",
		Usage:   "Execution service (local, sauce)",
		EnvVars: []string{"MESSENGER_SERVICE"},
	},
	&cli.StringFlag{
		Name:    "appium-url",
		Usage:   "Appium server URL",
		EnvVars: []string{"APPIUM_URL"},
	},
	&cli.StringFlag{
		Name:    "user",
		Usage:   "First name of the signed-in user",
		EnvVars: []string{"MESSENGER_USER_FIRST_NAME"},
	},
	&cli.StringFlag{
		Name:    "artifacts",
		Usage:   "Directory for failure screenshots and hierarchies",
		EnvVars: []string{"MESSENGER_ARTIFACTS"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Log file path",
		EnvVars: []string{"MESSENGER_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable debug logging",
		EnvVars: []string{"MESSENGER_VERBOSE"},
	},
	&cli.BoolFlag{
		Name:  "no-ansi",
		Usage: "Disable ANSI colors",
	},
}

// Commands are the subcommands of the CLI.
var Commands = []*cli.Command{
	resolveCommand,
	descriptorsCommand,
	checkCommand,
	waitCommand,
	tapCommand,
	inspectCommand,
	openCommand,
	unreadCommand,
	notificationCommand,
}

// NewApp builds the CLI application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "messenger-pages",
		Usage:   "Drive the messenger app screens on a device through Appium",
		Version: Version,
		Description: `messenger-pages resolves element descriptors to platform locators and
runs page actions of the messenger app against an Appium session.

Examples:
  messenger-pages -p ios resolve conversationTile "Jane Doe"
  messenger-pages descriptors --filter unread
  messenger-pages check --timeout 3s conversationTile "Jane Doe"
  messenger-pages -p android open --wait "Jane Doe"`,
		Flags:    GlobalFlags,
		Commands: Commands,
		Before: func(c *cli.Context) error {
			if c.Bool("no-ansi") {
				color.NoColor = true
			}
			return nil
		},
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewApp().Run(os.Args); err != nil {
		if cat := core.CategoryOf(err); cat != core.ErrCategoryNone {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", cat, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// flagString returns a flag from the command or, when unset there, from the
// global flags in a parent context.
func flagString(c *cli.Context, name string) string {
	for _, ctx := range c.Lineage() {
		if ctx != nil && ctx.IsSet(name) {
			return ctx.String(name)
		}
	}
	return c.String(name)
}

func flagBool(c *cli.Context, name string) bool {
	for _, ctx := range c.Lineage() {
		if ctx != nil && ctx.IsSet(name) {
			return ctx.Bool(name)
		}
	}
	return c.Bool(name)
}

// loadConfig reads the config file and applies the global flags over it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := flagString(c, "config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	if v := flagString(c, "platform"); v != "" {
		cfg.Platform = v
	}
	if v := flagString(c, "service"); v != "" {
		cfg.Service = v
	}
	if v := flagString(c, "appium-url"); v != "" {
		cfg.AppiumURL = v
	}
	if v := flagString(c, "user"); v != "" {
		cfg.UserFirstName = v
	}
	if v := flagString(c, "artifacts"); v != "" {
		cfg.Artifacts.Dir = v
	}
	if v := flagString(c, "log-file"); v != "" {
		cfg.Log.File = v
	}
	if flagBool(c, "verbose") {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// connect opens the device session for cfg.
var connect = func(ctx context.Context, cfg *config.Config) (core.Driver, func(), error) {
	caps, err := cfg.SessionCapabilities()
	if err != nil {
		return nil, nil, err
	}
	d, err := appium.NewDriver(ctx, cfg.AppiumURL, caps)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.AppiumURL, err)
	}
	return d, func() {
		if err := d.Close(context.Background()); err != nil {
			logger.Warn("close session: %v", err)
		}
	}, nil
}

// session is a connected device with the page objects on top.
type session struct {
	h     *element.Helpers
	app   *pages.App
	close func()
}

func openSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	env, err := cfg.Env()
	if err != nil {
		return nil, err
	}
	if err := logger.InitWithOptions(logger.Options{Path: cfg.LogFile(), Level: cfg.Log.Level}); err != nil {
		return nil, err
	}

	d, closeDriver, err := connect(c.Context, cfg)
	if err != nil {
		logger.Close()
		return nil, err
	}
	logger.Info("session on %s via %s (%s)", env.Platform, cfg.AppiumURL, env.Service)

	h := element.New(d, nil, env, cfg.ElementConfig())
	return &session{
		h:   h,
		app: pages.NewApp(h, pages.Options{UserFirstName: cfg.UserFirstName, OpenWait: cfg.OpenWait()}),
		close: func() {
			closeDriver()
			logger.Close()
		},
	}, nil
}
