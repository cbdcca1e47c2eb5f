package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/driver/appium"
	"github.com/devicelab-dev/messenger-pages/pkg/element"
	"github.com/devicelab-dev/messenger-pages/pkg/locator"
	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

// targetFlags select an element by raw locator instead of descriptor.
var targetFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "locator",
		Aliases: []string{"l"},
		Usage:   "Raw selector instead of a descriptor (~id, //xpath, -ios predicate string:...)",
	},
	&cli.DurationFlag{
		Name:    "timeout",
		Aliases: []string{"t"},
		Usage:   "How long to look for the element (default: configured timeout)",
	},
}

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "Check whether an element is present",
	ArgsUsage: "NAME [PARAM...]",
	Description: `Look for an element until it is present, or absent with --absent.
Exits non-zero when the expectation is not met.

Examples:
  messenger-pages check conversationTile "Jane Doe"
  messenger-pages check --absent --timeout 10s successPopup
  messenger-pages check --locator "~Message Input"`,
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "absent",
			Usage: "Expect the element to be absent",
		},
	}, targetFlags...),
	Action: runCheck,
}

var waitCommand = &cli.Command{
	Name:      "wait",
	Usage:     "Wait for an element to appear or go away",
	ArgsUsage: "NAME [PARAM...]",
	Description: `Poll for an element and fail when it does not show up in time.

Examples:
  messenger-pages wait --timeout 90s escalationTile ESC-1
  messenger-pages wait --gone --interval 1s successPopup`,
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "gone",
			Usage: "Wait for the element to go away",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "Polling interval (default: configured interval)",
		},
	}, targetFlags...),
	Action: runWait,
}

var tapCommand = &cli.Command{
	Name:      "tap",
	Usage:     "Tap an element",
	ArgsUsage: "NAME [PARAM...]",
	Flags:     targetFlags,
	Action:    runTap,
}

var inspectCommand = &cli.Command{
	Name:  "inspect",
	Usage: "Print the labeled elements on screen",
	Description: `Fetch the page source and print the displayed elements that carry an
identifier, indented by depth. Useful for writing new descriptors.

Examples:
  messenger-pages inspect
  messenger-pages inspect --filter unread
  messenger-pages inspect --at 540,1200`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Usage: "Only print elements whose identifiers contain this text",
		},
		&cli.StringFlag{
			Name:  "at",
			Usage: "Only print elements containing the screen point X,Y",
		},
	},
	Action: runInspect,
}

func targetFrom(c *cli.Context) (element.Target, error) {
	if raw := c.String("locator"); raw != "" {
		return locator.Parse(raw)
	}
	if c.NArg() < 1 {
		return nil, fmt.Errorf("a descriptor name or --locator is required")
	}
	return selectors.D(c.Args().First(), c.Args().Tail()...), nil
}

func parsePoint(s string) (core.Point, error) {
	var p core.Point
	if _, err := fmt.Sscanf(s, "%d,%d", &p.X, &p.Y); err != nil {
		return p, fmt.Errorf("invalid point %q (expected X,Y): %w", s, err)
	}
	return p, nil
}

func runCheck(c *cli.Context) error {
	t, err := targetFrom(c)
	if err != nil {
		return err
	}
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	expect := !c.Bool("absent")
	start := time.Now()
	present, err := s.h.IsPresent(c.Context, t, expect, c.Duration("timeout"))
	if err != nil {
		return err
	}

	w := c.App.Writer
	state := "absent"
	if present {
		state = "present"
	}
	if present == expect {
		printPass(w, "%s %s (%s)", t.Describe(), state, formatDuration(time.Since(start)))
		return nil
	}
	printFail(w, "%s %s (%s)", t.Describe(), state, formatDuration(time.Since(start)))
	return fmt.Errorf("%s is %s", t.Describe(), state)
}

func runWait(c *cli.Context) error {
	t, err := targetFrom(c)
	if err != nil {
		return err
	}
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	timeout := c.Duration("timeout")
	if timeout <= 0 {
		timeout = element.DefaultTimeout
	}
	start := time.Now()
	if err := s.h.WaitForExist(c.Context, t, timeout, c.Duration("interval"), c.Bool("gone")); err != nil {
		printFail(c.App.Writer, "%v", err)
		printAttachments(c.App.Writer, s.h.CaptureFailure(c.Context, "wait", err))
		return err
	}
	printPass(c.App.Writer, "%s (%s)", t.Describe(), formatDuration(time.Since(start)))
	return nil
}

func runTap(c *cli.Context) error {
	t, err := targetFrom(c)
	if err != nil {
		return err
	}
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.h.ClickWithin(c.Context, t, c.Duration("timeout")); err != nil {
		return err
	}
	printPass(c.App.Writer, "tapped %s", t.Describe())
	return nil
}

func runInspect(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	source, err := s.h.Driver().Source(c.Context)
	if err != nil {
		return err
	}
	nodes, _, err := appium.ParseHierarchy(source)
	if err != nil {
		return err
	}

	var at *core.Point
	if v := c.String("at"); v != "" {
		p, err := parsePoint(v)
		if err != nil {
			return err
		}
		at = &p
	}

	w := c.App.Writer
	if info := s.h.Driver().GetPlatformInfo(); info != nil {
		_, _ = boldColor.Fprintf(w, "%s %s (%s)\n", info.DeviceName, info.OSVersion, info.Platform)
	}

	filter := strings.ToLower(c.String("filter"))
	count := 0
	for _, n := range appium.Labeled(nodes) {
		ids := strings.Join(n.Identifiers(), " ")
		if filter != "" && !strings.Contains(strings.ToLower(ids), filter) {
			continue
		}
		if at != nil && !n.Bounds.Contains(at.X, at.Y) {
			continue
		}
		count++
		cx, cy := n.Bounds.Center()
		_, _ = fmt.Fprint(w, strings.Repeat("  ", n.Depth))
		_, _ = valueColor.Fprint(w, n.Kind())
		_, _ = fmt.Fprintf(w, " %s", ids)
		_, _ = grayColor.Fprintf(w, " [%d,%d %dx%d] @%d,%d\n", n.Bounds.X, n.Bounds.Y, n.Bounds.Width, n.Bounds.Height, cx, cy)
	}
	_, _ = grayColor.Fprintf(w, "%d element(s)\n", count)
	return nil
}
