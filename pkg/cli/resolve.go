package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/messenger-pages/pkg/platform"
	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

var resolveCommand = &cli.Command{
	Name:      "resolve",
	Usage:     "Print the locator a descriptor resolves to",
	ArgsUsage: "NAME [PARAM...]",
	Description: `Resolve an element descriptor for the configured platform.
No device is needed.

Examples:
  messenger-pages -p ios resolve conversationTile "Jane Doe"
  messenger-pages -p android resolve --json unreadCountByTilePatient "John Roe" 2`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output the locator as JSON",
		},
	},
	Action: runResolve,
}

var descriptorsCommand = &cli.Command{
	Name:  "descriptors",
	Usage: "List the known element descriptors",
	Description: `List every descriptor with its parameter count and the platforms it
resolves on.

Examples:
  messenger-pages descriptors
  messenger-pages descriptors --filter unread`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Usage: "Only list names containing this text (case-insensitive)",
		},
	},
	Action: runDescriptors,
}

func runResolve(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("a descriptor name is required")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	env, err := cfg.Env()
	if err != nil {
		return err
	}

	d := selectors.D(c.Args().First(), c.Args().Tail()...)
	l, err := selectors.NewResolver(env.Platform, selectors.Default()).Resolve(d)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}
	_, _ = valueColor.Fprintf(w, "%s", l.Strategy)
	_, _ = fmt.Fprintf(w, " %s\n", l.Value)
	return nil
}

func runDescriptors(c *cli.Context) error {
	reg := selectors.Default()
	filter := strings.ToLower(c.String("filter"))

	seen := map[string]bool{}
	var names []string
	for _, p := range []platform.Platform{platform.Android, platform.IOS} {
		for _, n := range reg.Names(p) {
			if !seen[n] && strings.Contains(strings.ToLower(n), filter) {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)

	w := c.App.Writer
	_, _ = boldColor.Fprintf(w, "%-40s %5s  %-7s %-3s\n", "NAME", "ARGS", "ANDROID", "IOS")
	for _, n := range names {
		_, _ = fmt.Fprintf(w, "%-40s %5d  %-7s %-3s\n", n, reg.Arity(n),
			mark(reg.Table(platform.Android), n), mark(reg.Table(platform.IOS), n))
	}
	_, _ = grayColor.Fprintf(w, "%d descriptor(s)\n", len(names))
	return nil
}

func mark(t selectors.Table, name string) string {
	if _, ok := t[name]; ok {
		return "yes"
	}
	return "-"
}
