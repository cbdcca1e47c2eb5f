package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/messenger-pages/pkg/pages"
)

var openCommand = &cli.Command{
	Name:      "open",
	Usage:     "Open an existing conversation, recovering from wherever the app is",
	ArgsUsage: "TITLE",
	Description: `Make sure the conversation TITLE is open. When no conversation is open
the roster is refreshed and scrolled to the tile; when the tile is missing a new
message to TITLE is composed.

Examples:
  messenger-pages open "Jane Doe"
  messenger-pages --service sauce open --wait "Jane Doe"
  messenger-pages open --patient "John Roe"`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "wait",
			Usage: "Wait for the conversation to open on slow services",
		},
		&cli.BoolFlag{
			Name:  "patient",
			Usage: "Look for a patient conversation tile",
		},
	},
	Action: runOpen,
}

var unreadCommand = &cli.Command{
	Name:      "unread",
	Usage:     "Wait for the unread count of a tile and print it",
	ArgsUsage: "TILE EXPECTED",
	Description: `Wait for the unread badge of TILE to show EXPECTED and print the count.
A count that never matches is reported as a warning with the captured artifacts.

Examples:
  messenger-pages unread "Jane Doe" 3`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "patient",
			Usage: "Read the badge of a patient tile",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail when the count does not match",
		},
	},
	Action: runUnread,
}

var notificationCommand = &cli.Command{
	Name:      "notification",
	Usage:     "Open, check or tap an app notification",
	ArgsUsage: "ACTION [TEXT]",
	Description: `ACTION is one of open, present or click.

Examples:
  messenger-pages notification open
  messenger-pages notification present "New message from Jane"
  messenger-pages notification click "New message from Jane"`,
	Action: runNotification,
}

func runOpen(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one conversation title is required")
	}
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	title := c.Args().First()
	nav, err := s.app.Home.OpenExistingConversation(c.Context, title, pages.OpenOptions{
		WaitForOpen: c.Bool("wait"),
		PatientSide: c.Bool("patient"),
	})
	if err != nil {
		printFail(c.App.Writer, "open %q: %v", title, err)
		return err
	}
	printPass(c.App.Writer, "%s: %s", title, nav)
	return nil
}

func runUnread(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("a tile name and the expected count are required")
	}
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	tile, expect := c.Args().Get(0), c.Args().Get(1)
	var res pages.Soft[string]
	if c.Bool("patient") {
		res, err = s.app.Home.GetUnreadMessagesCountByTileForPatient(c.Context, tile, expect)
	} else {
		res, err = s.app.Home.GetUnreadMessagesCountByTile(c.Context, tile, expect)
	}
	if err != nil {
		return err
	}

	w := c.App.Writer
	if res.OK {
		printPass(w, "%s unread: %s", tile, res.Value)
		return nil
	}
	printWarn(w, "%s unread: %q, expected %q: %v", tile, res.Value, expect, res.Err)
	if c.Bool("strict") {
		return res.Err
	}
	return nil
}

func runNotification(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("an action is required (open, present, click)")
	}
	action, err := pages.ParseNotificationAction(c.Args().First())
	if err != nil {
		return err
	}
	text := c.Args().Get(1)
	if action != pages.NotificationOpen && text == "" {
		return fmt.Errorf("%s needs the notification text", action)
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	ok, err := s.app.Home.AppNotification(c.Context, action, text)
	if err != nil {
		return err
	}
	if ok {
		printPass(c.App.Writer, "notification %s %s", action, text)
		return nil
	}
	printFail(c.App.Writer, "notification %s %s", action, text)
	return fmt.Errorf("notification %q not found", text)
}
