package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// Output colors. fatih/color disables them when stdout is not a terminal or
// NO_COLOR is set; --no-ansi disables them explicitly.
var (
	passColor  = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	valueColor = color.New(color.FgCyan)
	grayColor  = color.New(color.Faint)
	boldColor  = color.New(color.Bold)
)

func printPass(w io.Writer, format string, a ...interface{}) {
	_, _ = passColor.Fprint(w, "✓ ")
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}

func printFail(w io.Writer, format string, a ...interface{}) {
	_, _ = failColor.Fprint(w, "✗ ")
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}

func printWarn(w io.Writer, format string, a ...interface{}) {
	_, _ = warnColor.Fprint(w, "! ")
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}

func printAttachments(w io.Writer, attachments []core.Attachment) {
	for _, a := range attachments {
		where := a.Path
		if where == "" {
			where = "(in memory)"
		}
		_, _ = grayColor.Fprintf(w, "  %s: %s\n", a.Name, where)
	}
}

func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	if ms < 60000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	}
	mins := ms / 60000
	secs := (ms % 60000) / 1000
	return fmt.Sprintf("%dm %ds", mins, secs)
}
