package ui

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/voxlabs/voxbooth/booth"
	"github.com/voxlabs/voxbooth/script"
)

// renderTakes renders the take list, newest first, with the cursor row
// highlighted when the takes pane has focus.
func renderTakes(takes []booth.Take, cursor int, width int, focused bool) string {
	if len(takes) == 0 {
		return dimStyle.Render("no takes yet. press r to record")
	}

	var b strings.Builder
	for i, take := range takes {
		label := fmt.Sprintf("take %s  %s  %s",
			shortTakeID(take.ID),
			script.FormatTakeDuration(take.Duration),
			humanize.Time(take.CreatedAt),
		)
		label = truncate.StringWithTail(label, uint(width), "…")

		switch {
		case focused && i == cursor:
			b.WriteString(selectedItemStyle.Render("> " + label))
		default:
			b.WriteString("  " + label)
		}
		if i < len(takes)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// shortTakeID trims the nanosecond identifier to its tail for display;
// the tail is what differs between takes in a session.
func shortTakeID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return "…" + id[len(id)-6:]
}
