// Package notify delivers run reports to chat channels. Notifications are
// best effort; a delivery failure is logged and never fails a run.
package notify

import (
	"fmt"
	"strings"

	"github.com/mklimuk/life-pilot/pkg/engine"
)

// Notifier sends one run report.
type Notifier interface {
	Notify(report *engine.Report) error
}

// FormatReport renders a run report as a short plain-text message.
func FormatReport(report *engine.Report) string {
	var sb strings.Builder
	if report.DryRun {
		sb.WriteString("Dashboard dry run finished.\n")
	} else {
		sb.WriteString("Dashboard updated.\n")
	}
	fmt.Fprintf(&sb, "Notes scanned: %d (%d journal)\n", report.NotesScanned, report.JournalEntries)
	fmt.Fprintf(&sb, "Timeline entries added: %d\n", report.TimelineAdded)
	if report.GoalsAdded > 0 {
		fmt.Fprintf(&sb, "Goals added: %d\n", report.GoalsAdded)
	}
	if report.InspirationAdded > 0 {
		fmt.Fprintf(&sb, "Inspiration items added: %d\n", report.InspirationAdded)
	}
	if report.Mood != "" {
		fmt.Fprintf(&sb, "Mood: %s\n", report.Mood)
	}
	if report.FriendlyNote != "" {
		sb.WriteString("\n")
		sb.WriteString(report.FriendlyNote)
	}
	return strings.TrimRight(sb.String(), "\n")
}
