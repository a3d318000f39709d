package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"reminderd/internal/humanize"
	"reminderd/internal/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dormantStyle = lipgloss.NewStyle().Faint(true)
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderReminders prints a reminder listing as an aligned table, truncating
// descriptions to the terminal width.
func RenderReminders(reminders []models.Reminder) string {
	if len(reminders) == 0 {
		return "(no reminders)\n"
	}

	width := terminalWidth()
	// Fixed columns: id(8) prio(6) trigger(16) when(10) + separators.
	descrWidth := width - 8 - 6 - 16 - 10 - 8
	if descrWidth < 16 {
		descrWidth = 16
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s  %6s  %-16s  %-10s  %s",
		"ID", "PRIO", "TRIGGER", "WHEN", "DESCR")))
	b.WriteByte('\n')

	for i := range reminders {
		r := &reminders[i]
		line := fmt.Sprintf("%-8s  %6d  %-16s  %-10s  %s",
			r.ShortID(), r.Priority, triggerColumn(r), whenColumn(r), truncate(r.Descr, descrWidth))
		switch {
		case r.Dormant():
			line = dormantStyle.Render(line)
		case r.Priority >= 100:
			line = urgentStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func triggerColumn(r *models.Reminder) string {
	if r.TriggerOn == nil {
		return "-"
	}
	return r.TriggerOn.Format("2006-01-02 15:04")
}

func whenColumn(r *models.Reminder) string {
	if r.TriggerOn == nil {
		return "-"
	}
	return humanize.TimeAgo(*r.TriggerOn)
}

// truncate cuts at rune boundaries so multibyte descriptions never end in a
// mangled byte.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
