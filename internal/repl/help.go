package repl

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Commands

| command | what it does |
|---|---|
| ls | list all prioritized reminders |
| od | list overdue reminders |
| next <code> | list reminders due within a horizon, e.g. ` + "`next 4h`" + ` |
| upto <date> | list reminders due before a date, e.g. ` + "`upto friday`" + ` |
| show <id> | show one reminder (any uuid prefix) |
| re <id> <code> | reschedule by code: ` + "`3d`" + `, ` + "`2w~`" + `, ` + "`1M`" + ` |
| at <id> <date> | reschedule to a date: ` + "`tomorrow 9am`" + `, ` + "`2026-01-15 18:00`" + ` |
| close <id> | dismiss the desktop notification |
| notify | run one notification sweep now |
| export | dump all reminders to the CSV export file |
| copy <id> | copy the reminder line to the clipboard |
| quit | leave |

Codes are ` + "`<n><unit>`" + ` with unit m/h/d/w/M; a trailing ` + "`~`" + ` adds 1-59
random minutes so repeats drift instead of piling up on the exact minute.
`

func (r *REPL) printHelp() error {
	out, err := glamour.Render(helpMarkdown, "dark")
	if err != nil {
		// Raw markdown is still perfectly readable.
		fmt.Print(helpMarkdown)
		return nil
	}
	fmt.Print(out)
	return nil
}
