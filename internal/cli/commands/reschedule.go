package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// remind resched <id> <code-or-date>
func newRescheduleCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "resched <id> <code-or-date>",
		Short:   "Reschedule a reminder by code (3d, 2w~, 1M) or date ('friday 9am')",
		Aliases: []string{"re"},
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.Store.RescheduleAny(cmd.Context(), args[0], strings.Join(args[1:], " "), time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("✅ rescheduled %s to %s\n", r.ShortID(), r.TriggerOn.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
