package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// remind notify
func newNotifyCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run one notification sweep over the overdue reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			sweeper, err := newSweeper(deps)
			if err != nil {
				return fmt.Errorf("notification server unavailable: %w", err)
			}
			return sweeper.Sweep(cmd.Context())
		},
	}

	cmd.AddCommand(newCloseCmd(deps))
	return cmd
}

// remind close <id> (also reachable as remind notify close)
func newCloseCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Dismiss a reminder's desktop notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sweeper, err := newSweeper(deps)
			if err != nil {
				return fmt.Errorf("notification server unavailable: %w", err)
			}
			return sweeper.Dismiss(cmd.Context(), r, false)
		},
	}
}
