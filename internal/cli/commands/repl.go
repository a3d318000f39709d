package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reminderd/internal/repl"
)

// remind repl
func newReplCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Short:   "Interactive shell over the reminder store",
		Aliases: []string{"shell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The shell works without a notification server; notify/close
			// just report it as unavailable.
			sweeper, err := newSweeper(deps)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠️  no notification server: %v\n", err)
				sweeper = nil
			}
			sh, err := repl.New(deps.Store, sweeper, deps.Cfg)
			if err != nil {
				return err
			}
			return sh.Run(cmd.Context())
		},
	}
}
