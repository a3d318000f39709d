package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"reminderd/internal/export"
)

// remind export
func newExportCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Dump all reminders to a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := deps.Cfg.Export.Path
			if len(args) == 1 {
				path = args[0]
			}
			rs, err := deps.Store.All(cmd.Context())
			if err != nil {
				return err
			}
			if err := export.WriteFile(path, rs); err != nil {
				return err
			}
			fmt.Printf("✅ exported %d reminders to %s\n", len(rs), path)
			return nil
		},
	}
	return cmd
}
