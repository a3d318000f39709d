package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// remind rm <id>
func newDeleteCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a reminder",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				var confirmed bool
				prompt := &survey.Confirm{Message: fmt.Sprintf("Delete %s?", r.NotifyMessage())}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("aborted")
					return nil
				}
			}

			// Take down the live notification first; a dangling popup for a
			// deleted reminder can never be replaced or closed again.
			if r.NotificationID != nil {
				if sweeper, err := newSweeper(deps); err == nil {
					_ = sweeper.Dismiss(cmd.Context(), r, true)
				}
			}

			if err := deps.Store.Delete(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Printf("✅ deleted %s\n", r.ShortID())
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
	return cmd
}
