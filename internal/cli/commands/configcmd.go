package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"reminderd/internal/config"
)

// remind config
func newConfigCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-password",
		Short: "Store the database password in the system keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			prompt := &survey.Password{
				Message: fmt.Sprintf("Database password for %q:", deps.Cfg.Database.User),
			}
			if err := survey.AskOne(prompt, &password); err != nil {
				return err
			}
			if err := config.SetPassword(deps.Cfg.Database.User, password); err != nil {
				return err
			}
			fmt.Println("✅ password stored in keyring")
			return nil
		},
	})

	return cmd
}
