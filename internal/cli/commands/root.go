package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"reminderd/internal/config"
	"reminderd/internal/notify"
	"reminderd/internal/store"
)

// Deps carries the shared collaborators into the subcommands.
type Deps struct {
	Cfg   *config.Config
	Store *store.Store
}

// NewRootCmd assembles the remind CLI.
func NewRootCmd(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "remind",
		Short:         "Personal reminder tracker",
		Long:          "Track dated, prioritized reminders; reschedule them with compact codes like 3d, 2w~ or 1M.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newListCmd(deps))
	root.AddCommand(newOverdueCmd(deps))
	root.AddCommand(newNextCmd(deps))
	root.AddCommand(newUptoCmd(deps))
	root.AddCommand(newShowCmd(deps))
	root.AddCommand(newAddCmd(deps))
	root.AddCommand(newRescheduleCmd(deps))
	root.AddCommand(newDeleteCmd(deps))
	root.AddCommand(newNotifyCmd(deps))
	root.AddCommand(newCloseCmd(deps))
	root.AddCommand(newExportCmd(deps))
	root.AddCommand(newReplCmd(deps))
	root.AddCommand(newConfigCmd(deps))

	return root
}

// newSweeper builds a notification sweeper against the session bus. CLI
// commands log to stderr without timestamps; the daemon has its own setup.
func newSweeper(deps *Deps) (*notify.Sweeper, error) {
	desktop, err := notify.NewDesktop()
	if err != nil {
		return nil, err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Logger()
	phone := notify.NewCommandPhone(deps.Cfg.Notify.PhoneCommand)
	var phoneNotifier notify.PhoneNotifier
	if phone != nil {
		phoneNotifier = phone
	}
	return notify.NewSweeper(deps.Store, desktop, phoneNotifier, log), nil
}
