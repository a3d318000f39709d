package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reminderd/internal/schedule"
	"reminderd/internal/ui"
)

// remind list
func newListCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List prioritized reminders",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if all {
				rs, err := deps.Store.All(cmd.Context())
				if err != nil {
					return err
				}
				schedule.SortByPriorityFirst(rs)
				fmt.Print(ui.RenderReminders(rs))
				return nil
			}
			rs, err := deps.Store.Prioritized(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(ui.RenderReminders(rs))
			return nil
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Include dormant reminders")
	return cmd
}

// remind overdue
func newOverdueCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "overdue",
		Short:   "List overdue reminders",
		Aliases: []string{"od"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := deps.Store.Overdue(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			fmt.Print(ui.RenderReminders(rs))
			return nil
		},
	}
}

// remind next <code>
func newNextCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "next <code>",
		Short: "List reminders due within a horizon, e.g. 'next 4h'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := deps.Store.DueWithin(cmd.Context(), args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Print(ui.RenderReminders(rs))
			return nil
		},
	}
}

// remind upto <date>
func newUptoCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "upto <date>",
		Short: "List reminders due before a date, e.g. 'upto friday'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := schedule.ParseWhen(strings.Join(args, " "))
			if err != nil {
				return err
			}
			rs, err := deps.Store.Upto(cmd.Context(), ts)
			if err != nil {
				return err
			}
			fmt.Print(ui.RenderReminders(rs))
			return nil
		},
	}
}

// remind show <id>
func newShowCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one reminder (any uuid prefix works)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(r.NotifyMessage())
			if r.TriggerOn != nil {
				fmt.Printf("   trigger_on: %s\n", r.TriggerOn.Format("2006-01-02 15:04:05"))
			} else {
				fmt.Println("   trigger_on: - (dormant)")
			}
			if r.PhoneNotifiedOn != nil {
				fmt.Printf("   phone_notified_on: %s\n", r.PhoneNotifiedOn.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
