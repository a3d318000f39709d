package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"reminderd/internal/models"
	"reminderd/internal/schedule"
)

// remind add
func newAddCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add [description]",
		Short:   "Create a new reminder",
		Aliases: []string{"create"},
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive, _ := cmd.Flags().GetBool("interactive")
			priority, _ := cmd.Flags().GetInt("priority")
			in, _ := cmd.Flags().GetString("in")
			at, _ := cmd.Flags().GetString("at")

			descr := strings.Join(args, " ")
			if interactive {
				var err error
				descr, priority, in, at, err = promptReminder()
				if err != nil {
					return err
				}
			}
			if descr == "" {
				return fmt.Errorf("description is required (or use -i)")
			}

			var trigger *time.Time
			switch {
			case in != "":
				t, err := schedule.ComputeNextTrigger(in, time.Now())
				if err != nil {
					return err
				}
				trigger = &t
			case at != "":
				t, err := schedule.ParseWhen(at)
				if err != nil {
					return err
				}
				trigger = &t
			case priority >= 0:
				return fmt.Errorf("a trigger is required: use --in <code> or --at <date>")
			}

			r := models.Reminder{Descr: descr, Priority: priority, TriggerOn: trigger}
			if err := models.Autofill(&r); err != nil {
				return err
			}
			if err := deps.Store.Create(cmd.Context(), &r); err != nil {
				return err
			}
			fmt.Printf("✅ created %s\n", r.NotifyMessage())
			return nil
		},
	}
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for the fields")
	cmd.Flags().IntP("priority", "p", 0, "Priority (negative = dormant, >=100 = phone channel)")
	cmd.Flags().String("in", "", "First trigger as a code relative to now, e.g. 3d")
	cmd.Flags().String("at", "", "First trigger as a date, e.g. 'friday 9am'")
	return cmd
}

func promptReminder() (descr string, priority int, in, at string, err error) {
	qs := []*survey.Question{
		{
			Name:     "descr",
			Prompt:   &survey.Input{Message: "Description:"},
			Validate: survey.Required,
		},
		{
			Name:   "priority",
			Prompt: &survey.Input{Message: "Priority:", Default: "0"},
		},
		{
			Name:   "in",
			Prompt: &survey.Input{Message: "Due in (code like 3d, empty to give a date):"},
		},
	}
	answers := struct {
		Descr    string
		Priority int
		In       string
	}{}
	if err = survey.Ask(qs, &answers); err != nil {
		return "", 0, "", "", err
	}
	if answers.In == "" {
		if err = survey.AskOne(&survey.Input{Message: "Due at (date, e.g. 'friday 9am'):"}, &at); err != nil {
			return "", 0, "", "", err
		}
	}
	return answers.Descr, answers.Priority, answers.In, at, nil
}
