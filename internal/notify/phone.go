package notify

import (
	"context"
	"fmt"
	"os/exec"

	"reminderd/internal/models"
)

// PhoneNotifier delivers the phone-class re-notification channel. The actual
// transport is personal glue (a push-API script, an SMS gateway); the daemon
// only decides when it is due and hands over the message.
type PhoneNotifier interface {
	Push(ctx context.Context, r *models.Reminder) error
}

// CommandPhone shells out to a configured command, appending the reminder's
// notify message as the last argument.
type CommandPhone struct {
	Argv []string
}

func NewCommandPhone(argv []string) *CommandPhone {
	if len(argv) == 0 {
		return nil
	}
	return &CommandPhone{Argv: argv}
}

func (p *CommandPhone) Push(ctx context.Context, r *models.Reminder) error {
	args := append(append([]string{}, p.Argv[1:]...), r.NotifyMessage())
	cmd := exec.CommandContext(ctx, p.Argv[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("phone command failed: %w (%s)", err, out)
	}
	return nil
}
