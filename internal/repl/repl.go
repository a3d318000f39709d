package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/chzyer/readline"

	"reminderd/internal/config"
	"reminderd/internal/export"
	"reminderd/internal/notify"
	"reminderd/internal/schedule"
	"reminderd/internal/store"
	"reminderd/internal/ui"
)

// REPL is the interactive shell over the reminder store.
type REPL struct {
	store   *store.Store
	sweeper *notify.Sweeper
	cfg     *config.Config
	rl      *readline.Instance
}

func New(st *store.Store, sweeper *notify.Sweeper, cfg *config.Config) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}
	return &REPL{store: st, sweeper: sweeper, cfg: cfg, rl: rl}, nil
}

func setupReadline() (*readline.Instance, error) {
	home, _ := os.UserHomeDir()
	completer := readline.NewPrefixCompleter(
		readline.PcItem("ls"),
		readline.PcItem("od"),
		readline.PcItem("next"),
		readline.PcItem("upto"),
		readline.PcItem("show"),
		readline.PcItem("re"),
		readline.PcItem("at"),
		readline.PcItem("close"),
		readline.PcItem("notify"),
		readline.PcItem("export"),
		readline.PcItem("copy"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
	return readline.NewEx(&readline.Config{
		Prompt:            "reminders> ",
		HistoryFile:       filepath.Join(home, ".reminderd_history"),
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
}

// Run reads commands until EOF or quit.
func (r *REPL) Run(ctx context.Context) error {
	defer r.rl.Close()

	fmt.Println("reminderd shell, type 'help' for commands")
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				fmt.Println("bye")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		fields := strings.Fields(input)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" || cmd == "q" {
			fmt.Println("bye")
			return nil
		}
		if err := r.dispatch(ctx, cmd, args); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	}
}

func (r *REPL) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help", "h", "?":
		return r.printHelp()
	case "ls":
		return r.list(ctx)
	case "od":
		return r.overdue(ctx)
	case "next":
		if len(args) != 1 {
			return fmt.Errorf("usage: next <code>")
		}
		return r.next(ctx, args[0])
	case "upto":
		if len(args) == 0 {
			return fmt.Errorf("usage: upto <date>")
		}
		return r.upto(ctx, strings.Join(args, " "))
	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: show <id>")
		}
		return r.show(ctx, args[0])
	case "re":
		if len(args) != 2 {
			return fmt.Errorf("usage: re <id> <code>")
		}
		return r.reschedule(ctx, args[0], args[1])
	case "at":
		if len(args) < 2 {
			return fmt.Errorf("usage: at <id> <date>")
		}
		return r.rescheduleAt(ctx, args[0], strings.Join(args[1:], " "))
	case "close":
		if len(args) != 1 {
			return fmt.Errorf("usage: close <id>")
		}
		return r.close(ctx, args[0])
	case "notify":
		return r.notify(ctx)
	case "export":
		return r.export(ctx)
	case "copy":
		if len(args) != 1 {
			return fmt.Errorf("usage: copy <id>")
		}
		return r.copy(ctx, args[0])
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (r *REPL) list(ctx context.Context) error {
	rs, err := r.store.Prioritized(ctx)
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderReminders(rs))
	return nil
}

func (r *REPL) overdue(ctx context.Context) error {
	rs, err := r.store.Overdue(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderReminders(rs))
	return nil
}

func (r *REPL) next(ctx context.Context, code string) error {
	rs, err := r.store.DueWithin(ctx, code, time.Now())
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderReminders(rs))
	return nil
}

func (r *REPL) upto(ctx context.Context, when string) error {
	ts, err := schedule.ParseWhen(when)
	if err != nil {
		return err
	}
	rs, err := r.store.Upto(ctx, ts)
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderReminders(rs))
	return nil
}

func (r *REPL) show(ctx context.Context, id string) error {
	rem, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(rem.NotifyMessage())
	fmt.Printf("   trigger_on:        %s\n", fmtTimePtr(rem.TriggerOn))
	fmt.Printf("   notification_id:   %s\n", fmtNotifPtr(rem.NotificationID))
	fmt.Printf("   phone_notified_on: %s\n", fmtTimePtr(rem.PhoneNotifiedOn))
	return nil
}

func (r *REPL) reschedule(ctx context.Context, id, code string) error {
	rem, err := r.store.Reschedule(ctx, id, code, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("✅ rescheduled %s to %s\n", rem.ShortID(), fmtTimePtr(rem.TriggerOn))
	return nil
}

func (r *REPL) rescheduleAt(ctx context.Context, id, when string) error {
	rem, err := r.store.RescheduleAny(ctx, id, when, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("✅ rescheduled %s to %s\n", rem.ShortID(), fmtTimePtr(rem.TriggerOn))
	return nil
}

func (r *REPL) close(ctx context.Context, id string) error {
	rem, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.sweeper == nil {
		return fmt.Errorf("no notification server available")
	}
	return r.sweeper.Dismiss(ctx, rem, false)
}

func (r *REPL) notify(ctx context.Context) error {
	if r.sweeper == nil {
		return fmt.Errorf("no notification server available")
	}
	return r.sweeper.Sweep(ctx)
}

func (r *REPL) export(ctx context.Context) error {
	rs, err := r.store.All(ctx)
	if err != nil {
		return err
	}
	if err := export.WriteFile(r.cfg.Export.Path, rs); err != nil {
		return err
	}
	fmt.Printf("✅ exported %d reminders to %s\n", len(rs), r.cfg.Export.Path)
	return nil
}

func (r *REPL) copy(ctx context.Context, id string) error {
	rem, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(rem.NotifyMessage()); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Printf("✅ copied %s\n", rem.ShortID())
	return nil
}

func fmtTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func fmtNotifPtr(id *uint32) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
