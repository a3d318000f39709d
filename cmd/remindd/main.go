package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"reminderd/internal/config"
	"reminderd/internal/export"
	"reminderd/internal/notify"
	"reminderd/internal/store"
	"reminderd/internal/web"
)

// remindd runs the web UI plus the background jobs: a notification sweep for
// overdue reminders and a periodic CSV dump of the whole table.
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := store.Open(cfg.Database, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	st := store.New(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()

	// The sweep degrades to a no-op when no session bus is around (headless
	// box, ssh session); the web UI keeps working either way.
	desktop, err := notify.NewDesktop()
	if err != nil {
		log.Warn().Err(err).Msg("no notification server; sweep disabled")
	} else {
		var phone notify.PhoneNotifier
		if p := notify.NewCommandPhone(cfg.Notify.PhoneCommand); p != nil {
			phone = p
		}
		sweeper := notify.NewSweeper(st, desktop, phone, log)
		if _, err := scheduler.AddFunc(cfg.Notify.Sweep, func() {
			if err := sweeper.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("notification sweep failed")
			}
		}); err != nil {
			log.Fatal().Err(err).Str("spec", cfg.Notify.Sweep).Msg("bad sweep schedule")
		}
	}

	if _, err := scheduler.AddFunc(cfg.Export.Schedule, func() {
		rs, err := st.All(ctx)
		if err != nil {
			log.Error().Err(err).Msg("export failed")
			return
		}
		if err := export.WriteFile(cfg.Export.Path, rs); err != nil {
			log.Error().Err(err).Msg("export failed")
			return
		}
		log.Debug().Int("count", len(rs)).Str("path", cfg.Export.Path).Msg("exported reminders")
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Export.Schedule).Msg("bad export schedule")
	}

	scheduler.Start()
	defer scheduler.Stop()

	router := web.NewRouter(st, log, cfg.Server.Templates)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr()).Msg("listening")
		errc <- router.Run(cfg.Server.Addr())
	}()

	select {
	case err := <-errc:
		log.Fatal().Err(err).Msg("server stopped")
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}
}
