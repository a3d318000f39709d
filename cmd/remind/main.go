package main

import (
	"fmt"
	"os"

	"reminderd/internal/cli/commands"
	"reminderd/internal/config"
	"reminderd/internal/store"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Database, os.Getenv("REMINDERD_DEBUG") == "1")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	root := commands.NewRootCmd(&commands.Deps{
		Cfg:   cfg,
		Store: store.New(db),
	})
	root.Version = Version

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
