package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"skilltrack/internal/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "skilltrack:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.FromEnv()
	if err != nil {
		return err
	}

	dataDir := flag.String("data-dir", cfg.DataDir, "directory for the progress database")
	catalogPath := flag.String("catalog", cfg.CatalogPath, "path to a YAML catalog file (blank uses the built-in one)")
	logPath := flag.String("log", cfg.LogPath, "path for the JSONL event log (blank disables)")
	userName := flag.String("user", cfg.UserName, "display name on the dashboard and leaderboard")
	theme := flag.String("theme", cfg.UI.StyleVariant, "style variant: modern_arcade, cozy_clean, retro_terminal")
	motion := flag.String("motion", cfg.UI.MotionLevel, "animation level: full, reduced, off")
	ascii := flag.Bool("ascii", cfg.ASCIIOnly, "draw panels with ASCII borders only")
	debug := flag.Bool("debug", cfg.Debug, "verbose UI logging to stderr")
	logout := flag.Bool("logout", false, "wipe all stored progress and exit")
	flag.Parse()

	cfg.DataDir = *dataDir
	cfg.CatalogPath = *catalogPath
	cfg.LogPath = *logPath
	cfg.UserName = *userName
	cfg.UI.StyleVariant = *theme
	cfg.UI.MotionLevel = *motion
	cfg.ASCIIOnly = *ascii
	cfg.Debug = *debug

	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if *logout {
		return a.Logout(ctx)
	}
	return a.Run(ctx)
}
