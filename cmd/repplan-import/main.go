package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/repplan/internal/config"
	"github.com/claude/repplan/internal/importer"
	"github.com/claude/repplan/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	catalogPath := flag.String("path", "", "path to catalog file or directory (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	noState := flag.Bool("no-state", false, "re-import every file even if unchanged")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *catalogPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: repplan-import -config config.yaml -path /path/to/catalog [-dry-run] [-no-state]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*catalogPath); err != nil {
		log.Error("catalog path does not exist", "path", *catalogPath)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Open state database (skips unchanged files across runs)
	var state *importer.StateDB
	if !*noState {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		state, err = importer.OpenStateDB(filepath.Join(homeDir, ".repplan-import"))
		if err != nil {
			log.Error("failed to open state database", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	// Run import
	imp := importer.New(db, state, log, *dryRun)
	stats, err := imp.Import(ctx, *catalogPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"exercises_received", stats.ExercisesReceived,
		"exercises_upserted", stats.ExercisesUpserted,
		"exercises_skipped", stats.ExercisesSkipped,
	)
}
