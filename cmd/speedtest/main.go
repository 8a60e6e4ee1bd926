package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"netspeed/internal/config"
	"netspeed/internal/database"
	"netspeed/internal/logging"
	"netspeed/internal/models"
	"netspeed/internal/probe"
	"netspeed/internal/report"
)

type proberFactory func(cfg config.Config, log zerolog.Logger) models.Prober

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, func(cfg config.Config, log zerolog.Logger) models.Prober {
		return probe.NewLive(cfg, log)
	}))
}

// run returns 0 after every measurement run, however many probes failed.
// Only unusable flags or configuration produce a non-zero status.
func run(args []string, stdout, stderr io.Writer, newProber proberFactory) int {
	cfg, err := config.Load(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Invalid arguments: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 2
	}

	log := logging.New(stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := openHistory(cfg, log)
	if db != nil {
		defer db.Close()
	}

	if cfg.History > 0 {
		printHistory(db, cfg.History, stdout, log)
		return 0
	}

	gen := report.NewGenerator(newProber(cfg, log), cfg, log)
	r := gen.Run(ctx)

	if err := report.Render(stdout, r); err != nil {
		log.Error().Err(err).Msg("Failed to print report")
	}

	if cfg.ChartDir != "" {
		if path, err := report.WriteLatencyChart(cfg.ChartDir, r); err != nil {
			log.Warn().Err(err).Msg("Failed to write latency chart")
		} else if path != "" {
			log.Info().Str("path", path).Msg("Latency chart written")
		}
	}

	if db != nil {
		saveReport(db, r, cfg.RetentionDays, log)
	}

	return 0
}

// openHistory returns nil when history is disabled or unavailable
func openHistory(cfg config.Config, log zerolog.Logger) *database.DB {
	if cfg.DatabasePath == "" {
		return nil
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DatabasePath).Msg("History disabled")
		return nil
	}
	if err := db.InitSchema(); err != nil {
		log.Warn().Err(err).Str("path", cfg.DatabasePath).Msg("History disabled")
		db.Close()
		return nil
	}
	return db
}

func printHistory(db *database.DB, limit int, w io.Writer, log zerolog.Logger) {
	if db == nil {
		log.Warn().Msg("No history database configured")
		return
	}

	entries, err := db.GetRecent(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read history")
		return
	}
	if err := report.RenderHistory(w, entries, time.Now()); err != nil {
		log.Error().Err(err).Msg("Failed to print history")
	}
}

func saveReport(db models.Database, r *models.Report, retentionDays int, log zerolog.Logger) {
	if err := db.SaveReport(r); err != nil {
		log.Warn().Err(err).Msg("Failed to save results")
		return
	}

	n, err := db.PruneOlderThan(retentionDays)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to prune history")
		return
	}
	if n > 0 {
		log.Debug().Int64("removed", n).Int("retention_days", retentionDays).Msg("Pruned history")
	}
}
