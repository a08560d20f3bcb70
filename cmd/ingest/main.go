package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/dakotalabs/glstream/internal/config"
	"github.com/dakotalabs/glstream/internal/database"
	"github.com/dakotalabs/glstream/internal/ingest"
	ingestStore "github.com/dakotalabs/glstream/internal/ingest/store"
)

func main() {
	once := flag.Bool("once", false, "run a single incremental ingestion and exit")
	window := flag.String("window", "", "reload one date window and exit, format YYYY-MM-DD,YYYY-MM-DD (end exclusive)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to warehouse", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warehouse := ingestStore.New(db)
	if err := warehouse.EnsureSchema(ctx); err != nil {
		slog.Error("failed to prepare warehouse schema", "error", err)
		os.Exit(1)
	}

	client := ingest.NewClient(cfg.Ingest.APIBaseURL, cfg.Ingest.BatchLimit, cfg.Ingest.Timeout)
	service := ingest.NewService(client, warehouse)

	if *window != "" {
		start, end, err := parseWindow(*window)
		if err != nil {
			slog.Error("invalid -window value", "window", *window, "error", err)
			os.Exit(1)
		}

		if _, err := service.RunWindow(ctx, start, end); err != nil {
			slog.Error("window ingestion failed", "error", err)
			os.Exit(1)
		}

		return
	}

	if *once {
		if _, err := service.RunIncremental(ctx); err != nil {
			slog.Error("ingestion failed", "error", err)
			os.Exit(1)
		}

		return
	}

	scheduler := cron.New()

	_, err = scheduler.AddFunc(cfg.Ingest.Schedule, func() {
		if _, err := service.RunIncremental(ctx); err != nil {
			slog.Error("scheduled ingestion failed", "error", err)
		}
	})
	if err != nil {
		slog.Error("invalid ingest schedule", "schedule", cfg.Ingest.Schedule, "error", err)
		os.Exit(1)
	}

	slog.Info("ingestion scheduler started", "schedule", cfg.Ingest.Schedule, "api", cfg.Ingest.APIBaseURL)
	scheduler.Start()

	<-ctx.Done()

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	slog.Info("ingestion scheduler stopped")
}

func parseWindow(value string) (time.Time, time.Time, error) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("expected two dates separated by a comma")
	}

	start, err := time.Parse(time.DateOnly, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start %q: %w", parts[0], err)
	}

	end, err := time.Parse(time.DateOnly, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end %q: %w", parts[1], err)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start must be before end")
	}

	return start, end, nil
}
