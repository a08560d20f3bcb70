package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dakotalabs/glstream/internal/account"
	"github.com/dakotalabs/glstream/internal/config"
	glstreamHttp "github.com/dakotalabs/glstream/internal/http"
	glHandler "github.com/dakotalabs/glstream/internal/http/gl"
	"github.com/dakotalabs/glstream/internal/ledger"
	"github.com/dakotalabs/glstream/internal/stream"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	epoch, err := cfg.EpochDate()
	if err != nil {
		slog.Error("failed to parse epoch", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := account.NewCatalog()
	buf := stream.NewBuffer()

	slog.Info("generating historical batch",
		"days", cfg.Generator.HistoricalDays, "epoch", cfg.Generator.Epoch, "seed", cfg.Generator.Seed)

	engine := stream.NewEngine(stream.EngineConfig{
		Seed:           cfg.Generator.Seed,
		Epoch:          epoch,
		HistoricalDays: cfg.Generator.HistoricalDays,
		Interval:       cfg.Generator.StreamInterval,
	}, ledger.NewSynthesizer(catalog), buf)

	handler := glHandler.NewHandler(
		buf, engine, catalog,
		cfg.App.Name, cfg.App.Version, cfg.Generator.StreamInterval,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: glstreamHttp.New(handler),
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		err := engine.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	})

	group.Go(func() error {
		slog.Info("starting server", "port", cfg.App.Port)

		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
