package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/opsboard/eventsync/internal/api"
	"github.com/opsboard/eventsync/internal/auth"
	"github.com/opsboard/eventsync/internal/cache"
	"github.com/opsboard/eventsync/internal/config"
	"github.com/opsboard/eventsync/internal/connection"
	"github.com/opsboard/eventsync/internal/model"
	"github.com/opsboard/eventsync/internal/reconnect"
	"github.com/opsboard/eventsync/internal/router"
	"github.com/opsboard/eventsync/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/eventsync.yaml", "path to config file")
	flag.Parse()

	// Bootstrap logger until the config is loaded.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting eventsync",
		"version", version.Version,
		"commit", version.Commit,
		"api_url", cfg.Server.APIURL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	tokens := tokenSource(cfg.Auth)
	store := cache.NewStore(logger)
	client := api.NewClient(cfg.Server.APIURL, tokens, api.WithLogger(logger))

	r := router.New(store, logger)
	r.RegisterDefaults()

	// Event families beyond the baseline table.
	r.RegisterKeys("task_created", "tasks")
	r.RegisterKeys("task_updated", "tasks")
	r.RegisterKeys("notification_created", "notifications")

	supervisor := connection.NewSupervisor(
		connection.Config{
			APIURL:           cfg.Server.APIURL,
			EventsPath:       cfg.Server.EventsPath,
			HandshakeTimeout: cfg.Connection.HandshakeTimeout,
			WriteTimeout:     cfg.Connection.WriteTimeout,
		},
		tokens,
		r,
		logger,
		connection.WithPolicy(reconnect.Policy{
			MaxAttempts: cfg.Reconnect.MaxAttempts,
			Delay:       cfg.Reconnect.Delay,
		}),
	)
	defer supervisor.Teardown()

	supervisor.Connect()

	// Readers go through the cache; invalidations from the channel make
	// the next read refetch.
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stats := r.Stats()
			logger.Info("stopping eventsync",
				"dispatched", stats.Dispatched,
				"unknown", stats.Unknown,
				"state", supervisor.State().String(),
			)
			return
		case <-ticker.C:
			logBoard(ctx, logger, store, client)
		}
	}
}

// logBoard reads the board through the cache and logs a summary.
func logBoard(ctx context.Context, logger *slog.Logger, store *cache.Store, client *api.Client) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tickets, err := store.Get(ctx, "tickets", func(ctx context.Context) (any, error) {
		return client.ListTickets(ctx)
	})
	if err != nil {
		logger.Warn("failed to read tickets", "error", err)
		return
	}

	agents, err := store.Get(ctx, "agents", func(ctx context.Context) (any, error) {
		return client.ListAgents(ctx)
	})
	if err != nil {
		logger.Warn("failed to read agents", "error", err)
		return
	}

	logger.Info("board state",
		"tickets", len(tickets.([]model.Ticket)),
		"agents", len(agents.([]model.Agent)),
	)
}

// tokenSource picks the credential source from config: inline token,
// then token file, then anonymous.
func tokenSource(cfg config.AuthConfig) auth.TokenSource {
	switch {
	case cfg.Token != "":
		return auth.Static(cfg.Token)
	case cfg.TokenFile != "":
		return &auth.FileSource{Path: cfg.TokenFile}
	}
	return nil
}

// newLogger builds the slog handler configured in the log section.
func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case "tint":
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	default:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
