// streamtest connects to an events endpoint and logs every routed
// invalidation. Useful for verifying a backend deployment by hand.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/opsboard/eventsync/internal/auth"
	"github.com/opsboard/eventsync/internal/connection"
	"github.com/opsboard/eventsync/internal/router"
	"github.com/opsboard/eventsync/internal/version"
)

// logSink logs invalidations instead of touching a cache.
type logSink struct {
	logger *slog.Logger
}

func (s *logSink) Invalidate(key string) {
	s.logger.Info("invalidate", "key", key)
}

func main() {
	apiURL := flag.String("url", "http://localhost:8000", "backend API origin")
	token := flag.String("token", "", "access token (empty = anonymous)")
	duration := flag.Duration("duration", 0, "how long to stream (0 = until interrupted)")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	logger.Info("streamtest", "version", version.Version, "url", *apiURL)

	var tokens auth.TokenSource
	if *token != "" {
		tokens = auth.Static(*token)
	}

	r := router.New(&logSink{logger: logger}, logger)
	r.RegisterDefaults()
	r.RegisterKeys("task_created", "tasks")
	r.RegisterKeys("task_updated", "tasks")
	r.RegisterKeys("notification_created", "notifications")

	s := connection.NewSupervisor(
		connection.Config{APIURL: *apiURL},
		tokens,
		r,
		logger,
	)
	defer s.Teardown()

	s.Connect()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if *duration > 0 {
		select {
		case <-sigCh:
		case <-time.After(*duration):
		}
	} else {
		<-sigCh
	}

	stats := r.Stats()
	logger.Info("done",
		"dispatched", stats.Dispatched,
		"unknown", stats.Unknown,
		"state", s.State().String(),
		"last_close_code", s.LastCloseCode(),
	)
}
