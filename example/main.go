package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/presence"
)

// This example mounts the presence handler under /presence/ on an existing
// server instead of letting presence own the listener.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st := presence.NewMemoryStore()
	defer st.Close()

	p, err := presence.New(
		presence.WithStore(st),
		presence.WithSecret("example-secret"),
		presence.WithStaleAfter(2*time.Minute),
		presence.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create presence", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Seed(ctx); err != nil {
		slog.Error("failed to seed store", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/presence/", http.StripPrefix("/presence", p.Handler()))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: ":9999", Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("try: curl localhost:9999/presence/")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
