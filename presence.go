package presence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/jpalmerr/presence/internal/server"
	"github.com/jpalmerr/presence/internal/status"
)

const defaultPort = 8080

// Presence wires a [Store] to the HTTP endpoint and owns its startup sequence.
//
// The typical lifecycle is:
//
//	p, err := presence.New(presence.WithStore(st), presence.WithSecret(secret))
//	if err != nil {
//	    slog.Error("failed to create presence", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	p.Start(ctx) // blocks until context cancelled
type Presence struct {
	store      Store
	secret     string
	port       int
	staleAfter time.Duration
	seedStatus bool
	logger     *slog.Logger

	now     func() time.Time
	running atomic.Pointer[server.Server]
}

// New creates a new [Presence] instance with the given options.
//
// [WithStore] and [WithSecret] are required. Other options have defaults:
//   - Port: 8080
//   - Stale after: 10 minutes
//   - Seed status: true
func New(opts ...Option) (*Presence, error) {
	cfg := &presenceConfig{
		port:       defaultPort,
		staleAfter: status.DefaultStaleAfter,
		seedStatus: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.store == nil {
		return nil, errors.New("a store is required")
	}
	if cfg.secret == "" {
		return nil, errors.New("a secret is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Presence{
		store:      cfg.store,
		secret:     cfg.secret,
		port:       cfg.port,
		staleAfter: cfg.staleAfter,
		seedStatus: cfg.seedStatus,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Seed writes the startup records: the secret always, and an "online" status
// stamped now when seeding is enabled.
//
// Start calls Seed; it is exported for callers that mount [Presence.Handler]
// on their own server.
func (p *Presence) Seed(ctx context.Context) error {
	if err := p.store.Set(ctx, server.SecretKey, []byte(p.secret)); err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}

	if !p.seedStatus {
		p.logger.Info("status seeding disabled; GET answers 502 until first publish")
		return nil
	}

	data, err := status.NewRecord(status.Online, p.now()).Encode()
	if err != nil {
		return fmt.Errorf("failed to encode initial status: %w", err)
	}
	if err := p.store.Set(ctx, server.StatusKey, data); err != nil {
		return fmt.Errorf("failed to store initial status: %w", err)
	}
	return nil
}

// Start seeds the store and serves the endpoint.
//
// Start is a blocking call that runs until the provided context is cancelled.
// Returns nil on graceful shutdown, or an error if seeding fails or the HTTP
// server cannot bind.
func (p *Presence) Start(ctx context.Context) error {
	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	if err := p.Seed(ctx); err != nil {
		return err
	}

	srv := p.newServer()
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	p.running.Store(srv)

	p.logger.Info("presence listening",
		"addr", srv.Addr().String(),
		"stale_after", p.staleAfter.String(),
		"seed_status", p.seedStatus,
	)

	<-ctx.Done()
	p.logger.Info("presence stopped")
	return nil
}

// Handler returns the endpoint's HTTP handler without starting a server.
func (p *Presence) Handler() http.Handler {
	return p.newServer().Handler()
}

// Addr returns the listening address once Start is serving, otherwise nil.
func (p *Presence) Addr() net.Addr {
	srv := p.running.Load()
	if srv == nil {
		return nil
	}
	return srv.Addr()
}

// Port returns the configured HTTP port.
func (p *Presence) Port() int {
	return p.port
}

// StaleAfter returns the configured staleness threshold.
func (p *Presence) StaleAfter() time.Duration {
	return p.staleAfter
}

func (p *Presence) newServer() *server.Server {
	return server.NewServer(p.store, p.port, p.staleAfter, p.logger)
}
