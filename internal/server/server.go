package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jpalmerr/presence/internal/status"
	"github.com/jpalmerr/presence/internal/store"
)

const (
	// shutdownTimeout bounds how long in-flight requests may run after the
	// server context is cancelled.
	shutdownTimeout = 5 * time.Second

	// readHeaderTimeout limits how long a client may take to send headers.
	readHeaderTimeout = 10 * time.Second
)

// Persisted record layout.
var (
	// SecretKey holds the shared secret that authorizes publishes.
	SecretKey = store.Key{"settings", "key"}

	// StatusKey holds the last published [status.Record].
	StatusKey = store.Key{"status"}
)

// Server handles HTTP requests for the presence endpoint.
type Server struct {
	store      store.Store
	port       int
	staleAfter time.Duration
	logger     *slog.Logger

	// now is the clock used for stamping and staleness. Tests replace it.
	now func() time.Time

	mu   sync.Mutex
	addr net.Addr
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - st: Store holding the secret and status records
//   - port: TCP port to listen on (0 picks a free port)
//   - staleAfter: age after which a record reads as offline (defaults to 10m if <= 0)
//   - logger: Logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(st store.Store, port int, staleAfter time.Duration, logger *slog.Logger) *Server {
	if staleAfter <= 0 {
		staleAfter = status.DefaultStaleAfter
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:      st,
		port:       port,
		staleAfter: staleAfter,
		logger:     logger,
		now:        time.Now,
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// Addr returns the address the server is listening on, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
