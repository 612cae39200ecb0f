package presence

import (
	"errors"
	"log/slog"
	"time"
)

// presenceConfig holds mutable state during Presence construction.
type presenceConfig struct {
	store      Store
	secret     string
	port       int
	staleAfter time.Duration
	seedStatus bool
	logger     *slog.Logger
}

// Option is a function that configures a [Presence] instance during construction.
//
// Options return an error if validation fails.
type Option func(*presenceConfig) error

// WithStore sets the [Store] holding the secret and status records.
//
// Required. The caller owns the store and closes it after Start returns.
func WithStore(st Store) Option {
	return func(cfg *presenceConfig) error {
		if st == nil {
			return errors.New("store cannot be nil")
		}
		cfg.store = st
		return nil
	}
}

// WithSecret sets the shared secret publishers must present as a bearer token.
//
// Required. Returns an error if the secret is empty.
func WithSecret(secret string) Option {
	return func(cfg *presenceConfig) error {
		if secret == "" {
			return errors.New("secret cannot be empty")
		}
		cfg.secret = secret
		return nil
	}
}

// WithPort sets the HTTP port. Defaults to 8080 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *presenceConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithStaleAfter sets how old a record may get before it reads as offline.
// Defaults to [DefaultStaleAfter].
//
// Returns an error if the duration is zero or negative.
func WithStaleAfter(d time.Duration) Option {
	return func(cfg *presenceConfig) error {
		if d <= 0 {
			return errors.New("stale after must be positive")
		}
		cfg.staleAfter = d
		return nil
	}
}

// WithSeedStatus controls whether Start writes {"status":"online"} stamped
// with the current time, replacing whatever was stored before.
//
// Defaults to true. With seeding off, a fresh store answers GET with 502 until
// the first publish.
func WithSeedStatus(seed bool) Option {
	return func(cfg *presenceConfig) error {
		cfg.seedStatus = seed
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *presenceConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
