package config

import (
	"fmt"
	"log/slog"

	"github.com/jpalmerr/presence"
)

// OpenStore opens the store selected by cfg. The caller closes it.
func OpenStore(cfg *Config) (presence.Store, error) {
	switch cfg.Store.Driver {
	case DriverMemory:
		return presence.NewMemoryStore(), nil
	case DriverSQLite:
		st, err := presence.OpenSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// BuildOptions converts parsed configuration into SDK options over st.
func BuildOptions(cfg *Config, st presence.Store, logger *slog.Logger) []presence.Option {
	opts := []presence.Option{
		presence.WithStore(st),
		presence.WithSecret(cfg.SecretKey),
		presence.WithPort(cfg.Port),
		presence.WithStaleAfter(cfg.StaleAfter.Duration()),
		presence.WithSeedStatus(cfg.Seed()),
	}
	if logger != nil {
		opts = append(opts, presence.WithLogger(logger))
	}
	return opts
}
