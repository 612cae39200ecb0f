// Package presence provides a minimal, embeddable presence-reporting endpoint.
//
// A single HTTP route lets an authenticated client publish "online" or "busy"
// and lets anyone read the current value back. A record older than the
// staleness threshold (10 minutes by default) reads as "offline"; the stored
// value is never rewritten to reflect that.
//
// # Quick Start
//
//	st, _ := presence.OpenSQLiteStore("./data/presence.db")
//	defer st.Close()
//
//	p, _ := presence.New(
//	    presence.WithStore(st),
//	    presence.WithSecret(os.Getenv("SECRET_KEY")),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	p.Start(ctx) // blocks until context is cancelled
//
// # HTTP API
//
//	GET  /   200 {"status":"online|busy|offline","timestamp":<epoch ms>}
//	         502 when nothing has been published, 500 if the stored record is corrupt
//	POST /   Authorization: Bearer <secret>, body {"status":"online|busy"}
//	         200 OK, 401 bad token, 400 JSON list of {code,path,message}
//	*        404 Not Found
//
// # Architecture
//
//   - internal/store: Key-value storage (SQLite and in-memory)
//   - internal/status: Record type, validation, staleness rule
//   - internal/server: HTTP handler and server lifecycle
//   - internal/client: HTTP client used by the CLI
//   - config: YAML configuration for the standalone binary
//
// The internal packages are not part of the public API and may change
// without notice.
package presence
