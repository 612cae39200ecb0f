// Package server provides the HTTP surface of the presence endpoint.
//
// This package is internal to presence and handles all HTTP concerns for the
// single route "/":
//
//   - GET: Returns the current status as JSON, reported as "offline" once stale
//   - POST: Publishes a new status, authenticated with a bearer token
//
// Every other path and method is answered with 404. The handler holds no locks
// of its own; the only shared state is the injected store.
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
