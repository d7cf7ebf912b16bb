// Package app provides the orchestration layer for the tally application.
//
// # Overview
//
// This package is the composition root: it wires configuration, the Postgres
// store, the change feed listener, the synchronized collection, and the UI
// into a running program.
//
// # Startup Sequence
//
//  1. Load configuration from ~/.config/tally/config.toml
//  2. Open the file-backed logger (the TUI owns the terminal)
//  3. Resolve the signed-in user (flag override, else session file)
//  4. Connect the pgx pool and build the ledger store
//  5. Start the collection: initial fetch, feed subscription, poll loop
//  6. Start the TUI and block until the user exits or the context cancels
//
// With -demo, steps 3 and 4 are replaced by a seeded in-memory store and a
// throwaway owner id; no database, feed, or login is needed.
//
// # Error Handling
//
// Startup failures (bad config, unreachable database, missing session) are
// fatal and returned from Run. Once running, refresh and feed failures are
// recoverable: the collection keeps the last good data and the poll loop
// retries, so the app survives database restarts and feed outages.
package app
