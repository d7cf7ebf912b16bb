// Package state owns the synchronized in-memory transaction collection.
//
// # Overview
//
// A Collection holds the authoritative session copy of one owner's
// transactions plus the derived aggregates, guarded by a readers-writer lock.
// Three trigger sources feed it: the initial load, change feed events, and
// poll ticks; a consumer can also request a manual refetch after a local
// mutation. Every trigger runs the same fetch-and-replace: the gateway is
// asked for the full collection and the snapshot is swapped wholesale. Feed
// payloads are never merged row-by-row; avoiding partial-update bugs is worth
// one extra round trip per change.
//
// # Update Semantics
//
//	// Success: replace the whole snapshot
//	→ Transactions, Monthly, Total replaced; Err cleared
//
//	// Failure: keep previous data, record the error
//	→ Transactions, Monthly, Total unchanged; Err set
//
// A failed background refresh therefore never blanks the view; the UI shows
// the last-known data alongside the latest error.
//
// # Concurrency
//
// Triggers may overlap and their fetches run independently. Each issued fetch
// carries a monotonic generation; a response is applied only when no newer
// response has landed, so a slow superseded fetch cannot overwrite fresher
// data. After Stop, late responses are discarded entirely; tearing down the
// owning view while a fetch is in flight is safe.
//
// # Loading Modes
//
// User-initiated refreshes raise the loading flag; background refreshes
// (feed event, poll tick, post-mutation refetch) keep the current data
// visible while the fetch runs. Feed events are debounced briefly because a
// single logical change often arrives as a burst.
package state
