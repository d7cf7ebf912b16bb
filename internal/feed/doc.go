// Package feed maintains the realtime change subscription.
//
// A subscription is a websocket channel scoped to changes on the transactions
// table. The listener translates provider connection states into a simple
// Status signal and forwards change events as opaque triggers; payload shapes
// vary by event kind and are never inspected, because the consumer re-fetches
// the whole collection on any change.
//
// Feed degradation is expected operation, not an error path: a plan that
// lacks the realtime feature, a dropped connection, or a silent stall all
// leave the poll scheduler as the source of freshness. Statuses therefore
// feed a live indicator and the log, nothing else.
package feed
