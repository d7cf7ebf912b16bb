// Package ui implements the tally terminal interface on bubbletea.
//
// # Overview
//
// The UI is a passive consumer of the synchronized collection: a one second
// tick reads Collection.Snapshot() and redraws. It never blocks on the
// network; mutations run as bubbletea commands that write through the ledger
// store and then request a background refresh.
//
// # Views
//
//   - List: transaction table with per-month balances and the total in the
//     header. A badge shows whether changes arrive live or by polling.
//     The table filters client-side: '/' searches description and date
//     (case-insensitive regex), 'f' cycles income/expense, 'm' cycles the
//     months present in the collection; esc clears the filter.
//   - Form: add a transaction (description, amount, date, income/expense).
//   - Confirm: delete prompt for the highlighted row.
//
// Errors from background refreshes show as a toast while the last good data
// stays on screen.
package ui
