// Package ledger provides the typed gateway to the transaction collection.
//
// # Overview
//
// The Store interface is the only way the rest of the application touches
// persisted transactions: list, insert, delete, and two aggregate queries
// (monthly grouping and running total). Every operation is scoped to the
// owning user and round-trips to the backend; there is no caching layer and
// no retry policy here.
//
// # Implementations
//
//   - PGStore: the Postgres gateway, built on a shared pgxpool.Pool handed in
//     at startup. Queries target the transactions table
//     (id, user_id, date, description, amount, type, created_at).
//   - MemStore: a mutex-guarded in-memory implementation with identical
//     observable semantics, used by tests and demo mode.
//
// # Aggregation
//
// The aggregate queries fetch the owner's raw rows and fold client-side.
// Monthly balances are keyed "YYYY-MM" and sorted key-descending, which is
// chronological for that key format. The total balance is a signed sum:
// credits add, debits subtract.
//
// # Error Taxonomy
//
//   - ErrNotSignedIn: no resolvable owner id; blocks every operation.
//   - StoreError: the backend rejected a query. The backend message is passed
//     through verbatim for the UI; Op identifies the operation for logs.
//
// # Wire Compatibility
//
// The transactions table stores the kind column using the legacy values
// "entrada" and "saida". The mapping to KindCredit/KindDebit lives entirely
// in this package; nothing above it sees the wire terms.
//
// # Design Rationale
//
// Deleting an absent or foreign row reports success: the backend cannot
// distinguish "0 rows affected" from "row deleted", and callers treat both
// the same. Amounts are decimal.Decimal end to end; float arithmetic never
// touches money.
package ledger
