package ledger

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the gateway to the persistent transaction collection. Every
// operation is scoped to the owning user and round-trips to the backend; the
// gateway keeps no cache and performs no retries.
type Store interface {
	// ListForOwner returns all transactions for the owner, newest date first.
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Transaction, error)

	// Insert persists a new transaction for the owner and returns it with the
	// backend-assigned id and creation timestamp.
	Insert(ctx context.Context, ownerID uuid.UUID, input Input) (Transaction, error)

	// Remove deletes the transaction only when it belongs to the owner.
	// Deleting an absent or foreign row is reported as success.
	Remove(ctx context.Context, ownerID, id uuid.UUID) error

	// MonthlyBalances groups the owner's transactions by calendar month,
	// newest month first.
	MonthlyBalances(ctx context.Context, ownerID uuid.UUID) ([]MonthlyBalance, error)

	// TotalBalance folds the owner's transactions into a signed sum.
	TotalBalance(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)
}

// groupMonthly buckets transactions by "YYYY-MM" and sums credits and debits
// per bucket. Results are sorted by key descending, which is chronological
// for this key format.
func groupMonthly(transactions []Transaction) []MonthlyBalance {
	buckets := make(map[string]*MonthlyBalance)
	for _, t := range transactions {
		key := t.Month()
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyBalance{Month: key}
			buckets[key] = b
		}
		if t.Kind == KindDebit {
			b.Expenses = b.Expenses.Add(t.Amount)
		} else {
			b.Entries = b.Entries.Add(t.Amount)
		}
	}

	out := make([]MonthlyBalance, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// foldTotal sums transactions with credit positive and debit negative.
func foldTotal(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Signed())
	}
	return total
}
