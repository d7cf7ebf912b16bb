package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvila/tally/internal/ledger"
)

// seedDemoStore builds an in-memory store with sample activity for the given
// owner, spread over the current and previous two months.
func seedDemoStore(ctx context.Context, owner uuid.UUID) (*ledger.MemStore, error) {
	store := ledger.NewMemStore()

	thisMonth := time.Now().UTC().Truncate(24 * time.Hour)
	for _, in := range demoTransactions(thisMonth) {
		if _, err := store.Insert(ctx, owner, in); err != nil {
			return nil, fmt.Errorf("insert %q: %w", in.Description, err)
		}
	}
	return store, nil
}

func demoTransactions(anchor time.Time) []ledger.Input {
	var inputs []ledger.Input
	// Step from the first of the month so month-end anchors cannot skip or
	// double a month.
	base := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	for back := 0; back < 3; back++ {
		first := base.AddDate(0, -back, 0)

		inputs = append(inputs,
			ledger.Input{
				Date:        first,
				Description: "Salary",
				Amount:      decimal.RequireFromString("2500.00"),
				Kind:        ledger.KindCredit,
			},
			ledger.Input{
				Date:        first.AddDate(0, 0, 2),
				Description: "Rent",
				Amount:      decimal.RequireFromString("900.00"),
				Kind:        ledger.KindDebit,
			},
			ledger.Input{
				Date:        first.AddDate(0, 0, 6),
				Description: "Groceries",
				Amount:      decimal.RequireFromString("184.37"),
				Kind:        ledger.KindDebit,
			},
			ledger.Input{
				Date:        first.AddDate(0, 0, 12),
				Description: "Freelance invoice",
				Amount:      decimal.RequireFromString("600.00"),
				Kind:        ledger.KindCredit,
			},
		)
	}
	return inputs
}
