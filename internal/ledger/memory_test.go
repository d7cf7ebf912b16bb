package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMemStore_InsertThenListIncludesRow(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	owner := uuid.New()

	input := Input{
		Date:        date("2024-03-01"),
		Description: "salary",
		Amount:      amount("100.00"),
		Kind:        KindCredit,
	}
	inserted, err := store.Insert(ctx, owner, input)
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if inserted.ID == uuid.Nil {
		t.Fatal("Insert did not assign an id")
	}
	if inserted.CreatedAt.IsZero() {
		t.Fatal("Insert did not assign a creation timestamp")
	}

	listed, err := store.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListForOwner returned %d rows, want 1", len(listed))
	}
	got := listed[0]
	if got.Description != input.Description || !got.Amount.Equal(input.Amount) ||
		got.Kind != input.Kind || !got.Date.Equal(input.Date) {
		t.Fatalf("listed row = %#v, want fields matching input %#v", got, input)
	}
	if got.OwnerID != owner {
		t.Fatalf("OwnerID = %s, want %s", got.OwnerID, owner)
	}
}

func TestMemStore_ListOrdersByDateDescendingAndScopesByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	owner := uuid.New()
	other := uuid.New()

	for _, day := range []string{"2024-01-05", "2024-03-01", "2024-02-10"} {
		if _, err := store.Insert(ctx, owner, Input{Date: date(day), Description: day, Amount: amount("1"), Kind: KindCredit}); err != nil {
			t.Fatalf("Insert(%s) returned error: %v", day, err)
		}
	}
	if _, err := store.Insert(ctx, other, Input{Date: date("2024-12-31"), Description: "foreign", Amount: amount("9"), Kind: KindCredit}); err != nil {
		t.Fatalf("Insert foreign returned error: %v", err)
	}

	listed, err := store.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner returned error: %v", err)
	}
	want := []string{"2024-03-01", "2024-02-10", "2024-01-05"}
	if len(listed) != len(want) {
		t.Fatalf("ListForOwner returned %d rows, want %d", len(listed), len(want))
	}
	for i, day := range want {
		if listed[i].Description != day {
			t.Fatalf("row[%d] = %q, want %q", i, listed[i].Description, day)
		}
	}
}

func TestMemStore_RemoveIsOwnerScopedAndIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	owner := uuid.New()
	intruder := uuid.New()

	inserted, err := store.Insert(ctx, owner, Input{Date: date("2024-03-01"), Description: "x", Amount: amount("1"), Kind: KindDebit})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	// A foreign owner cannot delete the row, and sees success anyway.
	if err := store.Remove(ctx, intruder, inserted.ID); err != nil {
		t.Fatalf("Remove by foreign owner returned error: %v", err)
	}
	listed, err := store.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("row count = %d after foreign delete, want 1", len(listed))
	}

	if err := store.Remove(ctx, owner, inserted.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	// Deleting again is a no-op success.
	if err := store.Remove(ctx, owner, inserted.ID); err != nil {
		t.Fatalf("second Remove returned error: %v", err)
	}
	listed, err = store.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner returned error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("row count = %d after delete, want 0", len(listed))
	}
}

func TestMemStore_AggregatesMatchScenario(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	owner := uuid.New()

	if _, err := store.Insert(ctx, owner, Input{Date: date("2024-03-01"), Description: "pay", Amount: amount("100.00"), Kind: KindCredit}); err != nil {
		t.Fatalf("Insert credit returned error: %v", err)
	}
	if _, err := store.Insert(ctx, owner, Input{Date: date("2024-03-02"), Description: "groceries", Amount: amount("40.00"), Kind: KindDebit}); err != nil {
		t.Fatalf("Insert debit returned error: %v", err)
	}

	monthly, err := store.MonthlyBalances(ctx, owner)
	if err != nil {
		t.Fatalf("MonthlyBalances returned error: %v", err)
	}
	if len(monthly) != 1 || monthly[0].Month != "2024-03" {
		t.Fatalf("MonthlyBalances = %#v, want one 2024-03 group", monthly)
	}
	if !monthly[0].Entries.Equal(amount("100.00")) || !monthly[0].Expenses.Equal(amount("40.00")) {
		t.Fatalf("group = %#v, want entries=100.00 expenses=40.00", monthly[0])
	}

	total, err := store.TotalBalance(ctx, owner)
	if err != nil {
		t.Fatalf("TotalBalance returned error: %v", err)
	}
	if !total.Equal(amount("60.00")) {
		t.Fatalf("TotalBalance = %s, want 60.00", total)
	}

	// Idempotent under repeated calls with no intervening writes.
	again, err := store.TotalBalance(ctx, owner)
	if err != nil {
		t.Fatalf("TotalBalance returned error: %v", err)
	}
	if !again.Equal(total) {
		t.Fatalf("TotalBalance changed between calls: %s then %s", total, again)
	}
}

func TestMemStore_NilOwnerIsAuthError(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	if _, err := store.ListForOwner(ctx, uuid.Nil); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("ListForOwner error = %v, want ErrNotSignedIn", err)
	}
	if _, err := store.Insert(ctx, uuid.Nil, Input{}); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("Insert error = %v, want ErrNotSignedIn", err)
	}
	if err := store.Remove(ctx, uuid.Nil, uuid.New()); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("Remove error = %v, want ErrNotSignedIn", err)
	}
	if _, err := store.MonthlyBalances(ctx, uuid.Nil); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("MonthlyBalances error = %v, want ErrNotSignedIn", err)
	}
	if _, err := store.TotalBalance(ctx, uuid.Nil); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("TotalBalance error = %v, want ErrNotSignedIn", err)
	}
}
