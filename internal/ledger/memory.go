package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemStore is a thread-safe in-memory Store. It backs tests and demo mode
// with the same observable semantics as the Postgres gateway.
type MemStore struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]Transaction
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{transactions: make(map[uuid.UUID]Transaction)}
}

// ListForOwner implements Store.
func (s *MemStore) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNotSignedIn
	}
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list transactions", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.listLocked(ownerID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Insert implements Store.
func (s *MemStore) Insert(ctx context.Context, ownerID uuid.UUID, input Input) (Transaction, error) {
	if ownerID == uuid.Nil {
		return Transaction{}, ErrNotSignedIn
	}
	if err := ctx.Err(); err != nil {
		return Transaction{}, storeErr("insert transaction", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Transaction{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Date:        input.Date,
		Description: input.Description,
		Amount:      input.Amount,
		Kind:        input.Kind,
		CreatedAt:   time.Now(),
	}
	s.transactions[t.ID] = t
	return t, nil
}

// Remove implements Store. Absent and foreign rows are left untouched and
// reported as success.
func (s *MemStore) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrNotSignedIn
	}
	if err := ctx.Err(); err != nil {
		return storeErr("delete transaction", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transactions[id]; ok && t.OwnerID == ownerID {
		delete(s.transactions, id)
	}
	return nil
}

// MonthlyBalances implements Store.
func (s *MemStore) MonthlyBalances(ctx context.Context, ownerID uuid.UUID) ([]MonthlyBalance, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNotSignedIn
	}
	if err := ctx.Err(); err != nil {
		return nil, storeErr("monthly balances", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return groupMonthly(s.listLocked(ownerID)), nil
}

// TotalBalance implements Store.
func (s *MemStore) TotalBalance(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	if ownerID == uuid.Nil {
		return decimal.Zero, ErrNotSignedIn
	}
	if err := ctx.Err(); err != nil {
		return decimal.Zero, storeErr("total balance", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return foldTotal(s.listLocked(ownerID)), nil
}

func (s *MemStore) listLocked(ownerID uuid.UUID) []Transaction {
	out := make([]Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out
}
