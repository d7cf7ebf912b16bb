package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as income or expense.
type Kind string

const (
	KindCredit Kind = "credit"
	KindDebit  Kind = "debit"
)

// The transactions table predates this client and stores the kind using the
// original Portuguese terms. The mapping is confined to this package.
const (
	wireCredit = "entrada"
	wireDebit  = "saida"
)

func (k Kind) wire() string {
	if k == KindDebit {
		return wireDebit
	}
	return wireCredit
}

func kindFromWire(value string) (Kind, error) {
	switch value {
	case wireCredit:
		return KindCredit, nil
	case wireDebit:
		return KindDebit, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", value)
}

// Transaction is a single income or expense entry owned by one user.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Date        time.Time // calendar date; time-of-day carries no meaning
	Description string
	Amount      decimal.Decimal // positive magnitude; Kind determines sign
	Kind        Kind
	CreatedAt   time.Time
}

// Signed returns the amount with the sign implied by the kind:
// positive for credit, negative for debit.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Month returns the grouping key for monthly aggregation.
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// Input carries the caller-supplied fields for a new transaction. Validation
// is a UI concern; the gateway attaches ownership and persists as-is.
type Input struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Kind        Kind
}

// MonthlyBalance sums credits and debits for one calendar month.
type MonthlyBalance struct {
	Month    string // "YYYY-MM"
	Entries  decimal.Decimal
	Expenses decimal.Decimal
}

// Balance returns entries minus expenses for the month.
func (m MonthlyBalance) Balance() decimal.Decimal {
	return m.Entries.Sub(m.Expenses)
}
