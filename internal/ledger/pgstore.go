package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGStore is the Postgres-backed gateway. It owns no state beyond the shared
// connection pool handed to it at startup.
type PGStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// NewPGStore wraps an existing connection pool. The pool's lifecycle belongs
// to the caller.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const selectColumns = `id::text, user_id::text, date, description, amount::text, type, created_at`

// ListForOwner implements Store.
func (s *PGStore) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNotSignedIn
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM transactions WHERE user_id = $1 ORDER BY date DESC`,
		ownerID.String())
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	return transactions, nil
}

// Insert implements Store.
func (s *PGStore) Insert(ctx context.Context, ownerID uuid.UUID, input Input) (Transaction, error) {
	if ownerID == uuid.Nil {
		return Transaction{}, ErrNotSignedIn
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, date, description, amount, type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+selectColumns,
		ownerID.String(), input.Date, input.Description, input.Amount.String(), input.Kind.wire())

	transaction, err := scanTransaction(row)
	if err != nil {
		return Transaction{}, storeErr("insert transaction", err)
	}
	return transaction, nil
}

// Remove implements Store. The owner predicate makes the delete a no-op for
// foreign rows even when the backend also enforces row-level ownership; zero
// rows affected is success.
func (s *PGStore) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrNotSignedIn
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		id.String(), ownerID.String())
	if err != nil {
		return storeErr("delete transaction", err)
	}
	return nil
}

// MonthlyBalances implements Store. Rows are fetched and grouped client-side;
// the backend is only asked for the owner's raw rows.
func (s *PGStore) MonthlyBalances(ctx context.Context, ownerID uuid.UUID) ([]MonthlyBalance, error) {
	transactions, err := s.listRaw(ctx, ownerID, "monthly balances")
	if err != nil {
		return nil, err
	}
	return groupMonthly(transactions), nil
}

// TotalBalance implements Store.
func (s *PGStore) TotalBalance(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	transactions, err := s.listRaw(ctx, ownerID, "total balance")
	if err != nil {
		return decimal.Zero, err
	}
	return foldTotal(transactions), nil
}

// listRaw fetches only the fields the aggregate folds need.
func (s *PGStore) listRaw(ctx context.Context, ownerID uuid.UUID, op string) ([]Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNotSignedIn
	}
	rows, err := s.pool.Query(ctx,
		`SELECT date, amount::text, type FROM transactions WHERE user_id = $1`,
		ownerID.String())
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var (
			t          Transaction
			amountText string
			kindText   string
		)
		if err := rows.Scan(&t.Date, &amountText, &kindText); err != nil {
			return nil, storeErr(op, err)
		}
		if t.Amount, err = decimal.NewFromString(amountText); err != nil {
			return nil, storeErr(op, err)
		}
		if t.Kind, err = kindFromWire(kindText); err != nil {
			return nil, storeErr(op, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return transactions, nil
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	var transactions []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		t          Transaction
		idText     string
		ownerText  string
		amountText string
		kindText   string
	)
	err := row.Scan(&idText, &ownerText, &t.Date, &t.Description, &amountText, &kindText, &t.CreatedAt)
	if err != nil {
		return Transaction{}, err
	}
	if t.ID, err = uuid.Parse(idText); err != nil {
		return Transaction{}, err
	}
	if t.OwnerID, err = uuid.Parse(ownerText); err != nil {
		return Transaction{}, err
	}
	if t.Amount, err = decimal.NewFromString(amountText); err != nil {
		return Transaction{}, err
	}
	if t.Kind, err = kindFromWire(kindText); err != nil {
		return Transaction{}, err
	}
	return t, nil
}
