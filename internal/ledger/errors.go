package ledger

import "errors"

// ErrNotSignedIn is returned by every gateway operation when no owner id is
// resolvable. The UI surfaces it as "must sign in".
var ErrNotSignedIn = errors.New("not signed in")

// StoreError wraps a backend failure. The backend message is passed through
// verbatim; Op identifies the failing operation for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
