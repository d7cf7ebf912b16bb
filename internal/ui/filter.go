package ui

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dvila/tally/internal/ledger"
)

// kindFilter narrows the table to one flow direction.
type kindFilter int

const (
	kindAll kindFilter = iota
	kindIncome
	kindExpense
)

func (k kindFilter) next() kindFilter {
	return (k + 1) % 3
}

func (k kindFilter) label() string {
	switch k {
	case kindIncome:
		return "income"
	case kindExpense:
		return "expense"
	default:
		return "all"
	}
}

// txFilter narrows the visible transactions. The three parts combine with
// AND; filtering is purely client-side over the already-fetched snapshot.
type txFilter struct {
	pattern string
	re      *regexp.Regexp
	kind    kindFilter
	month   string // "YYYY-MM"; empty shows every month
}

func (f txFilter) active() bool {
	return f.re != nil || f.kind != kindAll || f.month != ""
}

// matches reports whether the transaction passes every active part.
// The pattern searches the description and the rendered date.
func (f txFilter) matches(tx ledger.Transaction) bool {
	if f.re != nil && !f.re.MatchString(filterHaystack(tx)) {
		return false
	}
	switch f.kind {
	case kindIncome:
		if tx.Kind != ledger.KindCredit {
			return false
		}
	case kindExpense:
		if tx.Kind != ledger.KindDebit {
			return false
		}
	}
	if f.month != "" && tx.Month() != f.month {
		return false
	}
	return true
}

func (f txFilter) apply(txs []ledger.Transaction) []ledger.Transaction {
	if !f.active() {
		return txs
	}
	out := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// setPattern compiles the search text case-insensitively. Empty text clears
// the search part.
func (f *txFilter) setPattern(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		f.pattern = ""
		f.re = nil
		return nil
	}
	re, err := regexp.Compile("(?i)" + text)
	if err != nil {
		return err
	}
	f.pattern = text
	f.re = re
	return nil
}

func (f *txFilter) clear() {
	*f = txFilter{}
}

// cycleMonth advances the month part through the months present in the
// collection, newest first, wrapping back to all.
func (f *txFilter) cycleMonth(months []string) {
	if len(months) == 0 {
		f.month = ""
		return
	}
	if f.month == "" {
		f.month = months[0]
		return
	}
	for i, m := range months {
		if m == f.month {
			if i+1 < len(months) {
				f.month = months[i+1]
			} else {
				f.month = ""
			}
			return
		}
	}
	f.month = ""
}

// label summarizes the active parts for the filter bar.
func (f txFilter) label() string {
	var parts []string
	if f.pattern != "" {
		parts = append(parts, "/"+f.pattern)
	}
	if f.kind != kindAll {
		parts = append(parts, f.kind.label())
	}
	if f.month != "" {
		parts = append(parts, monthLabel(f.month))
	}
	return strings.Join(parts, "  ")
}

func filterHaystack(tx ledger.Transaction) string {
	return tx.Description + " " + tx.Date.Format(dateLayout)
}

// availableMonths lists the distinct months of the given transactions,
// newest first.
func availableMonths(txs []ledger.Transaction) []string {
	seen := make(map[string]struct{})
	var months []string
	for _, tx := range txs {
		key := tx.Month()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		months = append(months, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}
