package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvila/tally/internal/ledger"
)

// formatAmount renders a decimal with two fraction digits and a currency
// prefix, e.g. "$1200.50".
func formatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// formatSigned renders a transaction amount with its flow direction,
// e.g. "+$100.00" for credits and "-$40.00" for debits.
func formatSigned(tx ledger.Transaction) string {
	if tx.Kind == ledger.KindDebit {
		return "-" + formatAmount(tx.Amount)
	}
	return "+" + formatAmount(tx.Amount)
}

// monthLabel turns a "YYYY-MM" key into a human label, e.g. "Mar 2024".
// Unparseable keys pass through unchanged.
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func humanizeSince(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
