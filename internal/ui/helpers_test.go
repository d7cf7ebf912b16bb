package ui

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvila/tally/internal/ledger"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1200.5", "$1200.50"},
		{"-40", "$-40.00"},
		{"0.999", "$1.00"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("NewFromString(%q): %v", tc.in, err)
		}
		if got := formatAmount(d); got != tc.want {
			t.Errorf("formatAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	amount := decimal.RequireFromString("40")

	credit := ledger.Transaction{Amount: amount, Kind: ledger.KindCredit}
	if got := formatSigned(credit); got != "+$40.00" {
		t.Errorf("credit = %q, want +$40.00", got)
	}

	debit := ledger.Transaction{Amount: amount, Kind: ledger.KindDebit}
	if got := formatSigned(debit); got != "-$40.00" {
		t.Errorf("debit = %q, want -$40.00", got)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := monthLabel("2024-03"); got != "Mar 2024" {
		t.Errorf(`monthLabel("2024-03") = %q, want "Mar 2024"`, got)
	}
	if got := monthLabel("garbage"); got != "garbage" {
		t.Errorf("unparseable key should pass through, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a long description here", 10, "a long de…"},
		{"  padded  ", 20, "padded"},
		{"anything", 0, "anything"},
		{"ab", 1, "a"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestHumanizeSince(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "now"},
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
	}
	for _, tc := range cases {
		if got := humanizeSince(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("humanizeSince(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
	if got := humanizeSince(time.Time{}, now); got != "never" {
		t.Errorf("zero time = %q, want never", got)
	}
}

func TestTransactionRows(t *testing.T) {
	txs := []ledger.Transaction{
		{
			Date:        time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			Description: "groceries",
			Amount:      decimal.RequireFromString("40"),
			Kind:        ledger.KindDebit,
		},
		{
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Description: "salary",
			Amount:      decimal.RequireFromString("100"),
			Kind:        ledger.KindCredit,
		},
	}

	rows := transactionRows(txs, 80)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := []string{"2024-03-02", "groceries", "-$40.00", "expense"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row[0][%d] = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][3] != "income" {
		t.Errorf("row[1] kind = %q, want income", rows[1][3])
	}
}

func TestTableColumnsClampDescriptionWidth(t *testing.T) {
	cols := tableColumns(20)
	if cols[1].Width < 16 {
		t.Errorf("description width = %d, want at least 16", cols[1].Width)
	}
}

func TestTxFormParse(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	f := newTxForm(now)
	if _, err := f.parse(); err == nil {
		t.Fatalf("empty form parsed, want description error")
	}

	f.inputs[fieldDescription].SetValue("  coffee  ")
	f.inputs[fieldAmount].SetValue("4.50")
	input, err := f.parse()
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if input.Description != "coffee" {
		t.Errorf("Description = %q, want coffee", input.Description)
	}
	if !input.Amount.Equal(decimal.RequireFromString("4.5")) {
		t.Errorf("Amount = %s, want 4.5", input.Amount)
	}
	if input.Kind != ledger.KindDebit {
		t.Errorf("Kind = %v, want debit default", input.Kind)
	}
	if !input.Date.Equal(now) {
		t.Errorf("Date = %v, want %v", input.Date, now)
	}

	f.inputs[fieldAmount].SetValue("-3")
	if _, err := f.parse(); err == nil {
		t.Errorf("negative amount parsed, want error")
	}
	f.inputs[fieldAmount].SetValue("abc")
	if _, err := f.parse(); err == nil {
		t.Errorf("non-numeric amount parsed, want error")
	}

	f.inputs[fieldAmount].SetValue("10")
	f.inputs[fieldDate].SetValue("03/15/2024")
	if _, err := f.parse(); err == nil {
		t.Errorf("bad date parsed, want error")
	}
}

func TestNextThemeCycles(t *testing.T) {
	first := themeOrder[0]
	seen := map[string]bool{first: true}
	current := first
	for range themeOrder {
		current = NextTheme(current)
		seen[current] = true
	}
	if current != first {
		t.Errorf("cycle did not return to %q, ended at %q", first, current)
	}
	for _, name := range themeOrder {
		if !seen[name] {
			t.Errorf("theme %q never visited", name)
		}
	}
	if got := NextTheme("unknown"); got != first {
		t.Errorf("NextTheme(unknown) = %q, want %q", got, first)
	}
}
