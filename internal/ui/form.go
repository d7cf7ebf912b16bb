package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dvila/tally/internal/ledger"
)

const (
	fieldDescription = iota
	fieldAmount
	fieldDate
	fieldKind
	fieldCount
)

const dateLayout = "2006-01-02"

// txForm collects the fields for a new transaction. Validation happens on
// submit; the form keeps focus and shows the problem instead of clearing.
type txForm struct {
	inputs []textinput.Model
	kind   ledger.Kind
	focus  int
	errMsg string
}

func newTxForm(now time.Time) txForm {
	description := textinput.New()
	description.Placeholder = "Description"
	description.CharLimit = 120
	description.Focus()

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 20

	date := textinput.New()
	date.Placeholder = dateLayout
	date.SetValue(now.Format(dateLayout))
	date.CharLimit = 10

	return txForm{
		inputs: []textinput.Model{description, amount, date},
		kind:   ledger.KindDebit,
	}
}

func (f txForm) update(msg tea.Msg, keys keyMap) (txForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Next):
			f.focus = (f.focus + 1) % fieldCount
			f.syncFocus()
			return f, nil
		case keyMsg.String() == "shift+tab":
			f.focus = (f.focus + fieldCount - 1) % fieldCount
			f.syncFocus()
			return f, nil
		}
		if f.focus == fieldKind {
			switch keyMsg.String() {
			case "left", "right", " ":
				if f.kind == ledger.KindDebit {
					f.kind = ledger.KindCredit
				} else {
					f.kind = ledger.KindDebit
				}
			}
			return f, nil
		}
	}

	if f.focus >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *txForm) syncFocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// parse validates the form and builds a ledger input from it.
func (f txForm) parse() (ledger.Input, error) {
	description := strings.TrimSpace(f.inputs[fieldDescription].Value())
	if description == "" {
		return ledger.Input{}, errors.New("description is required")
	}

	rawAmount := strings.TrimSpace(f.inputs[fieldAmount].Value())
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return ledger.Input{}, errors.New("amount must be a number")
	}
	if !amount.IsPositive() {
		return ledger.Input{}, errors.New("amount must be greater than zero")
	}

	rawDate := strings.TrimSpace(f.inputs[fieldDate].Value())
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return ledger.Input{}, errors.New("date must be YYYY-MM-DD")
	}

	return ledger.Input{
		Date:        date,
		Description: description,
		Amount:      amount,
		Kind:        f.kind,
	}, nil
}

func (f txForm) view(styles Styles) string {
	labels := []string{"Description", "Amount", "Date"}

	var rows []string
	rows = append(rows, styles.AccentText.Bold(true).Render("New transaction"), "")
	for i, input := range f.inputs {
		label := styles.MutedText.Render(labels[i])
		if i == f.focus {
			label = styles.AccentText.Render(labels[i])
		}
		rows = append(rows, label, input.View())
	}

	kindLabel := styles.MutedText.Render("Kind")
	if f.focus == fieldKind {
		kindLabel = styles.AccentText.Render("Kind")
	}
	debit := ternary(f.kind == ledger.KindDebit, "[x] expense", "[ ] expense")
	credit := ternary(f.kind == ledger.KindCredit, "[x] income", "[ ] income")
	kindRow := styles.DebitText.Render(debit) + "  " + styles.CreditText.Render(credit)
	rows = append(rows, kindLabel, kindRow)

	if f.errMsg != "" {
		rows = append(rows, "", styles.DangerText.Render(f.errMsg))
	}
	rows = append(rows, "", styles.FaintText.Render("tab: next field · enter: save · esc: cancel"))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.FocusedBorder.Render(body)
}
