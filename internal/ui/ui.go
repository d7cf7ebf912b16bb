package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvila/tally/internal/ledger"
	"github.com/dvila/tally/internal/prefs"
	"github.com/dvila/tally/internal/state"
)

// Options configure the UI runtime.
type Options struct {
	Collection *state.Collection
	Store      ledger.Store
	Owner      uuid.UUID
	PrefsPath  string
	Theme      string
	Log        zerolog.Logger
}

const uiTickInterval = time.Second

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
	modeFilter
)

type tickMsg time.Time

type mutationMsg struct {
	action string
	err    error
}

// Run starts the terminal UI and blocks until ctx is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Collection == nil {
		return errors.New("ui requires a collection")
	}
	if opts.Store == nil {
		return errors.New("ui requires a store")
	}

	program := tea.NewProgram(newModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Model is the bubbletea model for the transaction view.
type Model struct {
	ctx  context.Context
	opts Options

	keys   keyMap
	theme  Theme
	styles Styles
	help   help.Model

	table table.Model
	form  txForm
	mode  mode

	filter      txFilter
	filterInput textinput.Model
	filterErr   string

	snapshot  state.Snapshot
	visible   []ledger.Transaction
	confirmID uuid.UUID
	notice    string

	width  int
	height int
}

func newModel(ctx context.Context, opts Options) Model {
	theme := GetTheme(opts.Theme)
	styles := theme.Styles()

	m := Model{
		ctx:      ctx,
		opts:     opts,
		keys:     DefaultKeyMap(),
		theme:    theme,
		styles:   styles,
		help:     help.New(),
		table:    newTable(theme),
		snapshot: opts.Collection.Snapshot(),
		width:    80,
		height:   24,
	}
	m.refreshRows()
	return m
}

// refreshRows rebuilds the table from the snapshot with the filter applied.
func (m *Model) refreshRows() {
	m.visible = m.filter.apply(m.snapshot.Transactions)
	m.table.SetRows(transactionRows(m.visible, m.width))
	m.table.SetHeight(m.tableHeight())
}

func newTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(theme.Muted)).
		Bold(true)
	ts.Selected = ts.Selected.
		Background(lipgloss.Color(theme.SelectionBg)).
		Foreground(lipgloss.Color(theme.SelectionText)).
		Bold(false)
	t.SetStyles(ts)
	return t
}

func tableColumns(width int) []table.Column {
	descWidth := width - 12 - 14 - 10 - 8
	if descWidth < 16 {
		descWidth = 16
	}
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: descWidth},
		{Title: "Amount", Width: 14},
		{Title: "Kind", Width: 10},
	}
}

func transactionRows(txs []ledger.Transaction, width int) []table.Row {
	descWidth := tableColumns(width)[1].Width
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		kind := ternary(tx.Kind == ledger.KindCredit, "income", "expense")
		rows = append(rows, table.Row{
			tx.Date.Format(dateLayout),
			truncate(tx.Description, descWidth),
			formatSigned(tx),
			kind,
		})
	}
	return rows
}

func tick() tea.Cmd {
	return tea.Tick(uiTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(tableColumns(m.width))
		m.table.SetHeight(m.tableHeight())
		m.refreshRows()
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.snapshot = m.opts.Collection.Snapshot()
		m.refreshRows()
		return m, tick()

	case mutationMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("%s failed: %s", msg.action, msg.err)
			m.opts.Log.Error().Err(msg.err).Str("action", msg.action).Msg("mutation failed")
		} else {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeFilter:
			return m.updateFilter(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Non-key messages (cursor blink) still reach the focused input.
	switch m.mode {
	case modeForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg, m.keys)
		return m, cmd
	case modeFilter:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.opts.Collection.Refetch(m.ctx, true)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = modeForm
		m.form = newTxForm(time.Now())
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if tx, ok := m.selectedTransaction(); ok {
			m.mode = modeConfirmDelete
			m.confirmID = tx.ID
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(NextTheme(m.theme.Name))
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeFilter
		m.filterErr = ""
		m.filterInput = newFilterInput(m.filter.pattern)
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case key.Matches(msg, m.keys.CycleKind):
		m.filter.kind = m.filter.kind.next()
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.CycleMonth):
		m.filter.cycleMonth(availableMonths(m.snapshot.Transactions))
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.filter.active() {
			m.filter.clear()
			m.refreshRows()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func newFilterInput(pattern string) textinput.Model {
	in := textinput.New()
	in.Prompt = "/"
	in.CharLimit = 80
	in.SetValue(pattern)
	in.Focus()
	return in
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.filterErr = ""
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if err := m.filter.setPattern(m.filterInput.Value()); err != nil {
			m.filterErr = "invalid pattern: " + err.Error()
			return m, nil
		}
		m.mode = modeList
		m.filterErr = ""
		m.refreshRows()
		m.table.SetHeight(m.tableHeight())
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	// Checked before input dispatch so the focused field cannot swallow it.
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		input, err := m.form.parse()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.mode = modeList
		return m, m.insertCmd(input)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg, m.keys)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "enter":
		id := m.confirmID
		m.mode = modeList
		m.confirmID = uuid.Nil
		return m, m.removeCmd(id)
	case "n", "esc":
		m.mode = modeList
		m.confirmID = uuid.Nil
	}
	return m, nil
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.styles = m.theme.Styles()
	m.table = newTable(m.theme)
	m.table.SetColumns(tableColumns(m.width))
	m.table.SetHeight(m.tableHeight())
	m.refreshRows()

	if err := prefs.Save(m.opts.PrefsPath, prefs.Prefs{Theme: name}); err != nil {
		m.opts.Log.Warn().Err(err).Msg("save theme preference")
	}
}

// insertCmd writes the new transaction and then asks the collection for a
// background refresh so every consumer sees it.
func (m Model) insertCmd(input ledger.Input) tea.Cmd {
	ctx, opts := m.ctx, m.opts
	return func() tea.Msg {
		_, err := opts.Store.Insert(ctx, opts.Owner, input)
		if err == nil {
			opts.Collection.Refetch(ctx, false)
		}
		return mutationMsg{action: "add", err: err}
	}
}

func (m Model) removeCmd(id uuid.UUID) tea.Cmd {
	ctx, opts := m.ctx, m.opts
	return func() tea.Msg {
		err := opts.Store.Remove(ctx, opts.Owner, id)
		if err == nil {
			opts.Collection.Refetch(ctx, false)
		}
		return mutationMsg{action: "delete", err: err}
	}
}

func (m Model) selectedTransaction() (ledger.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return ledger.Transaction{}, false
	}
	return m.visible[idx], true
}

func (m Model) tableHeight() int {
	// header bar + monthly strip + error/notice + footer
	h := m.height - 6
	if m.help.ShowAll {
		h -= 3
	}
	if m.mode == modeFilter {
		h -= 2 // prompt + hint
	} else if m.filter.active() {
		h-- // filter bar
	}
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	now := time.Now()
	sections := []string{m.renderHeader(now)}

	if toast := m.renderError(); toast != "" {
		sections = append(sections, toast)
	}
	if m.notice != "" {
		sections = append(sections, m.styles.WarningText.Render(m.notice))
	}

	switch m.mode {
	case modeForm:
		sections = append(sections, m.form.view(m.styles))
	case modeConfirmDelete:
		sections = append(sections, m.renderConfirm())
	case modeFilter:
		sections = append(sections, m.renderList(), m.renderFilterPrompt())
	default:
		if bar := m.renderFilterBar(); bar != "" {
			sections = append(sections, bar)
		}
		sections = append(sections, m.renderList())
	}

	sections = append(sections, m.styles.Footer.Width(m.width).Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderList() string {
	if len(m.visible) == 0 && !m.snapshot.Loading {
		text := "No transactions yet. Press 'a' to add one."
		if m.filter.active() && len(m.snapshot.Transactions) > 0 {
			text = "No transactions match the filter. Press esc to clear it."
		}
		empty := m.styles.MutedText.Render(text)
		return lipgloss.Place(m.width, m.tableHeight(), lipgloss.Center, lipgloss.Center, empty)
	}
	return m.table.View()
}

// renderFilterBar summarizes the active filter above the table.
func (m Model) renderFilterBar() string {
	if !m.filter.active() {
		return ""
	}
	summary := fmt.Sprintf("filter: %s  (%d of %d)",
		m.filter.label(), len(m.visible), len(m.snapshot.Transactions))
	return m.styles.AccentText.Render(summary)
}

func (m Model) renderFilterPrompt() string {
	hint := m.styles.FaintText.Render("Filter (regex, case-insensitive). Enter to apply, esc to cancel.")
	if m.filterErr != "" {
		hint = m.styles.DangerText.Render(m.filterErr)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.filterInput.View(), hint)
}

func (m Model) renderConfirm() string {
	tx, ok := m.selectedTransaction()
	if !ok {
		return m.table.View()
	}
	prompt := fmt.Sprintf("Delete %q (%s)?  y/n",
		truncate(tx.Description, 40), formatSigned(tx))
	return lipgloss.JoinVertical(lipgloss.Left,
		m.table.View(),
		m.styles.DangerText.Render(prompt),
	)
}
