package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top bar: logo, total balance, feed mode and
// freshness, plus the monthly strip underneath.
func (m Model) renderHeader(now time.Time) string {
	styles := m.styles

	parts := []string{
		styles.Logo.Render("tally"),
		styles.Text.Bold(true).Render("Total " + formatAmount(m.snapshot.Total)),
		m.renderFeedBadge(),
		styles.MutedText.Render("updated " + humanizeSince(m.snapshot.LastUpdated, now)),
	}
	if m.snapshot.Loading {
		parts = append(parts, styles.AccentText.Render("refreshing…"))
	}

	bar := styles.Header.Width(m.width).Render(strings.Join(parts, "   "))

	strip := m.renderMonthlyStrip()
	if strip == "" {
		return bar
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, strip)
}

// renderFeedBadge shows whether updates arrive live or by polling only.
func (m Model) renderFeedBadge() string {
	if m.snapshot.Live() {
		return m.styles.CreditText.Render("● LIVE")
	}
	return m.styles.WarningText.Render("○ POLL")
}

// renderMonthlyStrip renders per-month balances, most recent first.
func (m Model) renderMonthlyStrip() string {
	if len(m.snapshot.Monthly) == 0 {
		return ""
	}

	styles := m.styles
	var cells []string
	for i, mb := range m.snapshot.Monthly {
		if i >= 6 {
			break
		}
		balance := mb.Balance()
		balanceStyle := styles.CreditText
		if balance.IsNegative() {
			balanceStyle = styles.DebitText
		}
		cell := styles.MutedText.Render(monthLabel(mb.Month)) + " " +
			balanceStyle.Render(formatAmount(balance))
		cells = append(cells, cell)
	}
	return styles.Footer.Width(m.width).Render(strings.Join(cells, "  |  "))
}

// renderError renders the error toast. Stale data stays on screen; the
// toast carries the backend message verbatim.
func (m Model) renderError() string {
	if m.snapshot.Err == nil {
		return ""
	}
	return m.styles.DangerText.Render("⚠ " + truncate(m.snapshot.Err.Error(), m.width-4))
}
