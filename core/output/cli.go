package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"studio-quote/core/estimator"
)

// CLIFormatter renders a boxed table for terminals
type CLIFormatter struct {
	noColor bool
	accent  lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
}

// NewCLIFormatter creates the terminal formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	f := &CLIFormatter{noColor: noColor}
	if !noColor {
		f.accent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0c0c0"))
		f.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
		f.warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	}
	return f
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

const boxWidth = 73

// Render writes the quote as a table
func (f *CLIFormatter) Render(w io.Writer, q *estimator.Quote) error {
	var b strings.Builder
	rule := strings.Repeat("─", boxWidth)

	sel := q.Selection
	b.WriteString("┌" + rule + "┐\n")
	row(&b, centre("PROJECT ESTIMATE", boxWidth-2))
	b.WriteString("├" + rule + "┤\n")
	row(&b, fmt.Sprintf("%-24s %46s", "Service", sel.Service.DisplayName()))
	row(&b, fmt.Sprintf("%-24s %46s", "Project size", string(sel.Size)))
	row(&b, fmt.Sprintf("%-24s %46d", "Songs", sel.Songs))
	b.WriteString("├" + rule + "┤\n")

	for _, li := range q.LineItems {
		row(&b, fmt.Sprintf("%-50s %20s", truncate(li.Label, 50), q.Currency.FormatAmount(li.Amount)))
		row(&b, fmt.Sprintf("  └─ %-66s", truncate(li.Formula, 66)))
	}

	b.WriteString("├" + rule + "┤\n")
	row(&b, fmt.Sprintf("%-50s %20s", "ESTIMATED TOTAL", q.FormattedTotal()))
	if s := q.Summary(); s != "" {
		row(&b, fmt.Sprintf("%-71s", s))
	}
	b.WriteString("└" + rule + "┘\n")

	out := b.String()
	if !f.noColor {
		out = strings.Replace(out, "ESTIMATED TOTAL", f.accent.Render("ESTIMATED TOTAL"), 1)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return err
	}

	for _, warn := range q.Warnings {
		if _, err := fmt.Fprintln(w, f.paint(f.warning, "⚠ "+warn.Message)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, f.paint(f.muted, Disclaimer))
	return err
}

func (f *CLIFormatter) paint(s lipgloss.Style, text string) string {
	if f.noColor {
		return text
	}
	return s.Render(text)
}

func row(b *strings.Builder, content string) {
	b.WriteString("│ " + content + " │\n")
}

func centre(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
