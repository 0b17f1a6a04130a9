package output

import (
	"fmt"
	"io"
	"strings"

	"studio-quote/core/estimator"
)

// MarkdownFormatter renders the quote as a markdown table
type MarkdownFormatter struct{}

// Format returns FormatMarkdown
func (MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the quote as markdown
func (MarkdownFormatter) Render(w io.Writer, q *estimator.Quote) error {
	var b strings.Builder
	sel := q.Selection

	fmt.Fprintf(&b, "## Project estimate: %s\n\n", sel.Service.DisplayName())
	fmt.Fprintf(&b, "| Item | Pricing | Amount |\n")
	fmt.Fprintf(&b, "|------|---------|-------:|\n")
	for _, li := range q.LineItems {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escapePipes(li.Label), li.Formula, q.Currency.FormatAmount(li.Amount))
	}
	fmt.Fprintf(&b, "| **Estimated total** | %s | **%s** |\n\n", q.Summary(), q.FormattedTotal())

	for _, warn := range q.Warnings {
		fmt.Fprintf(&b, "> ⚠ %s\n", warn.Message)
	}
	fmt.Fprintf(&b, "_%s_\n", Disclaimer)

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
