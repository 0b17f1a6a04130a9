package output

import (
	"encoding/json"
	"io"

	"studio-quote/core/estimator"
)

// JSONFormatter renders the quote as indented JSON; amounts are decimal strings
type JSONFormatter struct{}

// Format returns FormatJSON
func (JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the quote as JSON
func (JSONFormatter) Render(w io.Writer, q *estimator.Quote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*estimator.Quote
		Summary string `json:"summary,omitempty"`
	}{q, q.Summary()})
}
