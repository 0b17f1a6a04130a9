// Package output renders quotes for humans and machines.
package output

import (
	"io"
	"sort"

	"studio-quote/core/estimator"
	"studio-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable boxed table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown table
	FormatMarkdown Format = "markdown"
)

// Disclaimer is printed under every human-readable quote
const Disclaimer = "This is an estimate. Final pricing will be confirmed after project review."

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the quote to w
	Render(w io.Writer, q *estimator.Quote) error
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the built-in formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(NewCLIFormatter(false))
	r.Register(JSONFormatter{})
	r.Register(MarkdownFormatter{})
	return r
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(name)]
	if !ok {
		return nil, errors.Inputf("unknown output format %q", name)
	}
	return f, nil
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
