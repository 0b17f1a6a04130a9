// Package flow implements the host page flow the estimator is mounted in.
// Transitions happen only on explicit navigation; there is no back stack
// beyond Back, which always returns home.
package flow

import (
	"go.uber.org/zap"

	"studio-quote/core/types"
	"studio-quote/internal/logging"
)

// Transition records one page change
type Transition struct {
	From types.Page `json:"from"`
	To   types.Page `json:"to"`
}

// Listener is notified after every transition
type Listener func(Transition)

// Flow is the page-flow state machine: home, pricing, upload, options, payment
type Flow struct {
	current   types.Page
	history   []Transition
	listeners []Listener
	log       *zap.Logger
}

// New creates a flow positioned on the home page
func New() *Flow {
	return &Flow{
		current: types.PageHome,
		log:     logging.Named("flow"),
	}
}

// Current returns the page being shown
func (f *Flow) Current() types.Page {
	return f.current
}

// NavigateTo moves to page. Pages outside the flow are ignored.
func (f *Flow) NavigateTo(page types.Page) {
	if !page.IsValid() {
		f.log.Warn("ignoring navigation to unknown page", zap.Stringer("page", page))
		return
	}

	t := Transition{From: f.current, To: page}
	f.current = page
	f.history = append(f.history, t)

	f.log.Debug("navigate", zap.Stringer("from", t.From), zap.Stringer("to", t.To))
	for _, l := range f.listeners {
		l(t)
	}
}

// Back returns to the home page
func (f *Flow) Back() {
	f.NavigateTo(types.PageHome)
}

// OnChange registers a listener for transitions
func (f *Flow) OnChange(l Listener) {
	f.listeners = append(f.listeners, l)
}

// History returns every transition so far
func (f *Flow) History() []Transition {
	out := make([]Transition, len(f.history))
	copy(out, f.history)
	return out
}
