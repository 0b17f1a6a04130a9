// Package estimator implements the studio pricing estimator: a flat reactive
// form over one Selection, priced against a Catalog.
//
// An Estimator is driven by one interaction at a time and is not safe for
// concurrent use; wrap it per session. Compute is pure and may be called from
// any goroutine.
package estimator

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"studio-quote/core/catalog"
	"studio-quote/core/types"
	"studio-quote/internal/errors"
	"studio-quote/internal/logging"
)

// Navigator is the host page flow the estimator signals on back and proceed
type Navigator interface {
	NavigateTo(page types.Page)
}

// NavigatorFunc adapts a function to a Navigator
type NavigatorFunc func(page types.Page)

// NavigateTo calls f(page)
func (f NavigatorFunc) NavigateTo(page types.Page) {
	f(page)
}

// Estimator holds the selection state for one visit
type Estimator struct {
	catalog *catalog.Catalog
	nav     Navigator
	state   Selection
	log     *zap.Logger
}

// New creates an estimator in the default state. A nil navigator discards navigation.
func New(c *catalog.Catalog, nav Navigator) *Estimator {
	if nav == nil {
		nav = NavigatorFunc(func(types.Page) {})
	}
	return &Estimator{
		catalog: c,
		nav:     nav,
		state:   DefaultSelection(),
		log:     logging.Named("estimator"),
	}
}

// Catalog returns the catalog quotes are priced against
func (e *Estimator) Catalog() *catalog.Catalog {
	return e.catalog
}

// Selection returns a copy of the current selection
func (e *Estimator) Selection() Selection {
	return e.state.Clone()
}

// CurrentRates returns the rate table of the selected service
func (e *Estimator) CurrentRates() *catalog.RateTable {
	t, _ := e.catalog.Rates(e.state.Service)
	return t
}

// SetServiceType switches service. Size always resets to single and the song count to 1.
func (e *Estimator) SetServiceType(service types.ServiceType) error {
	if !service.IsValid() {
		return errors.Inputf("unknown service type %q", service)
	}
	if _, ok := e.catalog.Rates(service); !ok {
		return errors.NotFound("rate table", string(service))
	}

	e.state.Service = service
	e.state.Size = types.SizeSingle
	e.state.Songs = 1

	e.log.Debug("service type changed", zap.Stringer("service", service))
	return nil
}

// SetProjectSize selects a tier of the current service and seeds the song
// count with the tier default. A size the service does not offer is rejected
// and the selection is left as it was.
func (e *Estimator) SetProjectSize(size types.ProjectSize) error {
	if !e.CurrentRates().Has(size) {
		return errors.Inputf("%s does not offer project size %q", e.state.Service, size)
	}

	e.state.Size = size
	e.state.Songs = catalog.SongRangeFor(size).Default

	e.log.Debug("project size changed",
		zap.Stringer("size", size),
		zap.Int("songs", e.state.Songs),
	)
	return nil
}

// SetSongCount stores n clamped into the current size's range and returns the stored value
func (e *Estimator) SetSongCount(n int) int {
	r := e.SongRange()
	clamped := r.Clamp(n)
	if clamped != n {
		e.log.Debug("song count clamped", zap.Int("requested", n), zap.Int("stored", clamped))
	}
	e.state.Songs = clamped
	return clamped
}

// SongRange returns the valid song count window for the current size
func (e *Estimator) SongRange() catalog.SongRange {
	return catalog.SongRangeFor(e.state.Size)
}

// MinSongs returns the lowest song count the current size allows
func (e *Estimator) MinSongs() int {
	return e.SongRange().Min
}

// MaxSongs returns the highest song count the current size allows
func (e *Estimator) MaxSongs() int {
	return e.SongRange().Max
}

// ToggleAddOn flips membership of key and reports whether it is now selected.
// Keys missing from the catalog are rejected without changing the selection.
func (e *Estimator) ToggleAddOn(key types.AddOnKey) (bool, error) {
	if _, ok := e.catalog.AddOn(key); !ok {
		return false, errors.Inputf("unknown add-on %q", key)
	}
	selected := e.state.AddOns.Toggle(key)
	e.log.Debug("add-on toggled", zap.Stringer("add_on", key), zap.Bool("selected", selected))
	return selected, nil
}

// Quote prices the current selection with line items
func (e *Estimator) Quote() *Quote {
	return Compute(e.catalog, e.state)
}

// Total prices the current selection
func (e *Estimator) Total() decimal.Decimal {
	return e.Quote().Total
}

// Proceed hands the visitor to the options step. Selection is not touched.
func (e *Estimator) Proceed() {
	e.log.Debug("proceed", zap.String("total", e.Total().String()))
	e.nav.NavigateTo(types.PageOptions)
}

// Back returns the visitor to the home page
func (e *Estimator) Back() {
	e.nav.NavigateTo(types.PageHome)
}
