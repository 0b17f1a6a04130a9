// Package catalog - Authoritative rate tables and add-on catalog.
// Every quote is priced against exactly one Catalog.
package catalog

import (
	"github.com/shopspring/decimal"

	"studio-quote/core/types"
)

// Rate describes a priceable plan tier
type Rate struct {
	Key         types.ProjectSize `json:"key"`
	Label       string            `json:"label"`
	Price       decimal.Decimal   `json:"price"`
	PerSong     bool              `json:"per_song"`
	Description string            `json:"description"`
}

// AddOn is an optional extra, independent of service and size
type AddOn struct {
	Key         types.AddOnKey  `json:"key"`
	Label       string          `json:"label"`
	Price       decimal.Decimal `json:"price"`
	PerSong     bool            `json:"per_song"`
	Description string          `json:"description"`
}

// RateTable maps project sizes to rates for one service, keeping display order
type RateTable struct {
	Service types.ServiceType
	rates   []Rate
	index   map[types.ProjectSize]int
}

// NewRateTable creates a table from rates in display order. Later duplicates replace earlier ones.
func NewRateTable(service types.ServiceType, rates ...Rate) *RateTable {
	t := &RateTable{
		Service: service,
		index:   make(map[types.ProjectSize]int),
	}
	for _, r := range rates {
		t.Put(r)
	}
	return t
}

// Put adds or replaces a rate
func (t *RateTable) Put(r Rate) {
	if i, ok := t.index[r.Key]; ok {
		t.rates[i] = r
		return
	}
	t.index[r.Key] = len(t.rates)
	t.rates = append(t.rates, r)
}

// Get returns the rate for a size
func (t *RateTable) Get(size types.ProjectSize) (Rate, bool) {
	if t == nil {
		return Rate{}, false
	}
	i, ok := t.index[size]
	if !ok {
		return Rate{}, false
	}
	return t.rates[i], true
}

// Has reports whether the size is a key of this table
func (t *RateTable) Has(size types.ProjectSize) bool {
	_, ok := t.Get(size)
	return ok
}

// Rates returns the rates in display order
func (t *RateTable) Rates() []Rate {
	if t == nil {
		return nil
	}
	out := make([]Rate, len(t.rates))
	copy(out, t.rates)
	return out
}

// Keys returns the size keys in display order
func (t *RateTable) Keys() []types.ProjectSize {
	if t == nil {
		return nil
	}
	keys := make([]types.ProjectSize, 0, len(t.rates))
	for _, r := range t.rates {
		keys = append(keys, r.Key)
	}
	return keys
}

// Len returns the number of rates
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rates)
}

// Catalog holds the rate table for every service plus the add-on catalog
type Catalog struct {
	Currency types.Currency

	tables      map[types.ServiceType]*RateTable
	addOns      []AddOn
	addOnIndex  map[types.AddOnKey]int
	serviceList []types.ServiceType
}

// New creates an empty catalog
func New(currency types.Currency) *Catalog {
	if currency == "" {
		currency = types.CurrencyUSD
	}
	return &Catalog{
		Currency:   currency,
		tables:     make(map[types.ServiceType]*RateTable),
		addOnIndex: make(map[types.AddOnKey]int),
	}
}

// SetTable registers the rate table for its service
func (c *Catalog) SetTable(t *RateTable) {
	if _, ok := c.tables[t.Service]; !ok {
		c.serviceList = append(c.serviceList, t.Service)
	}
	c.tables[t.Service] = t
}

// PutAddOn adds or replaces an add-on
func (c *Catalog) PutAddOn(a AddOn) {
	if i, ok := c.addOnIndex[a.Key]; ok {
		c.addOns[i] = a
		return
	}
	c.addOnIndex[a.Key] = len(c.addOns)
	c.addOns = append(c.addOns, a)
}

// Rates returns the rate table for a service
func (c *Catalog) Rates(service types.ServiceType) (*RateTable, bool) {
	t, ok := c.tables[service]
	return t, ok
}

// Rate looks up the rate for a service and size
func (c *Catalog) Rate(service types.ServiceType, size types.ProjectSize) (Rate, bool) {
	t, ok := c.tables[service]
	if !ok {
		return Rate{}, false
	}
	return t.Get(size)
}

// AddOn looks up an add-on by key
func (c *Catalog) AddOn(key types.AddOnKey) (AddOn, bool) {
	i, ok := c.addOnIndex[key]
	if !ok {
		return AddOn{}, false
	}
	return c.addOns[i], true
}

// Services returns the services with a rate table, in display order
func (c *Catalog) Services() []types.ServiceType {
	out := make([]types.ServiceType, len(c.serviceList))
	copy(out, c.serviceList)
	return out
}

// AddOns returns the add-ons in display order
func (c *Catalog) AddOns() []AddOn {
	out := make([]AddOn, len(c.addOns))
	copy(out, c.addOns)
	return out
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{
		Services: len(c.tables),
		AddOns:   len(c.addOns),
	}
	for _, t := range c.tables {
		stats.Rates += t.Len()
		for _, r := range t.rates {
			if r.PerSong {
				stats.PerSongRates++
			}
		}
	}
	return stats
}

// Stats contains catalog statistics
type Stats struct {
	Services     int `json:"services"`
	Rates        int `json:"rates"`
	PerSongRates int `json:"per_song_rates"`
	AddOns       int `json:"add_ons"`
}
