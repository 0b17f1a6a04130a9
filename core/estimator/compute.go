package estimator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"studio-quote/core/catalog"
	"studio-quote/core/types"
)

// LineItemKind distinguishes the base service charge from add-on charges
type LineItemKind string

const (
	LineItemBase  LineItemKind = "base"
	LineItemAddOn LineItemKind = "add_on"
)

// LineItem is a single priced component of a quote
type LineItem struct {
	Kind      LineItemKind    `json:"kind"`
	Key       string          `json:"key"`
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	PerSong   bool            `json:"per_song"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`

	// Formula describes how Amount was derived
	Formula string `json:"formula"`
}

// WarningKind classifies a degraded lookup
type WarningKind string

const (
	WarningUnknownSize  WarningKind = "unknown_size"
	WarningUnknownAddOn WarningKind = "unknown_add_on"
	WarningSongCount    WarningKind = "song_count"
)

// Warning records an input that was degraded instead of rejected
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Key     string      `json:"key,omitempty"`
	Message string      `json:"message"`
}

// Quote is the priced result of a selection
type Quote struct {
	Selection  Selection       `json:"selection"`
	Currency   types.Currency  `json:"currency"`
	LineItems  []LineItem      `json:"line_items"`
	Base       decimal.Decimal `json:"base"`
	AddOnTotal decimal.Decimal `json:"add_on_total"`
	Total      decimal.Decimal `json:"total"`
	Warnings   []Warning       `json:"warnings,omitempty"`
}

// Compute prices a selection against a catalog. It never fails: a size the
// service does not offer or an unknown add-on contributes zero and is recorded
// as a warning. The song count is clamped into the size's range, with unknown
// sizes using the multi-song range.
func Compute(c *catalog.Catalog, sel Selection) *Quote {
	q := &Quote{
		Selection:  sel.Clone(),
		Currency:   c.Currency,
		LineItems:  []LineItem{},
		Base:       decimal.Zero,
		AddOnTotal: decimal.Zero,
		Total:      decimal.Zero,
	}

	songs := catalog.SongRangeFor(sel.Size).Clamp(sel.Songs)
	if songs != sel.Songs {
		q.warn(WarningSongCount, "", fmt.Sprintf("song count %d clamped to %d", sel.Songs, songs))
		q.Selection.Songs = songs
	}

	if rate, ok := c.Rate(sel.Service, sel.Size); ok {
		item := priceLine(c.Currency, LineItemBase, string(rate.Key), rate.Label, rate.Price, rate.PerSong, songs)
		q.Base = item.Amount
		q.LineItems = append(q.LineItems, item)
	} else {
		q.warn(WarningUnknownSize, string(sel.Size),
			fmt.Sprintf("%s has no %q tier; base price omitted", sel.Service, sel.Size))
	}

	for _, key := range sel.AddOns.Keys() {
		addOn, ok := c.AddOn(key)
		if !ok {
			q.warn(WarningUnknownAddOn, string(key), fmt.Sprintf("add-on %q is not offered; ignored", key))
			continue
		}
		item := priceLine(c.Currency, LineItemAddOn, string(addOn.Key), addOn.Label, addOn.Price, addOn.PerSong, songs)
		q.AddOnTotal = q.AddOnTotal.Add(item.Amount)
		q.LineItems = append(q.LineItems, item)
	}

	q.Total = q.Base.Add(q.AddOnTotal)
	return q
}

func priceLine(cur types.Currency, kind LineItemKind, key, label string, price decimal.Decimal, perSong bool, songs int) LineItem {
	item := LineItem{
		Kind:      kind,
		Key:       key,
		Label:     label,
		UnitPrice: price,
		PerSong:   perSong,
		Quantity:  1,
		Amount:    price,
		Formula:   "flat " + cur.FormatAmount(price),
	}
	if perSong {
		item.Quantity = songs
		item.Amount = price.Mul(decimal.NewFromInt(int64(songs)))
		item.Formula = fmt.Sprintf("%s × %d %s", cur.FormatAmount(price), songs, plural(songs, "song"))
	}
	return item
}

func (q *Quote) warn(kind WarningKind, key, msg string) {
	q.Warnings = append(q.Warnings, Warning{Kind: kind, Key: key, Message: msg})
}

// AddOnCount returns the number of priced add-ons
func (q *Quote) AddOnCount() int {
	n := 0
	for _, li := range q.LineItems {
		if li.Kind == LineItemAddOn {
			n++
		}
	}
	return n
}

// Summary renders the caption shown under the total, e.g. "4 songs • 2 add-ons"
func (q *Quote) Summary() string {
	var parts []string
	if q.Selection.Songs > 1 {
		parts = append(parts, fmt.Sprintf("%d songs", q.Selection.Songs))
	}
	if n := q.AddOnCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, "add-on")))
	}
	return strings.Join(parts, " • ")
}

// FormattedTotal renders the total with the currency symbol
func (q *Quote) FormattedTotal() string {
	return q.Currency.FormatAmount(q.Total)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
