package estimator

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-quote/core/catalog"
	"studio-quote/core/types"
)

func TestComputeLineItems(t *testing.T) {
	sel := Selection{
		Service: types.ServiceBundle,
		Size:    types.SizeAlbum,
		Songs:   8,
		// selection order is irrelevant, output follows the catalog
		AddOns: NewAddOnSet(types.AddOnDDP, types.AddOnStems, types.AddOnInstrumental),
	}

	q := Compute(catalog.Default(), sel)

	require.Len(t, q.LineItems, 4)
	assert.Equal(t, LineItemBase, q.LineItems[0].Kind)
	assert.Equal(t, "album", q.LineItems[0].Key)
	assert.Equal(t, 8, q.LineItems[0].Quantity)
	assert.Equal(t, "$300 × 8 songs", q.LineItems[0].Formula)

	keys := []string{q.LineItems[1].Key, q.LineItems[2].Key, q.LineItems[3].Key}
	assert.Equal(t, []string{"instrumental", "stems", "ddp"}, keys)
	assert.Equal(t, "flat $50", q.LineItems[3].Formula)

	assert.True(t, q.Base.Equal(decimal.NewFromInt(2400)))
	assert.True(t, q.AddOnTotal.Equal(decimal.NewFromInt(120+50+50)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(2620)))
	assert.Equal(t, "$2620", q.FormattedTotal())
	assert.Equal(t, "8 songs • 3 add-ons", q.Summary())
	assert.Empty(t, q.Warnings)
}

func TestComputeTotalIsBasePlusAddOns(t *testing.T) {
	c := catalog.Default()
	for _, service := range types.ServiceTypes {
		table, _ := c.Rates(service)
		for _, size := range table.Keys() {
			r := catalog.SongRangeFor(size)
			for songs := r.Min; songs <= r.Max; songs++ {
				sel := Selection{Service: service, Size: size, Songs: songs, AddOns: NewAddOnSet(types.AddOnKeys...)}
				q := Compute(c, sel)

				sum := decimal.Zero
				for _, li := range q.LineItems {
					sum = sum.Add(li.Amount)
				}
				if !q.Total.Equal(sum) || !q.Total.Equal(q.Base.Add(q.AddOnTotal)) {
					t.Fatalf("%s/%s/%d: total %s does not match line items %s", service, size, songs, q.Total, sum)
				}
				if again := Compute(c, sel); !again.Total.Equal(q.Total) {
					t.Fatalf("%s/%s/%d: non-deterministic total", service, size, songs)
				}
			}
		}
	}
}

func TestComputeDegradesInvalidKeys(t *testing.T) {
	sel := Selection{
		Service: types.ServiceMixing,
		Size:    types.SizeStemMastering,
		Songs:   6,
		AddOns:  NewAddOnSet(types.AddOnRush24, types.AddOnKey("vinyl")),
	}

	q := Compute(catalog.Default(), sel)

	assert.True(t, q.Base.IsZero())
	assert.True(t, q.Total.Equal(decimal.NewFromInt(50)))
	require.Len(t, q.Warnings, 2)
	assert.Equal(t, WarningUnknownSize, q.Warnings[0].Kind)
	assert.Equal(t, WarningUnknownAddOn, q.Warnings[1].Kind)
	assert.Equal(t, "vinyl", q.Warnings[1].Key)
}

func TestComputeClampsSongCount(t *testing.T) {
	tests := []struct {
		name  string
		size  types.ProjectSize
		songs int
		want  int
		total int64
	}{
		{"zero on ep", types.SizeEP, 0, 3, 900 + 45},
		{"negative on single", types.SizeSingle, -4, 1, 350 + 15},
		{"above album", types.SizeAlbum, 50, 20, 6000 + 300},
		{"huge on unknown size", types.ProjectSize("vinyl"), 1000000, 20, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selection{Service: types.ServiceMixing, Size: tt.size, Songs: tt.songs,
				AddOns: NewAddOnSet(types.AddOnInstrumental)}
			q := Compute(catalog.Default(), sel)

			assert.Equal(t, tt.want, q.Selection.Songs)
			assert.True(t, q.Total.Equal(decimal.NewFromInt(tt.total)), "total %s", q.Total)

			kinds := []WarningKind{}
			for _, w := range q.Warnings {
				kinds = append(kinds, w.Kind)
			}
			assert.Contains(t, kinds, WarningSongCount)
		})
	}
}

func TestComputeInRangeSongsHaveNoWarning(t *testing.T) {
	sel := Selection{Service: types.ServiceMixing, Size: types.SizeEP, Songs: 4, AddOns: NewAddOnSet()}
	q := Compute(catalog.Default(), sel)
	assert.Empty(t, q.Warnings)
	assert.Equal(t, 4, q.Selection.Songs)
}

func TestComputeDoesNotAliasSelection(t *testing.T) {
	sel := DefaultSelection()
	q := Compute(catalog.Default(), sel)
	sel.AddOns.Toggle(types.AddOnStems)
	assert.False(t, q.Selection.AddOns.Has(types.AddOnStems))
}

func TestSummary(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, "", Compute(c, DefaultSelection()).Summary())

	sel := DefaultSelection()
	sel.AddOns.Toggle(types.AddOnRush24)
	assert.Equal(t, "1 add-on", Compute(c, sel).Summary())
}

func TestAddOnSetJSON(t *testing.T) {
	set := NewAddOnSet(types.AddOnDDP, types.AddOnRush24)
	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["rush24","ddp"]`, string(data))

	var decoded AddOnSet
	require.NoError(t, json.Unmarshal([]byte(`["stems","stems","tvTrack"]`), &decoded))
	assert.Equal(t, 2, decoded.Len())
	assert.True(t, decoded.Has(types.AddOnTVTrack))
}

func TestAddOnSetToggleOnZeroSelection(t *testing.T) {
	var sel Selection
	require.NotPanics(t, func() {
		assert.True(t, sel.AddOns.Toggle(types.AddOnStems))
	})
	assert.True(t, sel.AddOns.Has(types.AddOnStems))
	assert.False(t, sel.AddOns.Toggle(types.AddOnStems))
	assert.Zero(t, sel.AddOns.Len())
}
