package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"studio-quote/core/types"
	"studio-quote/internal/errors"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	if err := c.Check(); err != nil {
		t.Fatalf("default catalog failed validation: %v", err)
	}

	stats := c.Stats()
	if stats.Services != 3 || stats.Rates != 9 || stats.AddOns != 6 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestDefaultRateTableKeys(t *testing.T) {
	c := Default()

	tests := []struct {
		service types.ServiceType
		keys    []types.ProjectSize
	}{
		{types.ServiceMixing, []types.ProjectSize{types.SizeSingle, types.SizeEP, types.SizeAlbum}},
		{types.ServiceMastering, []types.ProjectSize{types.SizeSingle, types.SizeEPAlbum, types.SizeStemMastering}},
		{types.ServiceBundle, []types.ProjectSize{types.SizeSingle, types.SizeEP, types.SizeAlbum}},
	}

	for _, tt := range tests {
		t.Run(string(tt.service), func(t *testing.T) {
			table, ok := c.Rates(tt.service)
			if !ok {
				t.Fatalf("no table for %s", tt.service)
			}
			got := table.Keys()
			if len(got) != len(tt.keys) {
				t.Fatalf("keys = %v, want %v", got, tt.keys)
			}
			for i := range got {
				if got[i] != tt.keys[i] {
					t.Errorf("key[%d] = %s, want %s", i, got[i], tt.keys[i])
				}
			}
		})
	}
}

func TestRateLookup(t *testing.T) {
	c := Default()

	rate, ok := c.Rate(types.ServiceMastering, types.SizeStemMastering)
	if !ok {
		t.Fatal("stem mastering rate missing")
	}
	if !rate.Price.Equal(decimal.NewFromInt(125)) || !rate.PerSong {
		t.Errorf("unexpected stem mastering rate: %+v", rate)
	}

	if _, ok := c.Rate(types.ServiceMixing, types.SizeEPAlbum); ok {
		t.Error("epAlbum must not be a mixing key")
	}

	addOn, ok := c.AddOn(types.AddOnRush48)
	if !ok || !addOn.Price.Equal(decimal.NewFromInt(25)) || addOn.PerSong {
		t.Errorf("unexpected rush48 add-on: %+v", addOn)
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	c := New(types.CurrencyUSD)
	c.SetTable(NewRateTable(types.ServiceMixing,
		Rate{Key: types.SizeSingle, Price: decimal.NewFromInt(350), PerSong: true},
		Rate{Key: types.SizeEP, Price: decimal.NewFromInt(-1), PerSong: true},
		Rate{Key: types.SizeAlbum, Price: decimal.NewFromInt(300)},
	))
	c.SetTable(NewRateTable(types.ServiceMastering,
		Rate{Key: types.SizeEPAlbum, Price: decimal.NewFromInt(75), PerSong: true},
	))

	errs := c.Validate(DefaultValidationRules())
	// bundle missing, mixing single per-song, ep negative, album flat, mastering without single
	if len(errs) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(errs), errs)
	}

	if err := c.Check(); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("Check() should return CONFIG_ERROR, got %v", err)
	}
}

func TestRateTablePutReplaces(t *testing.T) {
	table := NewRateTable(types.ServiceMixing,
		Rate{Key: types.SizeSingle, Price: decimal.NewFromInt(350)},
		Rate{Key: types.SizeEP, Price: decimal.NewFromInt(300), PerSong: true},
	)
	table.Put(Rate{Key: types.SizeSingle, Price: decimal.NewFromInt(375)})

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	rate, _ := table.Get(types.SizeSingle)
	if !rate.Price.Equal(decimal.NewFromInt(375)) {
		t.Errorf("replacement not applied: %s", rate.Price)
	}
	if table.Keys()[0] != types.SizeSingle {
		t.Error("replacement must keep display position")
	}
}

func TestSongRanges(t *testing.T) {
	tests := []struct {
		size types.ProjectSize
		want SongRange
	}{
		{types.SizeSingle, SongRange{Min: 1, Max: 1, Default: 1}},
		{types.SizeEP, SongRange{Min: 3, Max: 5, Default: 4}},
		{types.SizeEPAlbum, SongRange{Min: 3, Max: 5, Default: 4}},
		{types.SizeAlbum, SongRange{Min: 6, Max: 20, Default: 8}},
		{types.SizeStemMastering, SongRange{Min: 6, Max: 20, Default: 8}},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			got := SongRangeFor(tt.size)
			if got != tt.want {
				t.Errorf("SongRangeFor(%s) = %+v, want %+v", tt.size, got, tt.want)
			}
			if !got.Contains(got.Default) {
				t.Errorf("default %d outside range", got.Default)
			}
		})
	}
}

func TestSongRangeClamp(t *testing.T) {
	r := SongRangeFor(types.SizeEP)
	cases := map[int]int{-4: 3, 0: 3, 3: 3, 4: 4, 5: 5, 6: 5, 100: 5}
	for in, want := range cases {
		if got := r.Clamp(in); got != want {
			t.Errorf("Clamp(%d) = %d, want %d", in, got, want)
		}
	}
	if !SongRangeFor(types.SizeSingle).Fixed() {
		t.Error("single range should be fixed")
	}
}
