package catalog

import (
	"github.com/shopspring/decimal"

	"studio-quote/core/types"
)

func usd(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

// Default returns the studio's published rate card
func Default() *Catalog {
	c := New(types.CurrencyUSD)

	c.SetTable(NewRateTable(types.ServiceMixing,
		Rate{Key: types.SizeSingle, Label: "Single Song", Price: usd(350), Description: "One song, up to 24 stems"},
		Rate{Key: types.SizeEP, Label: "EP (3-5 songs)", Price: usd(300), PerSong: true, Description: "Per song rate"},
		Rate{Key: types.SizeAlbum, Label: "Album (6+ songs)", Price: usd(300), PerSong: true, Description: "Per song rate"},
	))

	c.SetTable(NewRateTable(types.ServiceMastering,
		Rate{Key: types.SizeSingle, Label: "Single Song", Price: usd(100), Description: "One song master"},
		Rate{Key: types.SizeEPAlbum, Label: "EP/Album (3+ songs)", Price: usd(75), PerSong: true, Description: "Per song rate"},
		Rate{Key: types.SizeStemMastering, Label: "Stem Mastering", Price: usd(125), PerSong: true, Description: "Per song with stems"},
	))

	c.SetTable(NewRateTable(types.ServiceBundle,
		Rate{Key: types.SizeSingle, Label: "Single Song", Price: usd(400), Description: "One song - Mix + Master"},
		Rate{Key: types.SizeEP, Label: "EP (3-5 songs)", Price: usd(350), PerSong: true, Description: "Per song - Mix + Master"},
		Rate{Key: types.SizeAlbum, Label: "Album (6+ songs)", Price: usd(300), PerSong: true, Description: "Per song - Mix + Master"},
	))

	for _, a := range []AddOn{
		{Key: types.AddOnInstrumental, Label: "Instrumental Version", Price: usd(15), PerSong: true, Description: "Mix without vocals"},
		{Key: types.AddOnTVTrack, Label: "TV Track", Price: usd(15), PerSong: true, Description: "Mix without lead vocal"},
		{Key: types.AddOnRush24, Label: "24 Hour Rush", Price: usd(50), Description: "Priority 24-hour turnaround"},
		{Key: types.AddOnRush48, Label: "48 Hour Rush", Price: usd(25), Description: "Priority 48-hour turnaround"},
		{Key: types.AddOnStems, Label: "Stems Export", Price: usd(50), Description: "Individual processed stems"},
		{Key: types.AddOnDDP, Label: "DDP Authoring", Price: usd(50), Description: "Master DDP for duplication"},
	} {
		c.PutAddOn(a)
	}

	return c
}
