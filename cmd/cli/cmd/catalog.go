package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"studio-quote/core/catalog"
)

// catalogCmd lists the rate card
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List rates and add-ons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, svc := range c.Services() {
			table, _ := c.Rates(svc)
			fmt.Fprintf(w, "%s\n", svc.DisplayName())
			for _, r := range table.Rates() {
				sr := catalog.SongRangeFor(r.Key)
				fmt.Fprintf(w, "  %s\t%s\t%s\t%d-%d songs\n", r.Key, r.Label, price(c.Currency.FormatAmount(r.Price), r.PerSong), sr.Min, sr.Max)
			}
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w, "Add-ons")
		for _, a := range c.AddOns() {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", a.Key, a.Label, price(c.Currency.FormatAmount(a.Price), a.PerSong), a.Description)
		}
		return w.Flush()
	},
}

func price(amount string, perSong bool) string {
	s := amount
	if perSong {
		s += "/song"
	}
	return s
}
