package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studio-quote/core/estimator"
	"studio-quote/core/output"
	"studio-quote/core/types"
	"studio-quote/internal/config"
	"studio-quote/internal/logging"
)

var (
	quoteService string
	quoteSize    string
	quoteSongs   int
	quoteAddOns  []string
	quoteFormat  string
	quoteXLSX    string
)

// quoteCmd prices one selection
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a mixing or mastering project",
	Long: `Price a project the same way the pricing page does. Selections go through
the estimator, so an invalid size or add-on is rejected and song counts are
clamped to the range the size allows.

Examples:
  studio-quote quote --service mastering
  studio-quote quote --service mixing --size ep --songs 4
  studio-quote quote --service bundle --size album --songs 8 --addon stems --addon ddp --xlsx quote.xlsx`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteService, "service", "s", string(types.ServiceMastering), "service (mixing, mastering, bundle)")
	quoteCmd.Flags().StringVar(&quoteSize, "size", "", "project size (single, ep, album, epAlbum, stemMastering)")
	quoteCmd.Flags().IntVarP(&quoteSongs, "songs", "n", 0, "number of songs, clamped to the size's range (defaults to the size's default)")
	quoteCmd.Flags().StringArrayVarP(&quoteAddOns, "addon", "a", nil, "add-on to include (repeatable)")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "", "output format (cli, json, markdown)")
	quoteCmd.Flags().StringVar(&quoteXLSX, "xlsx", "", "also write the quote to an Excel workbook")
}

func runQuote(cmd *cobra.Command, args []string) error {
	log := logging.Named("quote")
	cfg := config.Get()

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	est := estimator.New(c, nil)
	if err := applySelection(est, cmd.Flags().Changed("songs")); err != nil {
		return err
	}
	q := est.Quote()

	format := quoteFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	registry := output.NewRegistry()
	registry.Register(output.NewCLIFormatter(cfg.Output.NoColor))
	f, err := registry.Get(format)
	if err != nil {
		return err
	}
	if err := f.Render(cmd.OutOrStdout(), q); err != nil {
		return err
	}

	if quoteXLSX != "" {
		if err := output.SaveWorkbook(quoteXLSX, q); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", quoteXLSX)
	}

	log.Debug("quote rendered",
		zap.String("service", q.Selection.Service.String()),
		zap.String("total", q.Total.String()),
		zap.String("format", format),
	)
	return nil
}

// applySelection drives est from the flags. An explicit --songs is always
// clamped into the size's range, including zero and negative values.
func applySelection(est *estimator.Estimator, songsSet bool) error {
	service, err := types.ParseServiceType(quoteService)
	if err != nil {
		return err
	}
	if err := est.SetServiceType(service); err != nil {
		return err
	}

	if quoteSize != "" {
		size, err := types.ParseProjectSize(quoteSize)
		if err != nil {
			return err
		}
		if err := est.SetProjectSize(size); err != nil {
			return err
		}
	}

	if songsSet {
		if got := est.SetSongCount(quoteSongs); got != quoteSongs {
			logging.Warn("song count clamped", zap.Int("requested", quoteSongs), zap.Int("used", got))
		}
	}

	for _, a := range quoteAddOns {
		key, err := types.ParseAddOnKey(a)
		if err != nil {
			return err
		}
		if est.Selection().AddOns.Has(key) {
			continue
		}
		if _, err := est.ToggleAddOn(key); err != nil {
			return err
		}
	}
	return nil
}
