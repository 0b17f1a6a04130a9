package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studio-quote/core/estimator"
	"studio-quote/core/flow"
	"studio-quote/core/ui"
	"studio-quote/internal/logging"
)

// interactiveCmd runs the terminal estimator
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui"},
	Short:   "Build a quote interactively in the terminal",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		fl := flow.New()
		fl.OnChange(func(t flow.Transition) {
			logging.Debug("page", zap.Stringer("from", t.From), zap.Stringer("to", t.To))
		})
		return ui.Run(estimator.New(c, fl), fl)
	},
}
