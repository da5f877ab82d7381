package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hei-calculator/domain"
)

type settleOptions struct {
	terms termFlags
	year  int
}

func NewSettleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &settleOptions{}

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Quote the settlement for an exit in a given year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(rootOpts, opts, cmd)
		},
	}

	opts.terms.register(cmd)
	cmd.Flags().IntVar(&opts.year, "year", domain.DefaultHorizonYears, "exit year")

	return cmd
}

func runSettle(rootOpts *RootOptions, opts *settleOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	terms, _, exitErr := opts.terms.resolve(cmd, rootOpts.Config.Projection.DefaultHorizonYears)
	if exitErr != nil {
		return formatter.Fail(exitErr)
	}

	svc := rootOpts.buildServices(cmd.Context())
	defer svc.close()

	quote, err := svc.settlement.Quote(cmd.Context(), domain.SettlementInput{Terms: terms, ExitYear: opts.year})
	if err != nil {
		return formatter.Fail(classify("settlement quote failed", err))
	}

	return formatter.Success(quote, func(w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"Exit year:             %d\nHome value:            %.2f\nSettlement:            %.2f (%s)\n"+
				"Homeowner equity:      %.2f\nMultiple on premium:   %.2fx\nEffective annual cost: %.2f%%\n\n%s\n",
			quote.ExitYear, quote.HomeValue, quote.SettlementValue, quote.Controlling,
			quote.HomeownerEquity, quote.PremiumMultiple, quote.EffectiveAnnualCost*100, quote.Explanation)
		return err
	})
}
