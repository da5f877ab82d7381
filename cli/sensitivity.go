package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hei-calculator/domain"
	"hei-calculator/input"
)

type sensitivityOptions struct {
	terms termFlags
	from  string
	to    string
	step  string
}

func NewSensitivityCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &sensitivityOptions{}

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep the appreciation rate and compare final settlements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSensitivity(rootOpts, opts, cmd)
		},
	}

	opts.terms.register(cmd)
	cmd.Flags().StringVar(&opts.from, "from", "-2%", "lowest appreciation rate")
	cmd.Flags().StringVar(&opts.to, "to", "6%", "highest appreciation rate")
	cmd.Flags().StringVar(&opts.step, "step", "1%", "rate increment")

	return cmd
}

func runSensitivity(rootOpts *RootOptions, opts *sensitivityOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	terms, horizon, exitErr := opts.terms.resolve(cmd, rootOpts.Config.Projection.DefaultHorizonYears)
	if exitErr != nil {
		return formatter.Fail(exitErr)
	}

	sweep := domain.SensitivityInput{Terms: terms, HorizonYears: horizon}
	rates := []struct {
		field string
		raw   string
		dst   *float64
	}{
		{"from", opts.from, &sweep.FromRate},
		{"to", opts.to, &sweep.ToRate},
		{"step", opts.step, &sweep.Step},
	}
	for _, r := range rates {
		v, err := input.ParsePercent(r.raw)
		if err != nil {
			return formatter.Fail(classify("invalid sweep", &input.FieldError{Field: r.field, Value: r.raw, Err: err}))
		}
		*r.dst = v
	}

	svc := rootOpts.buildServices(cmd.Context())
	defer svc.close()

	result, err := svc.sensitivity.Sweep(cmd.Context(), sweep)
	if err != nil {
		return formatter.Fail(classify("sensitivity sweep failed", err))
	}

	return formatter.Success(result, func(w io.Writer) error {
		return writeSensitivityTable(w, result)
	})
}

func writeSensitivityTable(w io.Writer, result domain.SensitivityResult) error {
	if _, err := fmt.Fprintf(w, "Final values after %d years\n\n%12s  %18s  %18s  %11s  %9s\n",
		result.HorizonYears, "Appreciation", "Home Value", "Settlement", "Controlling", "Crossover"); err != nil {
		return err
	}
	for _, p := range result.Points {
		crossover := "-"
		if p.CrossoverYear >= 0 {
			crossover = fmt.Sprintf("%d", p.CrossoverYear)
		}
		if _, err := fmt.Fprintf(w, "%11.2f%%  %18.2f  %18.2f  %11s  %9s\n",
			p.AppreciationRate*100, p.FinalHomeValue, p.FinalSettlement, p.Controlling, crossover); err != nil {
			return err
		}
	}
	return nil
}
