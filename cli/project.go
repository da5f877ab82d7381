package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hei-calculator/domain"
	"hei-calculator/input"
	"hei-calculator/report"
)

// termFlags are the raw contract terms accepted by every command that
// projects a contract.
type termFlags struct {
	termsFile         string
	homeValue         string
	appreciationRate  string
	premiumPercentage string
	heiMultiplier     string
	investorCapRate   string
	horizon           int
}

func (f *termFlags) register(cmd *cobra.Command) {
	defaults := input.DefaultRawTerms()
	flags := cmd.Flags()
	flags.StringVar(&f.termsFile, "terms", "", "YAML file with contract terms")
	flags.StringVar(&f.homeValue, "home-value", defaults.HomeValue, "current home value, e.g. $1,000,000 or 750k")
	flags.StringVar(&f.appreciationRate, "appreciation-rate", defaults.AppreciationRate, "annual home appreciation, e.g. 2%")
	flags.StringVar(&f.premiumPercentage, "premium", defaults.PremiumPercentage, "premium as a share of home value, e.g. 20%")
	flags.StringVar(&f.heiMultiplier, "multiplier", defaults.HEIMultiplier, "HEI multiplier, e.g. 2.0x")
	flags.StringVar(&f.investorCapRate, "cap-rate", defaults.InvestorCapRate, "annual investor cap rate, e.g. 20%")
	flags.IntVar(&f.horizon, "horizon", 0, "projection horizon in years (default from the terms file or config)")
}

// resolve merges the terms file with flags that were set explicitly.
// Flags win over the file.
func (f *termFlags) resolve(cmd *cobra.Command, defaultHorizon int) (domain.ContractTerms, int, *ExitError) {
	raw := input.DefaultRawTerms()
	if f.termsFile != "" {
		loaded, err := input.LoadTermsFile(f.termsFile)
		if err != nil {
			return domain.ContractTerms{}, 0, WrapExitError(ExitCommandError, "failed to load terms", err)
		}
		raw = loaded
	}

	overrides := map[string]struct {
		dst *string
		val string
	}{
		"home-value":        {&raw.HomeValue, f.homeValue},
		"appreciation-rate": {&raw.AppreciationRate, f.appreciationRate},
		"premium":           {&raw.PremiumPercentage, f.premiumPercentage},
		"multiplier":        {&raw.HEIMultiplier, f.heiMultiplier},
		"cap-rate":          {&raw.InvestorCapRate, f.investorCapRate},
	}
	for name, o := range overrides {
		if cmd.Flags().Changed(name) {
			*o.dst = o.val
		}
	}

	terms, err := raw.Parse()
	if err != nil {
		return domain.ContractTerms{}, 0, classify("invalid terms", err)
	}

	if cmd.Flags().Changed("horizon") {
		return terms, f.horizon, nil
	}
	horizon, err := raw.Horizon(defaultHorizon)
	if err != nil {
		return domain.ContractTerms{}, 0, classify("invalid terms", err)
	}
	return terms, horizon, nil
}

type projectOptions struct {
	terms   termFlags
	output  string
	pdfPath string
	mailTo  string
	explain bool
}

// ProjectionResult is the JSON payload of the project command.
type ProjectionResult struct {
	domain.Projection
	CrossoverYear int    `json:"crossover_year"`
	Narrative     string `json:"narrative,omitempty"`
	PDFPath       string `json:"pdf_path,omitempty"`
	MailedTo      string `json:"mailed_to,omitempty"`
}

func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a contract year by year",
		Long: `Project home value, HEI Cap, contract value and settlement for every year
from 0 to the horizon. In table output a "*" follows the controlling value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(rootOpts, opts, cmd)
		},
	}

	opts.terms.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "text output style (table|csv|xml)")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "also write a PDF report to this path")
	cmd.Flags().StringVar(&opts.mailTo, "mail-to", "", "e-mail the PDF report to this address")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "add a plain-language summary")

	return cmd
}

func runProject(rootOpts *RootOptions, opts *projectOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	var render func(io.Writer, domain.Projection) error
	switch opts.output {
	case "table":
		render = report.WriteTable
	case "csv":
		render = report.WriteCSV
	case "xml":
		render = report.WriteXML
	default:
		return formatter.Fail(WrapExitError(ExitInvalidInput,
			fmt.Sprintf("invalid output %q: must be table, csv or xml", opts.output), nil))
	}

	terms, horizon, exitErr := opts.terms.resolve(cmd, rootOpts.Config.Projection.DefaultHorizonYears)
	if exitErr != nil {
		return formatter.Fail(exitErr)
	}

	ctx := cmd.Context()
	svc := rootOpts.buildServices(ctx)
	defer svc.close()

	projection, err := svc.projection.Project(ctx, terms, horizon)
	if err != nil {
		return formatter.Fail(classify("projection failed", err))
	}
	formatter.VerboseLog("Projected %d years, crossover year %d", projection.HorizonYears, projection.CrossoverYear())

	result := ProjectionResult{
		Projection:    projection,
		CrossoverYear: projection.CrossoverYear(),
	}
	if opts.explain {
		result.Narrative = svc.narrative.ExplainProjection(ctx, projection)
	}

	if opts.pdfPath != "" || opts.mailTo != "" {
		pdf, err := report.RenderPDF(projection, report.PDFOptions{Narrative: result.Narrative})
		if err != nil {
			return formatter.Fail(WrapExitError(ExitCommandError, "failed to render pdf", err))
		}
		if opts.pdfPath != "" {
			if err := os.WriteFile(opts.pdfPath, pdf, 0o644); err != nil {
				return formatter.Fail(WrapExitError(ExitCommandError, "failed to write pdf", err))
			}
			result.PDFPath = opts.pdfPath
			formatter.VerboseLog("PDF report written to %s", opts.pdfPath)
		}
		if opts.mailTo != "" {
			mailer := report.NewMailer(rootOpts.Config.Mail, rootOpts.Log)
			if err := mailer.Send(opts.mailTo, projection, pdf); err != nil {
				return formatter.Fail(WrapExitError(ExitCommandError, "failed to mail report", err))
			}
			result.MailedTo = opts.mailTo
		}
	}

	return formatter.Success(result, func(w io.Writer) error {
		if err := render(w, projection); err != nil {
			return err
		}
		if result.Narrative != "" {
			_, err := fmt.Fprintf(w, "\n%s\n", result.Narrative)
			return err
		}
		return nil
	})
}
