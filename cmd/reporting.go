package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/recuperacredito/recupera-go/internal/output"
)

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Explain:    c.Bool("explain"),
	}
}

func writePortfolioReport(c *cli.Context, report *output.PortfolioReport) error {
	opts := OutputOptions(c)
	writer := output.NewPortfolioReportWriter(opts.Format)
	return writer.Write(report, opts)
}
