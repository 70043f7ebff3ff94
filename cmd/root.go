package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/recuperacredito/recupera-go/config"
	"github.com/recuperacredito/recupera-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "recupera",
		Usage:   "Credit recovery analysis for delinquent customer portfolios",
		Version: "1.0.0",
		Commands: []*cli.Command{
			AnalyzeCmd(),
			ValidateCmd(),
			ServeCmd(),
		},
		// The root command carries the analyze flags too, so the legacy
		// invocation `recupera portfolio.csv --format json` keeps working.
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		}, commonFlags()...),
		Action: legacyAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "CSV file path or glob pattern (matching files are merged)",
		},
		&cli.StringFlag{
			Name:  "delimiter",
			Usage: "CSV field delimiter",
			Value: ",",
		},
		&cli.StringSliceFlag{
			Name:  "column",
			Usage: "Extra accepted header spelling, e.g. credit_score=score (can be specified multiple times)",
		},
		&cli.Float64Flag{
			Name:  "min-score",
			Usage: "Keep only rows with credit score >= this value",
		},
		&cli.Float64Flag{
			Name:  "max-score",
			Usage: "Keep only rows with credit score <= this value",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of top customers to show",
			Value:   50,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "explain",
			Usage: "Show probability breakdown",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// parseDelimiterFlag parses the delimiter flag into a rune.
func parseDelimiterFlag(s string) (rune, error) {
	switch s {
	case "", ",":
		return ',', nil
	case "\\t", "tab":
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: expected a single character", s)
	}
	return runes[0], nil
}

// parseColumnFlags merges field=spelling pairs into the column config.
// The extra spelling takes priority over the built-in aliases.
func parseColumnFlags(pairs []string, cols config.ColumnConfig) (config.ColumnConfig, error) {
	for _, pair := range pairs {
		field, spelling, ok := strings.Cut(pair, "=")
		if !ok || field == "" || spelling == "" {
			return cols, fmt.Errorf("invalid column mapping %q: expected field=spelling", pair)
		}
		switch field {
		case "credit_score":
			cols.CreditScore = append([]string{spelling}, cols.CreditScore...)
		case "days_overdue":
			cols.DaysOverdue = append([]string{spelling}, cols.DaysOverdue...)
		case "debt_amount":
			cols.DebtAmount = append([]string{spelling}, cols.DebtAmount...)
		default:
			return cols, fmt.Errorf("unknown field %q in column mapping (expected credit_score, days_overdue or debt_amount)", field)
		}
	}
	return cols, nil
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply column overrides from CLI
	cols, err := parseColumnFlags(c.StringSlice("column"), cfg.Columns)
	if err != nil {
		return nil, err
	}
	cfg.Columns = cols

	return cfg, nil
}

// legacyAction handles the default (legacy) command behavior.
// When a CSV path is provided as an argument, it runs the analyze command.
func legacyAction(c *cli.Context) error {
	// If no args and no subcommand, show help
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	// Legacy mode: treat first arg as the input CSV and run analyze
	return analyzeAction(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
