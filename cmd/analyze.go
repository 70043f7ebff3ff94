package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/recuperacredito/recupera-go/internal/aggregation"
	"github.com/recuperacredito/recupera-go/internal/concentration"
	"github.com/recuperacredito/recupera-go/internal/dataset"
	"github.com/recuperacredito/recupera-go/internal/logger"
	"github.com/recuperacredito/recupera-go/internal/output"
	"github.com/recuperacredito/recupera-go/internal/scoring"
)

// AnalyzeCmd returns the analyze command.
func AnalyzeCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.Float64Flag{
			Name:  "recoverable-threshold",
			Usage: "Probability at or above which a customer counts as recoverable",
		},
	)

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Score a customer portfolio and aggregate debt by band",
		ArgsUsage: "[csv path]",
		Flags:     flags,
		Action:    analyzeAction,
	}
}

func analyzeAction(c *cli.Context) error {
	// Load configuration
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// Override config from CLI flags
	if c.IsSet("recoverable-threshold") {
		cfg.Scoring.Thresholds.Recoverable = c.Float64("recoverable-threshold")
	}

	pattern := c.String("input")
	if pattern == "" && c.NArg() > 0 {
		pattern = c.Args().Get(0)
	}

	comma, err := parseDelimiterFlag(c.String("delimiter"))
	if err != nil {
		return err
	}

	reader := dataset.NewCSVReader(dataset.ReadOptions{
		Pattern: pattern,
		Columns: cfg.Columns,
		Comma:   comma,
	})

	// Read the portfolio, falling back to the built-in sample when the
	// source cannot be reached
	table, err := reader.ReadTable(context.Background())
	sampleData := false
	if errors.Is(err, dataset.ErrSourceUnavailable) {
		logger.Warn("source unavailable, using built-in sample data", "pattern", pattern)
		table = dataset.SampleTable()
		sampleData = true
	} else if err != nil {
		return fmt.Errorf("failed to read portfolio: %w", err)
	}

	if err := dataset.Validate(table); err != nil {
		return err
	}

	// The delay normalizer comes from the full dataset, so score first
	// and filter after
	explain := c.Bool("explain")
	scorer := scoring.NewScorer(cfg.Scoring)
	scores := scorer.Score(table, explain)

	domain, hasDomain := scoring.ScoreDomain(table)
	report := &output.PortfolioReport{
		SourcePath:  pattern,
		GeneratedAt: time.Now(),
		SampleData:  sampleData,
	}
	if sampleData {
		report.SourcePath = "built-in sample"
	}
	if hasDomain {
		report.Domain = &domain
	}

	if c.IsSet("min-score") || c.IsSet("max-score") {
		low, high := domain.Min, domain.Max
		if c.IsSet("min-score") {
			low = c.Float64("min-score")
		}
		if c.IsSet("max-score") {
			high = c.Float64("max-score")
		}
		if low > high {
			return fmt.Errorf("min-score %v exceeds max-score %v", low, high)
		}
		scores = scoring.FilterByRange(scores, low, high)
		report.ScoreFilter = &scoring.MinMax{Min: low, Max: high}
	}

	bands, err := aggregation.NewBandSet(cfg.Bands)
	if err != nil {
		return err
	}
	bands.Attach(scores)

	debts := make([]float64, len(scores))
	for i, sc := range scores {
		debts[i] = sc.Customer.DebtAmount
	}

	report.Summary = aggregation.Summarize(scores)
	report.Bands = bands.AggregateDebt(scores)
	report.Histogram = aggregation.ScoreHistogram(scores, cfg.Histogram.Bins)
	report.Aging = aggregation.AgingBuckets(scores, cfg.Aging.EdgesDays)
	report.Concentration = concentration.DebtEntropy(debts)
	report.Items = scoring.Rank(scores)

	return writePortfolioReport(c, report)
}
