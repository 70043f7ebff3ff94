package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/recuperacredito/recupera-go/config"
)

// MarkdownPortfolioWriter writes portfolio reports as Markdown.
type MarkdownPortfolioWriter struct{}

// Write outputs the portfolio report as Markdown.
func (w *MarkdownPortfolioWriter) Write(report *PortfolioReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Credit Recovery Analysis Results")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Source:** %s\n\n", escapeMarkdown(report.SourcePath))
	if report.SampleData {
		fmt.Fprintln(out, "> Source unavailable, showing built-in sample data.")
		fmt.Fprintln(out)
	}
	if report.Domain != nil {
		fmt.Fprintf(out, "**Score Domain:** %.0f to %.0f\n\n", report.Domain.Min, report.Domain.Max)
	}
	fmt.Fprintf(out, "**Score Filter:** %s\n\n", formatScoreRange(report.ScoreFilter))

	// KPI summary
	fmt.Fprintln(out, "## Summary")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Customers | Total Debt | Mean Debt | Recoverable | Concentration |")
	fmt.Fprintln(out, "|-----------|------------|-----------|-------------|---------------|")
	fmt.Fprintf(out, "| %d | %.2f | %s | %d | %.2f |\n\n",
		report.Summary.Count, report.Summary.TotalDebt, formatMeanDebt(report.Summary.MeanDebt),
		report.Summary.RecoverableCount, report.Concentration)

	if len(report.Bands) > 0 {
		fmt.Fprintln(out, "## Debt by Score Band")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| Band | Total Debt | Customers |")
		fmt.Fprintln(out, "|------|------------|-----------|")
		for _, b := range report.Bands {
			fmt.Fprintf(out, "| %s | %.2f | %d |\n", b.Band, b.TotalDebt, b.Count)
		}
		fmt.Fprintln(out)
	}

	if len(report.Aging) > 0 {
		fmt.Fprintln(out, "## Debt by Delinquency Age")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| Bucket | Total Debt | Customers |")
		fmt.Fprintln(out, "|--------|------------|-----------|")
		for _, b := range report.Aging {
			fmt.Fprintf(out, "| %s | %.2f | %d |\n", b.Label, b.TotalDebt, b.Count)
		}
		fmt.Fprintln(out)
	}

	// Customer table
	fmt.Fprintln(out, "## Customers")
	fmt.Fprintln(out)
	if options.Explain {
		fmt.Fprintln(out, "| # | Score | Days | Debt | Probability | Level | Band | Sc | Dp |")
		fmt.Fprintln(out, "|---|-------|------|------|-------------|-------|------|----|----|")
	} else {
		fmt.Fprintln(out, "| # | Score | Days | Debt | Probability | Level | Band |")
		fmt.Fprintln(out, "|---|-------|------|------|-------------|-------|------|")
	}

	for i, item := range items {
		levelEmoji := getLevelEmoji(item.Level)
		if options.Explain && item.Breakdown != nil {
			fmt.Fprintf(out, "| %d | %.0f | %.0f | %.2f | %.4f | %s %s | %s | %.3f | %.3f |\n",
				i+1, item.Customer.CreditScore, item.Customer.DaysOverdue, item.Customer.DebtAmount,
				item.Probability, levelEmoji, item.Level, item.Band,
				item.Breakdown.ScoreComponent, item.Breakdown.DelayPenalty)
		} else {
			fmt.Fprintf(out, "| %d | %.0f | %.0f | %.2f | %.4f | %s %s | %s |\n",
				i+1, item.Customer.CreditScore, item.Customer.DaysOverdue, item.Customer.DebtAmount,
				item.Probability, levelEmoji, item.Level, item.Band)
		}
	}

	if options.Explain {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "**Probability Breakdown:** Sc=Score component, Dp=Delay penalty")
	}

	return nil
}

func createWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return file, file, nil
	}
	return os.Stdout, nil, nil
}

func getLevelEmoji(level config.RecoveryLevel) string {
	switch level {
	case config.RecoveryLevelRecoverable:
		return "🟢"
	case config.RecoveryLevelWatch:
		return "🟡"
	default:
		return "🔴"
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
