package output

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/recuperacredito/recupera-go/config"
)

// ConsolePortfolioWriter writes portfolio reports to the console.
type ConsolePortfolioWriter struct{}

const bandBarWidth = 30

// Write outputs the portfolio report to the console.
func (w *ConsolePortfolioWriter) Write(report *PortfolioReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	color.Green("Credit Recovery Analysis Results")
	fmt.Printf("Source: %s\n", report.SourcePath)
	if report.SampleData {
		color.Yellow("Warning: source unavailable, showing built-in sample data")
	}
	if report.Domain != nil {
		fmt.Printf("Score domain: %.0f to %.0f\n", report.Domain.Min, report.Domain.Max)
	}
	fmt.Printf("Score filter: %s\n", formatScoreRange(report.ScoreFilter))
	fmt.Println()

	fmt.Printf("Customers: %d\n", report.Summary.Count)
	fmt.Printf("Total debt: %.2f\n", report.Summary.TotalDebt)
	fmt.Printf("Mean debt: %s\n", formatMeanDebt(report.Summary.MeanDebt))
	fmt.Printf("Recoverable customers: %d\n", report.Summary.RecoverableCount)
	fmt.Printf("Debt concentration: %.2f\n\n", report.Concentration)

	if len(report.Bands) > 0 {
		color.Green("Debt by Score Band")
		maxDebt := 0.0
		for _, b := range report.Bands {
			if b.TotalDebt > maxDebt {
				maxDebt = b.TotalDebt
			}
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, b := range report.Bands {
			fmt.Fprintf(tw, "%s\t%.2f\t%d\t%s\n", b.Band, b.TotalDebt, b.Count, bandBar(b.TotalDebt, maxDebt))
		}
		tw.Flush()
		fmt.Println()
	}

	if len(report.Aging) > 0 {
		color.Green("Debt by Delinquency Age")
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, b := range report.Aging {
			fmt.Fprintf(tw, "%s\t%.2f\t%d\n", b.Label, b.TotalDebt, b.Count)
		}
		tw.Flush()
		fmt.Println()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	// Write header
	if options.Explain {
		fmt.Fprintln(tw, "#\tScore\tDays\tDebt\tProbability\tLevel\tBand\tSc\tDp")
	} else {
		fmt.Fprintln(tw, "#\tScore\tDays\tDebt\tProbability\tLevel\tBand")
	}

	// Write rows
	for i, item := range items {
		levelColor := getLevelColor(item.Level)
		if options.Explain && item.Breakdown != nil {
			fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t%.2f\t%.4f\t%s\t%s\t%.3f\t%.3f\n",
				i+1,
				item.Customer.CreditScore,
				item.Customer.DaysOverdue,
				item.Customer.DebtAmount,
				item.Probability,
				levelColor(string(item.Level)),
				item.Band,
				item.Breakdown.ScoreComponent,
				item.Breakdown.DelayPenalty,
			)
		} else {
			fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t%.2f\t%.4f\t%s\t%s\n",
				i+1,
				item.Customer.CreditScore,
				item.Customer.DaysOverdue,
				item.Customer.DebtAmount,
				item.Probability,
				levelColor(string(item.Level)),
				item.Band,
			)
		}
	}

	tw.Flush()

	if options.Explain {
		fmt.Println("\nProbability breakdown: Sc=Score component, Dp=Delay penalty")
	}

	return nil
}

// Helper functions

func bandBar(debt, maxDebt float64) string {
	if maxDebt <= 0 {
		return ""
	}
	n := int(debt / maxDebt * bandBarWidth)
	if n < 1 && debt > 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func getLevelColor(level config.RecoveryLevel) func(string, ...interface{}) string {
	switch level {
	case config.RecoveryLevelRecoverable:
		return color.GreenString
	case config.RecoveryLevelWatch:
		return color.YellowString
	default:
		return color.RedString
	}
}
