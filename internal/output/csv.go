package output

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVPortfolioWriter writes portfolio reports as CSV.
type CSVPortfolioWriter struct{}

// Write outputs the portfolio report as CSV, one row per customer.
func (w *CSVPortfolioWriter) Write(report *PortfolioReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	headers := []string{"CreditScore", "DaysOverdue", "DebtAmount", "Probability", "Level", "Band"}
	if options.Explain {
		headers = append(headers, "ScoreComponent", "DelayPenalty")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write data
	for _, item := range items {
		row := []string{
			fmt.Sprintf("%.2f", item.Customer.CreditScore),
			fmt.Sprintf("%.2f", item.Customer.DaysOverdue),
			fmt.Sprintf("%.2f", item.Customer.DebtAmount),
			fmt.Sprintf("%.6f", item.Probability),
			string(item.Level),
			item.Band,
		}
		if options.Explain && item.Breakdown != nil {
			row = append(row,
				fmt.Sprintf("%.6f", item.Breakdown.ScoreComponent),
				fmt.Sprintf("%.6f", item.Breakdown.DelayPenalty),
			)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
