package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/recuperacredito/recupera-go/config"
)

// CIPortfolioWriter writes portfolio reports as NDJSON (one JSON object per line) for CI pipelines.
type CIPortfolioWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type             string   `json:"type"`
	TotalCustomers   int      `json:"totalCustomers"`
	RecoverableCount int      `json:"recoverableCount"`
	WatchCount       int      `json:"watchCount"`
	TotalDebt        float64  `json:"totalDebt"`
	MeanDebt         *float64 `json:"meanDebt,omitempty"`
	MaxProbability   float64  `json:"maxProbability"`
}

// CICustomerEntry represents a single customer entry in CI output.
type CICustomerEntry struct {
	Type        string  `json:"type"`
	CreditScore float64 `json:"creditScore"`
	DaysOverdue float64 `json:"daysOverdue"`
	DebtAmount  float64 `json:"debtAmount"`
	Probability float64 `json:"probability"`
	Level       string  `json:"level"`
	Band        string  `json:"band,omitempty"`
}

// Write outputs the portfolio report as NDJSON.
func (w *CIPortfolioWriter) Write(report *PortfolioReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Count recovery levels over the emitted rows
	var recoverableCount, watchCount int
	var maxProbability float64
	for _, item := range items {
		switch item.Level {
		case config.RecoveryLevelRecoverable:
			recoverableCount++
		case config.RecoveryLevelWatch:
			watchCount++
		}
		if item.Probability > maxProbability {
			maxProbability = item.Probability
		}
	}

	// Write summary line
	summary := CISummary{
		Type:             "summary",
		TotalCustomers:   len(items),
		RecoverableCount: recoverableCount,
		WatchCount:       watchCount,
		TotalDebt:        report.Summary.TotalDebt,
		MeanDebt:         report.Summary.MeanDebt,
		MaxProbability:   maxProbability,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	// Write customer entries
	for _, item := range items {
		entry := CICustomerEntry{
			Type:        "customer",
			CreditScore: item.Customer.CreditScore,
			DaysOverdue: item.Customer.DaysOverdue,
			DebtAmount:  item.Customer.DebtAmount,
			Probability: item.Probability,
			Level:       string(item.Level),
			Band:        item.Band,
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
