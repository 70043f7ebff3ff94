package output

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"
)

// JSONPortfolioWriter writes portfolio reports as JSON.
type JSONPortfolioWriter struct{}

// JSONPortfolioReport is the JSON output structure for a portfolio analysis.
type JSONPortfolioReport struct {
	Source        string              `json:"source"`
	GeneratedAt   string              `json:"generatedAt"`
	SampleData    bool                `json:"sampleData,omitempty"`
	Domain        *JSONScoreRange     `json:"domain,omitempty"`
	ScoreFilter   *JSONScoreRange     `json:"scoreFilter,omitempty"`
	Summary       JSONSummary         `json:"summary"`
	Bands         []JSONBandTotal     `json:"bands"`
	Histogram     []JSONHistogramBin  `json:"histogram,omitempty"`
	Aging         []JSONAgingBucket   `json:"aging,omitempty"`
	Concentration float64             `json:"debtConcentration"`
	Items         []JSONPortfolioItem `json:"items"`
}

// JSONScoreRange is an inclusive credit score range.
type JSONScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// JSONSummary holds the headline KPIs in JSON format.
type JSONSummary struct {
	Count            int      `json:"count"`
	MeanDebt         *float64 `json:"meanDebt,omitempty"`
	TotalDebt        float64  `json:"totalDebt"`
	RecoverableCount int      `json:"recoverableCount"`
}

// JSONBandTotal is the JSON output structure for a score band aggregate.
type JSONBandTotal struct {
	Band      string  `json:"band"`
	TotalDebt float64 `json:"totalDebt"`
	Count     int     `json:"count"`
}

// JSONHistogramBin is the JSON output structure for a histogram bin.
type JSONHistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// JSONAgingBucket is the JSON output structure for a delinquency age bucket.
type JSONAgingBucket struct {
	Label     string   `json:"label"`
	MinDays   float64  `json:"minDays"`
	MaxDays   *float64 `json:"maxDays,omitempty"` // absent for the open-ended bucket
	TotalDebt float64  `json:"totalDebt"`
	Count     int      `json:"count"`
}

// JSONPortfolioItem is the JSON output structure for a single customer.
type JSONPortfolioItem struct {
	CreditScore float64        `json:"creditScore"`
	DaysOverdue float64        `json:"daysOverdue"`
	DebtAmount  float64        `json:"debtAmount"`
	Probability float64        `json:"probability"`
	Level       string         `json:"level"`
	Band        string         `json:"band,omitempty"`
	Breakdown   *JSONBreakdown `json:"breakdown,omitempty"`
}

// JSONBreakdown holds the probability breakdown in JSON format.
type JSONBreakdown struct {
	ScoreComponent float64 `json:"scoreComponent"`
	DelayPenalty   float64 `json:"delayPenalty"`
}

// Write outputs the portfolio report as JSON.
func (w *JSONPortfolioWriter) Write(report *PortfolioReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	jsonItems := make([]JSONPortfolioItem, len(items))
	for i, item := range items {
		jsonItem := JSONPortfolioItem{
			CreditScore: item.Customer.CreditScore,
			DaysOverdue: item.Customer.DaysOverdue,
			DebtAmount:  item.Customer.DebtAmount,
			Probability: item.Probability,
			Level:       string(item.Level),
			Band:        item.Band,
		}
		if options.Explain && item.Breakdown != nil {
			jsonItem.Breakdown = &JSONBreakdown{
				ScoreComponent: item.Breakdown.ScoreComponent,
				DelayPenalty:   item.Breakdown.DelayPenalty,
			}
		}
		jsonItems[i] = jsonItem
	}

	jsonBands := make([]JSONBandTotal, len(report.Bands))
	for i, b := range report.Bands {
		jsonBands[i] = JSONBandTotal{Band: b.Band, TotalDebt: b.TotalDebt, Count: b.Count}
	}

	jsonHistogram := make([]JSONHistogramBin, len(report.Histogram))
	for i, b := range report.Histogram {
		jsonHistogram[i] = JSONHistogramBin{Low: b.Low, High: b.High, Count: b.Count}
	}

	jsonAging := make([]JSONAgingBucket, len(report.Aging))
	for i, b := range report.Aging {
		bucket := JSONAgingBucket{
			Label:     b.Label,
			MinDays:   b.MinDays,
			TotalDebt: b.TotalDebt,
			Count:     b.Count,
		}
		if !math.IsInf(b.MaxDays, 1) {
			max := b.MaxDays
			bucket.MaxDays = &max
		}
		jsonAging[i] = bucket
	}

	jsonReport := JSONPortfolioReport{
		Source:      report.SourcePath,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		SampleData:  report.SampleData,
		Summary: JSONSummary{
			Count:            report.Summary.Count,
			MeanDebt:         report.Summary.MeanDebt,
			TotalDebt:        report.Summary.TotalDebt,
			RecoverableCount: report.Summary.RecoverableCount,
		},
		Bands:         jsonBands,
		Histogram:     jsonHistogram,
		Aging:         jsonAging,
		Concentration: report.Concentration,
		Items:         jsonItems,
	}
	if report.Domain != nil {
		jsonReport.Domain = &JSONScoreRange{Min: report.Domain.Min, Max: report.Domain.Max}
	}
	if report.ScoreFilter != nil {
		jsonReport.ScoreFilter = &JSONScoreRange{Min: report.ScoreFilter.Min, Max: report.ScoreFilter.Max}
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
