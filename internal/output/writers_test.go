package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/recuperacredito/recupera-go/config"
	"github.com/recuperacredito/recupera-go/internal/aggregation"
	"github.com/recuperacredito/recupera-go/internal/dataset"
	"github.com/recuperacredito/recupera-go/internal/scoring"
)

func testReport() *PortfolioReport {
	mean := 6000.0
	return &PortfolioReport{
		SourcePath:  "portfolio.csv",
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Domain:      &scoring.MinMax{Min: 250, Max: 850},
		ScoreFilter: &scoring.MinMax{Min: 300, Max: 900},
		Summary: aggregation.Summary{
			Count:            3,
			MeanDebt:         &mean,
			TotalDebt:        18000,
			RecoverableCount: 1,
		},
		Bands: []aggregation.BandTotal{
			{Band: "Low", TotalDebt: 17000, Count: 2},
			{Band: "High", TotalDebt: 1000, Count: 1},
		},
		Histogram: []aggregation.HistogramBin{
			{Low: 300, High: 575, Count: 2},
			{Low: 575, High: 850, Count: 1},
		},
		Aging: aggregation.AgingBuckets(nil, []float64{30, 90}),
		Items: []scoring.CustomerScore{
			{
				Customer:    dataset.Customer{CreditScore: 850, DaysOverdue: 5, DebtAmount: 1000},
				Probability: 0.8217,
				Level:       config.RecoveryLevelRecoverable,
				Band:        "High",
				Breakdown:   &scoring.Breakdown{ScoreComponent: 0.85, DelayPenalty: 0.9667},
			},
			{
				Customer:    dataset.Customer{CreditScore: 400, DaysOverdue: 90, DebtAmount: 5000},
				Probability: 0.48,
				Level:       config.RecoveryLevelWatch,
				Band:        "Low",
			},
			{
				Customer:    dataset.Customer{CreditScore: 300, DaysOverdue: 150, DebtAmount: 12000},
				Probability: 0.0,
				Level:       config.RecoveryLevelLost,
				Band:        "Low",
			},
		},
	}
}

func TestJSONPortfolioWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	writer := &JSONPortfolioWriter{}

	err := writer.Write(testReport(), OutputOptions{Format: FormatJSON, OutputPath: path})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var report JSONPortfolioReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if report.Source != "portfolio.csv" {
		t.Errorf("source = %q", report.Source)
	}
	if report.Summary.Count != 3 {
		t.Errorf("summary count = %d, expected 3", report.Summary.Count)
	}
	if report.Summary.MeanDebt == nil || *report.Summary.MeanDebt != 6000 {
		t.Errorf("mean debt = %v, expected 6000", report.Summary.MeanDebt)
	}
	if len(report.Items) != 3 {
		t.Fatalf("items = %d, expected 3", len(report.Items))
	}
	if report.Items[0].Level != "recoverable" {
		t.Errorf("first item level = %q", report.Items[0].Level)
	}
	if report.Domain == nil || report.Domain.Max != 850 {
		t.Errorf("domain = %v, expected max 850", report.Domain)
	}
	if len(report.Aging) != 3 {
		t.Errorf("aging buckets = %d, expected 3", len(report.Aging))
	}
	if report.Aging[2].MaxDays != nil {
		t.Error("last aging bucket should have no max")
	}

	// Breakdown only appears with Explain
	if report.Items[0].Breakdown != nil {
		t.Error("breakdown present without explain")
	}
}

func TestJSONPortfolioWriter_Explain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	writer := &JSONPortfolioWriter{}

	err := writer.Write(testReport(), OutputOptions{Format: FormatJSON, OutputPath: path, Explain: true})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	var report JSONPortfolioReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if report.Items[0].Breakdown == nil {
		t.Fatal("expected breakdown for first item with explain")
	}
	if report.Items[0].Breakdown.ScoreComponent != 0.85 {
		t.Errorf("score component = %f", report.Items[0].Breakdown.ScoreComponent)
	}
	// Second item carries no breakdown even with explain
	if report.Items[1].Breakdown != nil {
		t.Error("unexpected breakdown for item without one")
	}
}

func TestJSONPortfolioWriter_EmptySummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := &PortfolioReport{
		SourcePath:  "empty.csv",
		GeneratedAt: time.Now(),
		Summary:     aggregation.Summary{},
	}

	writer := &JSONPortfolioWriter{}
	if err := writer.Write(report, OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "meanDebt") {
		t.Error("meanDebt should be omitted when there are no rows")
	}
}

func TestCSVPortfolioWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	writer := &CSVPortfolioWriter{}

	err := writer.Write(testReport(), OutputOptions{Format: FormatCSV, OutputPath: path})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("records = %d, expected header + 3 rows", len(records))
	}
	if records[0][0] != "CreditScore" {
		t.Errorf("header = %v", records[0])
	}
	if len(records[0]) != 6 {
		t.Errorf("header has %d columns, expected 6 without explain", len(records[0]))
	}
	if records[1][4] != "recoverable" {
		t.Errorf("first row level = %q", records[1][4])
	}
}

func TestCSVPortfolioWriter_TopLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	writer := &CSVPortfolioWriter{}

	err := writer.Write(testReport(), OutputOptions{OutputPath: path, Top: 1})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, expected header + 1 row", len(records))
	}
}

func TestMarkdownPortfolioWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	writer := &MarkdownPortfolioWriter{}

	err := writer.Write(testReport(), OutputOptions{Format: FormatMarkdown, OutputPath: path})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)

	for _, want := range []string{
		"# Credit Recovery Analysis Results",
		"## Summary",
		"## Debt by Score Band",
		"## Debt by Delinquency Age",
		"## Customers",
		"| Low | 17000.00 | 2 |",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestCIPortfolioWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.ndjson")
	writer := &CIPortfolioWriter{}

	err := writer.Write(testReport(), OutputOptions{Format: FormatCI, OutputPath: path})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if len(lines) != 4 {
		t.Fatalf("lines = %d, expected summary + 3 customers", len(lines))
	}

	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("summary line is not valid JSON: %v", err)
	}
	if summary.Type != "summary" {
		t.Errorf("first line type = %q", summary.Type)
	}
	if summary.TotalCustomers != 3 || summary.RecoverableCount != 1 || summary.WatchCount != 1 {
		t.Errorf("summary counts = %+v", summary)
	}
	if summary.MaxProbability != 0.8217 {
		t.Errorf("max probability = %f", summary.MaxProbability)
	}

	var entry CICustomerEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("customer line is not valid JSON: %v", err)
	}
	if entry.Type != "customer" || entry.CreditScore != 850 {
		t.Errorf("first customer entry = %+v", entry)
	}
}

func TestConsolePortfolioWriter_Write(t *testing.T) {
	// Console writes to stdout, only check the error path
	writer := &ConsolePortfolioWriter{}
	if err := writer.Write(testReport(), OutputOptions{Explain: true}); err != nil {
		t.Errorf("Write failed: %v", err)
	}
	if err := writer.Write(&PortfolioReport{SourcePath: "empty.csv"}, OutputOptions{}); err != nil {
		t.Errorf("Write of empty report failed: %v", err)
	}
}
