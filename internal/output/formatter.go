package output

import (
	"time"

	"github.com/recuperacredito/recupera-go/internal/aggregation"
	"github.com/recuperacredito/recupera-go/internal/scoring"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement the report interface.
var (
	_ PortfolioReportWriter = (*ConsolePortfolioWriter)(nil)
	_ PortfolioReportWriter = (*JSONPortfolioWriter)(nil)
	_ PortfolioReportWriter = (*CSVPortfolioWriter)(nil)
	_ PortfolioReportWriter = (*MarkdownPortfolioWriter)(nil)
	_ PortfolioReportWriter = (*CIPortfolioWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	Explain    bool
}

// PortfolioReport holds the results of a portfolio recovery analysis.
type PortfolioReport struct {
	SourcePath    string
	GeneratedAt   time.Time
	SampleData    bool          // built-in sample served after a source failure
	Domain        *scoring.MinMax // observed credit score range of the full dataset
	ScoreFilter   *scoring.MinMax // applied score filter, nil when unfiltered
	Summary       aggregation.Summary
	Bands         []aggregation.BandTotal
	Histogram     []aggregation.HistogramBin
	Aging         []aggregation.AgingBucket
	Concentration float64
	Items         []scoring.CustomerScore
}

// PortfolioReportWriter writes portfolio analysis reports.
type PortfolioReportWriter interface {
	Write(report *PortfolioReport, options OutputOptions) error
}

// NewPortfolioReportWriter creates a report writer for the specified format.
func NewPortfolioReportWriter(format OutputFormat) PortfolioReportWriter {
	switch format {
	case FormatJSON:
		return &JSONPortfolioWriter{}
	case FormatCSV:
		return &CSVPortfolioWriter{}
	case FormatMarkdown:
		return &MarkdownPortfolioWriter{}
	case FormatCI:
		return &CIPortfolioWriter{}
	default:
		return &ConsolePortfolioWriter{}
	}
}
