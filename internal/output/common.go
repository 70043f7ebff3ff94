package output

import (
	"fmt"
	"io"
	"os"

	"github.com/recuperacredito/recupera-go/internal/scoring"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func formatScoreRange(r *scoring.MinMax) string {
	if r == nil {
		return "all"
	}
	return fmt.Sprintf("%.0f to %.0f", r.Min, r.Max)
}

func formatMeanDebt(mean *float64) string {
	if mean == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *mean)
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
