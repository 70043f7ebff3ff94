package aggregation

import "github.com/recuperacredito/recupera-go/internal/scoring"

// HistogramBin is one bin of the credit score distribution.
// Bins span [Low, High); the last bin includes its upper edge.
type HistogramBin struct {
	Low   float64
	High  float64
	Count int
}

// ScoreHistogram bins the credit scores of the given rows into equal-width
// bins over the observed score range. Empty input yields nil; a
// single-valued range yields one bin holding every row.
func ScoreHistogram(scores []scoring.CustomerScore, bins int) []HistogramBin {
	if len(scores) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = 20
	}

	domain := scoring.MinMax{
		Min: scores[0].Customer.CreditScore,
		Max: scores[0].Customer.CreditScore,
	}
	for _, sc := range scores[1:] {
		if sc.Customer.CreditScore < domain.Min {
			domain.Min = sc.Customer.CreditScore
		}
		if sc.Customer.CreditScore > domain.Max {
			domain.Max = sc.Customer.CreditScore
		}
	}

	if domain.IsSingleValue() {
		return []HistogramBin{{Low: domain.Min, High: domain.Max, Count: len(scores)}}
	}

	width := domain.Range() / float64(bins)
	result := make([]HistogramBin, bins)
	for i := range result {
		result[i].Low = domain.Min + float64(i)*width
		result[i].High = domain.Min + float64(i+1)*width
	}
	result[bins-1].High = domain.Max

	for _, sc := range scores {
		idx := int((sc.Customer.CreditScore - domain.Min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}
