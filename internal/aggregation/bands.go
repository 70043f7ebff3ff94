package aggregation

import (
	"github.com/recuperacredito/recupera-go/config"
	"github.com/recuperacredito/recupera-go/internal/scoring"
)

// BandSet bins credit scores into labeled bands. Bins follow the
// right-closed convention: a score equal to an inner edge falls in the
// lower band. The first band additionally includes its left edge so the
// domain minimum is never lost.
type BandSet struct {
	edges  []float64
	labels []string
}

// NewBandSet builds a band set from configuration.
func NewBandSet(cfg config.BandConfig) (*BandSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	edges := make([]float64, len(cfg.Edges))
	copy(edges, cfg.Edges)
	labels := make([]string, len(cfg.Labels))
	copy(labels, cfg.Labels)
	return &BandSet{edges: edges, labels: labels}, nil
}

// Labels returns the band labels in definition order.
func (b *BandSet) Labels() []string {
	labels := make([]string, len(b.labels))
	copy(labels, b.labels)
	return labels
}

// Assign returns the band label for a score. ok is false for scores
// outside the outer edges; such rows are silently dropped from band
// aggregation but still count everywhere else.
func (b *BandSet) Assign(score float64) (string, bool) {
	if score < b.edges[0] || score > b.edges[len(b.edges)-1] {
		return "", false
	}
	if score <= b.edges[1] {
		return b.labels[0], true
	}
	for i := 2; i < len(b.edges); i++ {
		if score <= b.edges[i] {
			return b.labels[i-1], true
		}
	}
	return "", false
}

// Attach assigns each score its band label in place. Out-of-domain rows
// keep an empty band.
func (b *BandSet) Attach(scores []scoring.CustomerScore) {
	for i := range scores {
		if label, ok := b.Assign(scores[i].Customer.CreditScore); ok {
			scores[i].Band = label
		}
	}
}

// BandTotal is the aggregated debt of one observed band.
type BandTotal struct {
	Band      string
	TotalDebt float64
	Count     int
}

// AggregateDebt sums debt_amount grouped by band, in band definition
// order. Bands with no matching rows are omitted; only observed bands
// appear. Rows outside the band domain are excluded.
func (b *BandSet) AggregateDebt(scores []scoring.CustomerScore) []BandTotal {
	totals := make(map[string]*BandTotal, len(b.labels))

	for _, sc := range scores {
		label, ok := b.Assign(sc.Customer.CreditScore)
		if !ok {
			continue
		}
		bt, exists := totals[label]
		if !exists {
			bt = &BandTotal{Band: label}
			totals[label] = bt
		}
		bt.TotalDebt += sc.Customer.DebtAmount
		bt.Count++
	}

	result := make([]BandTotal, 0, len(totals))
	for _, label := range b.labels {
		if bt, ok := totals[label]; ok {
			result = append(result, *bt)
		}
	}
	return result
}
