package scoring

import (
	"sort"

	"github.com/recuperacredito/recupera-go/config"
	"github.com/recuperacredito/recupera-go/internal/dataset"
)

// CustomerScore is a customer with its derived recovery probability.
type CustomerScore struct {
	Customer    dataset.Customer
	Probability float64
	Level       config.RecoveryLevel
	Band        string // assigned by band aggregation; empty outside the band domain
	Breakdown   *Breakdown
}

// Breakdown shows the two factors of the recovery formula.
type Breakdown struct {
	ScoreComponent float64 // credit_score / divisor
	DelayPenalty   float64 // 1 - days_overdue / max_days
}

// MaxDaysOverdue returns the maximum days_overdue observed in the table.
// A zero maximum (everyone current) and an empty table both yield 1 so the
// recovery formula never divides by zero or inflates degenerate datasets.
func MaxDaysOverdue(t *dataset.Table) float64 {
	if t.Len() == 0 {
		return 1
	}
	max := t.Customers[0].DaysOverdue
	for _, c := range t.Customers[1:] {
		if c.DaysOverdue > max {
			max = c.DaysOverdue
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// Scorer derives recovery probabilities for customer tables.
type Scorer struct {
	options config.ScoringConfig
}

// NewScorer creates a scorer with the given options.
func NewScorer(options config.ScoringConfig) *Scorer {
	return &Scorer{options: options}
}

// Score computes the recovery probability for every row, in input order.
// The normalizing maximum of days_overdue always comes from the full table
// passed here, so score the complete dataset before applying range filters.
// The input table is never modified.
func (s *Scorer) Score(t *dataset.Table, explain bool) []CustomerScore {
	maxDays := MaxDaysOverdue(t)

	scores := make([]CustomerScore, 0, t.Len())
	for _, c := range t.Customers {
		scores = append(scores, s.scoreOne(c, maxDays, explain))
	}
	return scores
}

func (s *Scorer) scoreOne(c dataset.Customer, maxDays float64, explain bool) CustomerScore {
	scoreComponent := c.CreditScore / s.options.ScoreDivisor
	delayPenalty := 1 - c.DaysOverdue/maxDays

	// Out-of-domain inputs still produce a clamped result, never an error.
	probability := Clamp01(scoreComponent * delayPenalty)

	score := CustomerScore{
		Customer:    c,
		Probability: probability,
		Level:       s.options.Thresholds.Classify(probability),
	}
	if explain {
		score.Breakdown = &Breakdown{
			ScoreComponent: scoreComponent,
			DelayPenalty:   delayPenalty,
		}
	}
	return score
}

// Rank returns a copy sorted by probability descending. Ties keep their
// input order.
func Rank(scores []CustomerScore) []CustomerScore {
	ranked := make([]CustomerScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	return ranked
}

// FilterByRange returns the scores whose credit score falls within
// [low, high], both ends inclusive, preserving input order. An empty
// result is valid, not an error.
func FilterByRange(scores []CustomerScore, low, high float64) []CustomerScore {
	filtered := make([]CustomerScore, 0, len(scores))
	for _, sc := range scores {
		if sc.Customer.CreditScore >= low && sc.Customer.CreditScore <= high {
			filtered = append(filtered, sc)
		}
	}
	return filtered
}

// ScoreDomain returns the observed credit score range of the table, which
// bounds the UI's range control. ok is false for an empty table.
func ScoreDomain(t *dataset.Table) (MinMax, bool) {
	if t.Len() == 0 {
		return MinMax{}, false
	}
	domain := MinMax{Min: t.Customers[0].CreditScore, Max: t.Customers[0].CreditScore}
	for _, c := range t.Customers[1:] {
		if c.CreditScore < domain.Min {
			domain.Min = c.CreditScore
		}
		if c.CreditScore > domain.Max {
			domain.Max = c.CreditScore
		}
	}
	return domain, true
}
