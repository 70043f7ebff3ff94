package aggregation

import (
	"github.com/recuperacredito/recupera-go/config"
	"github.com/recuperacredito/recupera-go/internal/scoring"
)

// Summary holds the headline KPIs of a (possibly filtered) table.
type Summary struct {
	Count            int
	MeanDebt         *float64 // nil when Count is zero: "no data", not zero debt
	TotalDebt        float64
	RecoverableCount int
}

// Summarize computes the KPI summary over the given rows. An empty input
// yields a zero count and an absent mean, never an error.
func Summarize(scores []scoring.CustomerScore) Summary {
	s := Summary{Count: len(scores)}

	for _, sc := range scores {
		s.TotalDebt += sc.Customer.DebtAmount
		if sc.Level == config.RecoveryLevelRecoverable {
			s.RecoverableCount++
		}
	}

	if s.Count > 0 {
		mean := s.TotalDebt / float64(s.Count)
		s.MeanDebt = &mean
	}
	return s
}
