package aggregation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/recuperacredito/recupera-go/internal/scoring"
)

// AgingBucket aggregates debt by delinquency age. MaxDays is +Inf for the
// open-ended last bucket.
type AgingBucket struct {
	Label     string
	MinDays   float64
	MaxDays   float64
	TotalDebt float64
	Count     int
}

// AgingBuckets groups rows by days_overdue. Edges are the inner
// boundaries: edges {30, 90, 180} produce buckets up to 30 days, 30 to 90,
// 90 to 180 and over 180. Unlike band aggregation every bucket is kept,
// empty or not, so aging reports always show the full ladder. Rows with
// negative days_overdue land in the first bucket.
func AgingBuckets(scores []scoring.CustomerScore, edgesDays []float64) []AgingBucket {
	if len(edgesDays) == 0 {
		edgesDays = []float64{30, 90, 180}
	}

	buckets := make([]AgingBucket, 0, len(edgesDays)+1)
	low := 0.0
	for i, edge := range edgesDays {
		label := fmt.Sprintf("%s-%s days", formatDays(low), formatDays(edge))
		if i == 0 {
			label = fmt.Sprintf("up to %s days", formatDays(edge))
		}
		buckets = append(buckets, AgingBucket{Label: label, MinDays: low, MaxDays: edge})
		low = edge
	}
	buckets = append(buckets, AgingBucket{
		Label:   fmt.Sprintf("over %s days", formatDays(low)),
		MinDays: low,
		MaxDays: math.Inf(1),
	})

	for _, sc := range scores {
		idx := len(buckets) - 1
		for i := range buckets {
			if sc.Customer.DaysOverdue <= buckets[i].MaxDays {
				idx = i
				break
			}
		}
		buckets[idx].TotalDebt += sc.Customer.DebtAmount
		buckets[idx].Count++
	}
	return buckets
}

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
