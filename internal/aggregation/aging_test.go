package aggregation

import (
	"math"
	"testing"

	"github.com/recuperacredito/recupera-go/internal/dataset"
	"github.com/recuperacredito/recupera-go/internal/scoring"
)

func agingScores(rows ...[2]float64) []scoring.CustomerScore {
	scores := make([]scoring.CustomerScore, len(rows))
	for i, r := range rows {
		scores[i] = scoring.CustomerScore{
			Customer: dataset.Customer{DaysOverdue: r[0], DebtAmount: r[1]},
		}
	}
	return scores
}

func TestAgingBuckets(t *testing.T) {
	scores := agingScores(
		[2]float64{5, 1000},    // up to 30
		[2]float64{30, 500},    // boundary, up to 30
		[2]float64{31, 2500},   // 30-90
		[2]float64{120, 12000}, // 90-180
		[2]float64{181, 20000}, // over 180
	)

	buckets := AgingBuckets(scores, []float64{30, 90, 180})

	if len(buckets) != 4 {
		t.Fatalf("buckets = %d, expected 4", len(buckets))
	}

	expectedDebt := []float64{1500, 2500, 12000, 20000}
	expectedCount := []int{2, 1, 1, 1}
	for i := range buckets {
		if buckets[i].TotalDebt != expectedDebt[i] {
			t.Errorf("bucket %q debt = %f, expected %f", buckets[i].Label, buckets[i].TotalDebt, expectedDebt[i])
		}
		if buckets[i].Count != expectedCount[i] {
			t.Errorf("bucket %q count = %d, expected %d", buckets[i].Label, buckets[i].Count, expectedCount[i])
		}
	}

	if buckets[0].Label != "up to 30 days" {
		t.Errorf("first label = %q", buckets[0].Label)
	}
	if buckets[1].Label != "30-90 days" {
		t.Errorf("second label = %q", buckets[1].Label)
	}
	if buckets[3].Label != "over 180 days" {
		t.Errorf("last label = %q", buckets[3].Label)
	}
	if !math.IsInf(buckets[3].MaxDays, 1) {
		t.Error("last bucket should be open-ended")
	}
}

func TestAgingBuckets_KeepsEmptyBuckets(t *testing.T) {
	scores := agingScores([2]float64{5, 100})

	buckets := AgingBuckets(scores, []float64{30, 90, 180})

	if len(buckets) != 4 {
		t.Fatalf("buckets = %d, expected all 4 kept", len(buckets))
	}
	for _, b := range buckets[1:] {
		if b.Count != 0 {
			t.Errorf("bucket %q count = %d, expected 0", b.Label, b.Count)
		}
	}
}

func TestAgingBuckets_DefaultEdges(t *testing.T) {
	buckets := AgingBuckets(nil, nil)
	if len(buckets) != 4 {
		t.Errorf("buckets = %d, expected 4 from default edges", len(buckets))
	}
}

func TestAgingBuckets_NegativeDaysLandInFirstBucket(t *testing.T) {
	scores := agingScores([2]float64{-3, 700})

	buckets := AgingBuckets(scores, []float64{30})
	if buckets[0].TotalDebt != 700 {
		t.Errorf("first bucket debt = %f, expected 700", buckets[0].TotalDebt)
	}
}
