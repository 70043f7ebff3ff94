package concentration

import "math"

// DebtEntropy calculates the normalized Shannon entropy of the debt
// distribution across customers.
// Returns a value between 0 and 1:
//   - 0 = concentrated portfolio (a single customer holds all debt)
//   - 1 = evenly spread portfolio (debt uniformly distributed)
func DebtEntropy(debts []float64) float64 {
	if len(debts) <= 1 {
		// A single debt has no distribution, entropy is 0
		return 0.0
	}

	total := 0.0
	for _, d := range debts {
		if d > 0 {
			total += d
		}
	}

	if total == 0 {
		// No outstanding debt, treat as uniform distribution
		return 1.0
	}

	// Shannon entropy: -Σ(p_i × log2(p_i))
	entropy := 0.0
	for _, d := range debts {
		if d > 0 {
			p := d / total
			entropy -= p * math.Log2(p)
		}
	}

	// Normalize by maximum possible entropy (log2(n) for n customers)
	maxEntropy := math.Log2(float64(len(debts)))
	if maxEntropy <= 0 {
		return 0.0
	}

	normalized := entropy / maxEntropy
	if normalized < 0 {
		return 0.0
	}
	if normalized > 1 {
		return 1.0
	}
	return normalized
}
