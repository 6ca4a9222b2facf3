// Package pmi provides pointwise mutual information scores over pair and
// marginal counts, used to detect surprisingly frequent token pairs.
package pmi

import "math"

// PMI computes pointwise mutual information with additive smoothing eps:
//
//	PMI(a,b) = log((n_ab + eps) * N / ((n_a + eps)(n_b + eps)))
//
// where n_ab is the pair count, n_a and n_b the marginal counts and N the
// total number of observations. Returns 0 when N is zero.
func PMI(pairCount, countA, countB, total, eps float64) float64 {
	if total == 0 {
		return 0
	}
	numerator := (pairCount + eps) * total
	denominator := (countA + eps) * (countB + eps)
	if denominator == 0 {
		return 0
	}
	return math.Log(numerator / denominator)
}

// NPMI computes normalized PMI, scaled into [-1, 1]:
//
//	NPMI(a,b) = PMI(a,b) / -log(p(a,b))
//
// Returns 0 when the pair was never observed.
func NPMI(pairCount, countA, countB, total, eps float64) float64 {
	if total == 0 || pairCount == 0 {
		return 0
	}
	p := (pairCount + eps) / total
	logP := math.Log(p)
	if logP == 0 {
		return 0
	}
	return PMI(pairCount, countA, countB, total, eps) / -logP
}
