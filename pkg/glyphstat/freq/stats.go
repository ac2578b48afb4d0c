package freq

import (
	"fmt"
	"math"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

// ShannonEntropy computes H = -Σ p(x)·log2(p(x)) over the distribution's
// probabilities. The result is 0 exactly when a single distinct token is
// repeated, and grows with vocabulary size and uniformity. An empty
// distribution has no entropy; that case fails instead of returning a
// misleading zero.
func ShannonEntropy(d *Distribution) (float64, error) {
	if d == nil || d.Total() == 0 {
		return 0, fmt.Errorf("shannon entropy: %w", internalerr.ErrDegenerateDistribution)
	}

	var h float64
	total := float64(d.Total())
	for _, tok := range d.order {
		p := float64(d.counts[tok]) / total
		h -= p * math.Log2(p)
	}
	if h < 0 {
		h = 0 // guard against -0 from rounding
	}
	return h, nil
}

// ZipfSlope fits an ordinary-least-squares line to log10(rank) vs
// log10(count) over the ranked distribution and returns its slope.
// Natural languages tend toward slopes near -1. At least two distinct
// tokens are required for the fit to be defined.
func ZipfSlope(d *Distribution) (float64, error) {
	if d == nil || d.Total() == 0 {
		return 0, fmt.Errorf("zipf slope: %w", internalerr.ErrDegenerateDistribution)
	}
	ranked := d.Ranked()
	if len(ranked) < 2 {
		return 0, fmt.Errorf("zipf slope: need at least 2 distinct tokens, got %d: %w",
			len(ranked), internalerr.ErrInsufficientData)
	}

	xs := make([]float64, len(ranked))
	ys := make([]float64, len(ranked))
	for i, tc := range ranked {
		xs[i] = math.Log10(float64(i + 1))
		ys[i] = math.Log10(float64(tc.Count))
	}
	return olsSlope(xs, ys), nil
}

// olsSlope returns the slope of the least-squares line through (xs, ys).
func olsSlope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var num, den float64
	for i := range xs {
		dx := xs[i] - meanX
		num += dx * (ys[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// HapaxRatio returns the fraction of distinct tokens that occur exactly
// once. The ratio is 0 when no hapax legomena exist and 1 when every
// token is unique.
func HapaxRatio(d *Distribution) (float64, error) {
	if d == nil || d.Total() == 0 {
		return 0, fmt.Errorf("hapax ratio: %w", internalerr.ErrDegenerateDistribution)
	}

	var hapax int
	for _, count := range d.counts {
		if count == 1 {
			hapax++
		}
	}
	return float64(hapax) / float64(d.Distinct()), nil
}
