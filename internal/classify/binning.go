package classify

import (
	"math"

	"github.com/lagoslab/accessibility-backend-go/internal/stats"
)

// Bin count bounds for distribution binning (Sturges' rule, clamped)
const (
	minBins = 4
	maxBins = 7
)

// Fallback edges used when a column has no values at all
var fallbackEdges = []float64{0, 500_000, 2_000_000, 4_500_000, 6_000_000, 10_000_000}

// NiceNumber rounds a value to at most `digits` significant digits so bin
// edges read cleanly in a legend
func NiceNumber(x float64, digits int) float64 {
	if x == 0 {
		return 0
	}
	exp := int(math.Trunc(math.Log10(math.Abs(x)))) - (digits - 1)
	if exp < 0 {
		exp = 0
	}
	magnitude := math.Pow(10, float64(exp))
	return math.Round(x/magnitude) * magnitude
}

// SturgesBins returns the bin count for n values: ceil(log2(n+1)),
// clamped to [4, 7]
func SturgesBins(n int) int {
	if n <= 0 {
		return 5
	}
	bins := int(math.Ceil(math.Log2(float64(n) + 1)))
	if bins < minBins {
		bins = minBins
	}
	if bins > maxBins {
		bins = maxBins
	}
	return bins
}

// QuantileEdges computes numBins+1 bin edges at equal-probability
// quantiles of the values, rounds each edge to a nice number, and repairs
// the sequence to be strictly increasing. Nice-rounding keeps a single
// outlier from collapsing the remaining bins into one.
func QuantileEdges(values []float64, numBins int) []float64 {
	if len(values) == 0 {
		edges := make([]float64, 0, numBins+1)
		for i := 0; i <= numBins && i < len(fallbackEdges); i++ {
			edges = append(edges, fallbackEdges[i])
		}
		return edges
	}

	qs := make([]float64, numBins+1)
	for i := range qs {
		qs[i] = float64(i) / float64(numBins)
	}
	edges := stats.Quantiles(values, qs)
	for i := range edges {
		edges[i] = NiceNumber(edges[i], 3)
	}
	return repairIncreasing(edges)
}

// FixedQuantileEdges computes the 5-class edges at quantiles
// [0, .2, .4, .6, .8, 1] with the same strictly-increasing repair
func FixedQuantileEdges(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	edges := stats.Quantiles(values, []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0})
	return repairIncreasing(edges)
}

// repairIncreasing bumps any non-increasing edge to previous + 1
func repairIncreasing(edges []float64) []float64 {
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			edges[i] = edges[i-1] + 1
		}
	}
	return edges
}

// binIndex places a value in a bin given numBins edges. The top bin is
// open-ended; values below the first edge land in the last bin like the
// upstream dashboard did.
func binIndex(val float64, edges []float64) int {
	numBins := len(edges) - 1
	for i := 0; i < numBins; i++ {
		if i == numBins-1 {
			if val >= edges[i] {
				return i
			}
		} else if val >= edges[i] && val < edges[i+1] {
			return i
		}
	}
	return numBins - 1
}
