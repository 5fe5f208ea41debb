package classify

import (
	"fmt"
	"math"
	"sort"

	"github.com/lagoslab/accessibility-backend-go/internal/models"
	"github.com/lagoslab/accessibility-backend-go/internal/stats"
)

// Result carries per-zone styling plus the bin/color side values the
// rendering client needs for its legend. Zones absent from Color/Label
// have no styling (the degraded "classification failed" state is simply
// an empty Result).
type Result struct {
	Bins   []float64        `json:"bins"`
	Colors []string         `json:"colors"`
	Color  map[int32]string `json:"color"`
	Label  map[int32]string `json:"label"`
}

func emptyResult() Result {
	return Result{Color: make(map[int32]string), Label: make(map[int32]string)}
}

// ByDistribution classifies a numeric column over zones using quantile
// bins with nice-rounded edges (Sturges bin count, clamped to 4..7).
// Zones absent from values, or with a value of exactly zero, are styled
// "No Access" regardless of bin membership.
func ByDistribution(zoneIDs []int32, values map[int32]float64) Result {
	res := emptyResult()

	nonNull := make([]float64, 0, len(values))
	for _, id := range zoneIDs {
		if v, ok := values[id]; ok {
			nonNull = append(nonNull, v)
		}
	}

	numBins := SturgesBins(len(nonNull))
	res.Bins = QuantileEdges(nonNull, numBins)
	res.Colors = ColorScale(numBins)

	for _, id := range zoneIDs {
		v, ok := values[id]
		if !ok || v == 0 {
			res.Color[id] = NoAccessColor
			res.Label[id] = NoAccessLabel
			continue
		}
		i := binIndex(v, res.Bins)
		res.Color[id] = res.Colors[i]
		if i == numBins-1 {
			res.Label[id] = fmt.Sprintf("%s+", models.FormatAttributeValue(res.Bins[i]))
		} else {
			res.Label[id] = fmt.Sprintf("%s - %s",
				models.FormatAttributeValue(res.Bins[i]),
				models.FormatAttributeValue(res.Bins[i+1]))
		}
	}

	return res
}

// ByTimeMappingScheme classifies a derived total into exactly 5 classes
// at quantiles [0,.2,.4,.6,.8,1], colored by the supplied time-mapping
// scheme ordered darkest (closest) to lightest (farthest). Labels are
// "Class 1".."Class 5"; zero/missing values become "No Access".
func ByTimeMappingScheme(zoneIDs []int32, values map[int32]float64, scheme map[string]string) Result {
	res := emptyResult()

	nonNull := make([]float64, 0, len(values))
	for _, id := range zoneIDs {
		if v, ok := values[id]; ok {
			nonNull = append(nonNull, v)
		}
	}
	if len(nonNull) == 0 {
		return res
	}

	res.Bins = FixedQuantileEdges(nonNull)
	res.Colors = schemeDarkToLight(EnsureTimeMappingKeys(scheme))

	for _, id := range zoneIDs {
		v, ok := values[id]
		if !ok || v == 0 {
			res.Color[id] = NoAccessColor
			res.Label[id] = NoAccessLabel
			continue
		}
		i := binIndex(v, res.Bins)
		res.Color[id] = res.Colors[i]
		res.Label[id] = fmt.Sprintf("Class %d", i+1)
	}

	return res
}

// ByOriginTravelTime classifies zones by travel time from one origin.
// Interval width is bandWidth minutes; the class count adapts to the
// maximum observed time, with a dark-to-light gradient expanded from the
// 5-stop scheme. Zones the origin cannot reach are "No data".
func ByOriginTravelTime(zoneIDs []int32, times map[int32]float64, bandWidth int, scheme map[string]string) Result {
	res := emptyResult()
	merged := EnsureTimeMappingKeys(scheme)

	valid := make([]float64, 0, len(times))
	for _, id := range zoneIDs {
		if t, ok := times[id]; ok {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		for _, id := range zoneIDs {
			res.Color[id] = NoDataColor
			res.Label[id] = NoDataLabel
		}
		return res
	}

	minTime := stats.Min(valid)
	maxTime := stats.Max(valid)

	if maxTime-minTime <= 0 {
		// Degenerate distribution: one class, darkest color
		label := fmt.Sprintf("%.0f min", minTime)
		for _, id := range zoneIDs {
			res.Color[id] = merged["60_plus"]
			res.Label[id] = label
		}
		res.Colors = []string{merged["60_plus"]}
		return res
	}

	boundaries := bandBoundaries(maxTime, bandWidth)
	numClasses := len(boundaries) - 1
	colors := GradientPalette(merged, numClasses)

	res.Bins = boundaries
	res.Colors = colors

	for _, id := range zoneIDs {
		t, ok := times[id]
		if !ok {
			res.Color[id] = NoDataColor
			res.Label[id] = NoDataLabel
			continue
		}
		ci := numClasses - 1
		for i := 0; i < numClasses; i++ {
			if t <= boundaries[i+1] {
				ci = i
				break
			}
		}
		res.Color[id] = colors[ci]
		if ci == numClasses-1 {
			res.Label[id] = fmt.Sprintf("%.0f+ min", boundaries[ci])
		} else {
			res.Label[id] = fmt.Sprintf("%.0f-%.0f min", boundaries[ci], boundaries[ci+1])
		}
	}

	return res
}

// bandBoundaries returns successive bandWidth-wide boundaries covering
// [0, maxTime]
func bandBoundaries(maxTime float64, bandWidth int) []float64 {
	maxIntervals := int(maxTime/float64(bandWidth)) + 1
	boundaries := make([]float64, 0, maxIntervals+2)
	for i := 0; i <= maxIntervals; i++ {
		b := float64(i * bandWidth)
		boundaries = append(boundaries, b)
		if b >= maxTime {
			break
		}
	}
	if boundaries[len(boundaries)-1] < maxTime {
		boundaries = append(boundaries, boundaries[len(boundaries)-1]+float64(bandWidth))
	}
	return boundaries
}

// Legend collects the distinct (color, label) pairs of a result, ordered
// by the starting time parsed from the label, with "No data" last
func Legend(res Result) []models.LegendItem {
	type entry struct {
		item models.LegendItem
		key  float64
	}
	seen := make(map[models.LegendItem]bool)
	var entries []entry
	for id, color := range res.Color {
		item := models.LegendItem{Color: color, Label: res.Label[id]}
		if seen[item] {
			continue
		}
		seen[item] = true
		entries = append(entries, entry{item: item, key: legendSortKey(item.Label)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].item.Label < entries[j].item.Label
	})
	items := make([]models.LegendItem, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	return items
}

func legendSortKey(label string) float64 {
	if label == NoDataLabel || label == NoAccessLabel {
		return math.Inf(1)
	}
	var start float64
	// Labels look like "0-15 min", "60+ min" or "12 min"
	if _, err := fmt.Sscanf(label, "%f", &start); err != nil {
		return math.Inf(1)
	}
	return start
}
