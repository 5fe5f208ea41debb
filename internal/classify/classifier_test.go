package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagoslab/accessibility-backend-go/internal/models"
)

func TestByDistribution(t *testing.T) {
	ids := []int32{1, 2, 3, 4}
	values := map[int32]float64{1: 0, 2: 100, 3: 200}

	res := ByDistribution(ids, values)

	require.Len(t, res.Bins, 5) // 4 bins
	require.Len(t, res.Colors, 4)

	// Zero and missing values are both "No Access"
	assert.Equal(t, NoAccessColor, res.Color[1])
	assert.Equal(t, NoAccessLabel, res.Label[1])
	assert.Equal(t, NoAccessColor, res.Color[4])
	assert.Equal(t, NoAccessLabel, res.Label[4])

	assert.Equal(t, res.Colors[2], res.Color[2])
	assert.Equal(t, "100 - 150", res.Label[2])

	// Top bin gets the open-ended label
	assert.Equal(t, res.Colors[3], res.Color[3])
	assert.Equal(t, "150+", res.Label[3])
}

func TestByDistributionBinCountTracksSampleSize(t *testing.T) {
	ids := make([]int32, 200)
	values := make(map[int32]float64, 200)
	for i := range ids {
		ids[i] = int32(i + 1)
		values[ids[i]] = float64((i + 1) * 37)
	}

	res := ByDistribution(ids, values)
	assert.Len(t, res.Colors, 7)
	assert.Len(t, res.Bins, 8)
}

func TestByDistributionLargeValueLabels(t *testing.T) {
	ids := []int32{1, 2, 3, 4, 5, 6, 7, 8}
	values := map[int32]float64{}
	for i, v := range []float64{120000, 250000, 380000, 510000, 640000, 770000, 900000, 1030000} {
		values[ids[i]] = v
	}

	res := ByDistribution(ids, values)
	// Legend labels carry thousands separators
	assert.Contains(t, res.Label[1], ",")
}

func TestByTimeMappingScheme(t *testing.T) {
	ids := []int32{1, 2, 3, 4, 5}
	values := map[int32]float64{1: 10, 2: 20, 3: 30, 4: 40, 5: 50}

	res := ByTimeMappingScheme(ids, values, nil)

	require.Len(t, res.Bins, 6)
	require.Len(t, res.Colors, 5)

	// Colors run darkest to lightest from the default blue ramp
	assert.Equal(t, "#0d47a1", res.Colors[0])
	assert.Equal(t, "#e3f2fd", res.Colors[4])

	assert.Equal(t, "Class 1", res.Label[1])
	assert.Equal(t, res.Colors[0], res.Color[1])
	assert.Equal(t, "Class 5", res.Label[5])
	assert.Equal(t, res.Colors[4], res.Color[5])
}

func TestByTimeMappingSchemeZeroIsNoAccess(t *testing.T) {
	ids := []int32{1, 2, 3}
	values := map[int32]float64{1: 0, 2: 5, 3: 10}

	res := ByTimeMappingScheme(ids, values, nil)
	assert.Equal(t, NoAccessColor, res.Color[1])
	assert.Equal(t, NoAccessLabel, res.Label[1])
}

func TestByTimeMappingSchemeEmptyValues(t *testing.T) {
	res := ByTimeMappingScheme([]int32{1, 2}, nil, nil)
	assert.Empty(t, res.Bins)
	assert.Empty(t, res.Colors)
	assert.Empty(t, res.Color)
}

func TestByTimeMappingSchemeCustomColors(t *testing.T) {
	scheme := map[string]string{"60_plus": "#111111"}
	res := ByTimeMappingScheme([]int32{1}, map[int32]float64{1: 5}, scheme)
	assert.Equal(t, "#111111", res.Colors[0])
	// Unspecified keys fall back to defaults
	assert.Equal(t, DefaultTimeMappingScheme["0_15"], res.Colors[4])
}

func TestByOriginTravelTime(t *testing.T) {
	ids := []int32{1, 2, 3, 4}
	times := map[int32]float64{1: 5, 2: 25, 3: 35}

	res := ByOriginTravelTime(ids, times, 15, nil)

	require.Len(t, res.Colors, 3)
	assert.Equal(t, []float64{0, 15, 30, 45}, res.Bins)

	assert.Equal(t, "0-15 min", res.Label[1])
	assert.Equal(t, res.Colors[0], res.Color[1])
	assert.Equal(t, "15-30 min", res.Label[2])
	assert.Equal(t, "30+ min", res.Label[3])

	// Zone 4 has no travel time from this origin
	assert.Equal(t, NoDataColor, res.Color[4])
	assert.Equal(t, NoDataLabel, res.Label[4])
}

func TestByOriginTravelTimeNoValidTimes(t *testing.T) {
	res := ByOriginTravelTime([]int32{1, 2}, nil, 15, nil)
	assert.Equal(t, NoDataColor, res.Color[1])
	assert.Equal(t, NoDataColor, res.Color[2])
	assert.Equal(t, NoDataLabel, res.Label[1])
}

func TestByOriginTravelTimeDegenerate(t *testing.T) {
	// All reachable zones at the same time: one class, darkest color,
	// applied to every zone
	ids := []int32{1, 2, 3}
	times := map[int32]float64{1: 20, 2: 20}

	res := ByOriginTravelTime(ids, times, 15, nil)

	require.Len(t, res.Colors, 1)
	for _, id := range ids {
		assert.Equal(t, DefaultTimeMappingScheme["60_plus"], res.Color[id])
		assert.Equal(t, "20 min", res.Label[id])
	}
}

func TestLegend(t *testing.T) {
	ids := []int32{1, 2, 3, 4}
	times := map[int32]float64{1: 5, 2: 25, 3: 35}
	res := ByOriginTravelTime(ids, times, 15, nil)

	legend := Legend(res)
	require.Len(t, legend, 4)

	assert.Equal(t, "0-15 min", legend[0].Label)
	assert.Equal(t, "15-30 min", legend[1].Label)
	assert.Equal(t, "30+ min", legend[2].Label)
	assert.Equal(t, NoDataLabel, legend[3].Label)
	assert.Equal(t, NoDataColor, legend[3].Color)
}

func TestLegendDeduplicates(t *testing.T) {
	res := Result{
		Color: map[int32]string{1: "#111111", 2: "#111111", 3: "#222222"},
		Label: map[int32]string{1: "0-15 min", 2: "0-15 min", 3: "15-30 min"},
	}
	legend := Legend(res)
	assert.Equal(t, []models.LegendItem{
		{Color: "#111111", Label: "0-15 min"},
		{Color: "#222222", Label: "15-30 min"},
	}, legend)
}

func TestEnsureTimeMappingKeys(t *testing.T) {
	merged := EnsureTimeMappingKeys(map[string]string{"0_15": "#abcdef", "30_45": ""})
	assert.Equal(t, "#abcdef", merged["0_15"])
	assert.Equal(t, DefaultTimeMappingScheme["30_45"], merged["30_45"])
	assert.Equal(t, DefaultTimeMappingScheme["60_plus"], merged["60_plus"])
}
