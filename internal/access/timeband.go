package access

import (
	"fmt"

	"github.com/lagoslab/accessibility-backend-go/internal/models"
)

// BandCount is the number of successive time bands computed per run
const BandCount = 5

// Band holds the reachable-destination counts for one travel-time
// interval (Lower, Upper], per origin zone
type Band struct {
	Index  int           // 1-based band index
	Lower  int           // exclusive lower bound in minutes (0 for band 1)
	Upper  int           // inclusive upper bound in minutes
	Column string        // result column name, e.g. "zones_0_15"
	Counts map[int32]int // origin zone -> destination count
}

// BandColumn returns the result column name for a band's bounds
func BandColumn(lower, upper int) string {
	return fmt.Sprintf("zones_%d_%d", lower, upper)
}

// TimeBands buckets every skim entry into 5 successive bands of
// bandWidth minutes and counts reachable destinations per origin.
// Band i covers ((i-1)*bandWidth, i*bandWidth], so bands neither overlap
// nor leave gaps below 5*bandWidth. Travel times above 5*bandWidth fall
// into no band; that boundary gap matches the upstream demand model and
// is kept deliberately.
func TimeBands(sk *models.Skim, bandWidth int) []Band {
	bands := make([]Band, BandCount)
	for i := range bands {
		lower := i * bandWidth
		upper := (i + 1) * bandWidth
		bands[i] = Band{
			Index:  i + 1,
			Lower:  lower,
			Upper:  upper,
			Column: BandColumn(lower, upper),
			Counts: make(map[int32]int),
		}
	}

	for _, e := range sk.Entries {
		for i := range bands {
			lower := float64(bands[i].Lower)
			upper := float64(bands[i].Upper)
			if e.TravelTime > lower && e.TravelTime <= upper {
				bands[i].Counts[e.OriginZone]++
				break
			}
			// Band 1 also admits exact zeros (self-trips)
			if i == 0 && e.TravelTime == 0 {
				bands[i].Counts[e.OriginZone]++
				break
			}
		}
	}

	return bands
}

// TotalAccessible sums the 5 band counts per origin, the
// "total_zones_{band}" column used for generic time-mapping coloring
func TotalAccessible(bands []Band, zones *models.ZoneTable) map[int32]float64 {
	totals := make(map[int32]float64, zones.Len())
	for _, id := range zones.IDs() {
		totals[id] = 0
	}
	for _, b := range bands {
		for origin, count := range b.Counts {
			if _, ok := totals[origin]; ok {
				totals[origin] += float64(count)
			}
		}
	}
	return totals
}
