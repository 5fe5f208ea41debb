// Package access implements the accessibility and time-band calculators
// over a zone-level skim.
package access

import (
	"errors"
	"fmt"
	"math"

	"github.com/lagoslab/accessibility-backend-go/internal/models"
)

// ErrUnknownAttribute means the requested attribute is not a numeric
// column on the zone table. This is a caller precondition violation, not
// a data problem.
var ErrUnknownAttribute = errors.New("unknown zone attribute")

// Calculate computes, for every origin zone present in the skim, the sum
// of the named attribute over all destination zones reachable within
// timeLimit minutes. The threshold is inclusive (travel_time <= limit);
// self-trips count like any other entry. Destinations missing the
// attribute contribute zero. Origins with no qualifying destination are
// absent from the result; FillMissingZones zero-fills them on merge.
func Calculate(sk *models.Skim, zones *models.ZoneTable, timeLimit int, attribute string) (map[int32]float64, error) {
	if !zones.HasAttribute(attribute) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, attribute)
	}

	limit := float64(timeLimit)
	accessible := make(map[int32]float64)
	for _, e := range sk.Entries {
		if e.TravelTime > limit {
			continue
		}
		dest, ok := zones.Get(e.DestinationZone)
		if !ok {
			// Skim references a zone outside the zone table; excluded
			// like any other missing join key
			continue
		}
		accessible[e.OriginZone] += dest.AttributeValue(attribute)
	}
	return accessible, nil
}

// FillMissingZones completes a per-origin result over the full zone set,
// assigning zero to zones absent from the raw result. This is the
// explicit left-join-with-zero-fill contract shared by both calculators.
func FillMissingZones(values map[int32]float64, zones *models.ZoneTable) map[int32]float64 {
	filled := make(map[int32]float64, zones.Len())
	for _, id := range zones.IDs() {
		filled[id] = values[id]
	}
	return filled
}

// PercentOfTotal converts an accessible value to a whole-number
// percentage of the attribute total, with a formatted string for display.
// A zero total yields "N/A".
func PercentOfTotal(value, total float64) (float64, string) {
	if total == 0 {
		return 0, "N/A"
	}
	pct := math.Round(value / total * 100)
	return pct, fmt.Sprintf("%.0f%%", pct)
}
