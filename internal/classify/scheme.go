// Package classify derives bins, colors and legend labels from zone-level
// numeric distributions for the rendering client.
package classify

// Colors for zones that carry no classifiable value
const (
	// NoAccessColor marks zones whose value is zero or missing
	NoAccessColor = "#f0f0f0"
	// NoAccessLabel is the matching legend label
	NoAccessLabel = "No Access"
	// NoDataColor marks zones with no travel time from the selected origin
	NoDataColor = "#808080"
	// NoDataLabel is the matching legend label
	NoDataLabel = "No data"
)

// Time-mapping scheme keys, ordered from the shortest band to the open
// top band
var timeMappingKeys = []string{"0_15", "15_30", "30_45", "45_60", "60_plus"}

// DefaultTimeMappingScheme is the fallback blue ramp used when the
// configured scheme is absent or incomplete
var DefaultTimeMappingScheme = map[string]string{
	"0_15":    "#e3f2fd",
	"15_30":   "#90caf9",
	"30_45":   "#42a5f5",
	"45_60":   "#1976d2",
	"60_plus": "#0d47a1",
}

// EnsureTimeMappingKeys merges a configured color scheme over the
// defaults so every required band key resolves to a color
func EnsureTimeMappingKeys(scheme map[string]string) map[string]string {
	merged := make(map[string]string, len(DefaultTimeMappingScheme))
	for k, v := range DefaultTimeMappingScheme {
		merged[k] = v
	}
	for k, v := range scheme {
		if v != "" {
			merged[k] = v
		}
	}
	for _, req := range timeMappingKeys {
		if merged[req] == "" {
			merged[req] = DefaultTimeMappingScheme[req]
		}
	}
	return merged
}

// schemeDarkToLight returns the 5 scheme colors ordered darkest (closest,
// shortest travel time) to lightest (farthest)
func schemeDarkToLight(scheme map[string]string) []string {
	return []string{
		scheme["60_plus"],
		scheme["45_60"],
		scheme["30_45"],
		scheme["15_30"],
		scheme["0_15"],
	}
}
