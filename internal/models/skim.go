package models

// UnreachableSentinel is the placeholder emitted by the demand model for
// node pairs with no path. Rows carrying it are excluded before averaging.
const UnreachableSentinel = "--"

// RawSkimEntry is one row of a node-level skim as delivered by a file
// loader. TravelTime is kept textual because source files mix numeric
// minutes with the unreachable sentinel.
type RawSkimEntry struct {
	OriginNode      int32  `json:"origin_node"`
	DestinationNode int32  `json:"destination_node"`
	TravelTime      string `json:"travel_time"`
}

// SkimEntry is one zone-to-zone travel time in minutes, averaged over all
// node pairs mapping to the same zone pair
type SkimEntry struct {
	OriginZone      int32   `json:"origin_zone" db:"origin_zone"`
	DestinationZone int32   `json:"destination_zone" db:"destination_zone"`
	TravelTime      float64 `json:"travel_time" db:"travel_time"`
}

// Skim is a zone-level travel-time matrix. After aggregation there is at
// most one entry per (origin, destination) pair; a pair with no entry has
// undefined travel time (unreachable), never zero.
type Skim struct {
	Name    string      `json:"name"`
	Entries []SkimEntry `json:"entries"`
}

// TimesFromOrigin returns destination zone -> travel time for one origin
func (s *Skim) TimesFromOrigin(origin int32) map[int32]float64 {
	times := make(map[int32]float64)
	for _, e := range s.Entries {
		if e.OriginZone == origin {
			times[e.DestinationZone] = e.TravelTime
		}
	}
	return times
}

// Origins returns the distinct origin zones present in the skim
func (s *Skim) Origins() []int32 {
	seen := make(map[int32]bool)
	var origins []int32
	for _, e := range s.Entries {
		if !seen[e.OriginZone] {
			seen[e.OriginZone] = true
			origins = append(origins, e.OriginZone)
		}
	}
	return origins
}
