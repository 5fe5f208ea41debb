package models

import "encoding/json"

// Zone represents a transportation analysis zone (TAZ)
type Zone struct {
	ZoneID int32  `json:"zone_id" db:"zone_id"`
	Name   string `json:"name,omitempty" db:"name"`

	// GeoJSON polygon, passed through to the rendering client untouched
	Geometry json.RawMessage `json:"geometry,omitempty" db:"geometry"`

	// Named numeric attributes (population, employment, facility counts).
	// Values are non-negative; negatives are clipped to zero on import.
	Attributes map[string]float64 `json:"attributes"`
}

// AttributeValue returns the named attribute, treating a missing value as zero
func (z *Zone) AttributeValue(name string) float64 {
	if z.Attributes == nil {
		return 0
	}
	return z.Attributes[name]
}

// ZoneTable is an immutable snapshot of the zone set for one computation
// pass. Derived columns are never attached to it; calculators return new
// result rows instead, so a cached table stays valid across requests.
type ZoneTable struct {
	zones []Zone
	index map[int32]int
}

// NewZoneTable builds a zone table indexed by ZONE_ID
func NewZoneTable(zones []Zone) *ZoneTable {
	index := make(map[int32]int, len(zones))
	for i, z := range zones {
		index[z.ZoneID] = i
	}
	return &ZoneTable{zones: zones, index: index}
}

// Len returns the number of zones
func (t *ZoneTable) Len() int {
	return len(t.zones)
}

// Zones returns the underlying zone slice; callers must not modify it
func (t *ZoneTable) Zones() []Zone {
	return t.zones
}

// Get returns the zone with the given ID
func (t *ZoneTable) Get(zoneID int32) (*Zone, bool) {
	i, ok := t.index[zoneID]
	if !ok {
		return nil, false
	}
	return &t.zones[i], true
}

// Has reports whether a zone with the given ID exists
func (t *ZoneTable) Has(zoneID int32) bool {
	_, ok := t.index[zoneID]
	return ok
}

// IDs returns all zone IDs in table order
func (t *ZoneTable) IDs() []int32 {
	ids := make([]int32, len(t.zones))
	for i, z := range t.zones {
		ids[i] = z.ZoneID
	}
	return ids
}

// HasAttribute reports whether at least one zone carries the named attribute
func (t *ZoneTable) HasAttribute(name string) bool {
	for i := range t.zones {
		if _, ok := t.zones[i].Attributes[name]; ok {
			return true
		}
	}
	return false
}

// AttributeTotal sums the named attribute over all zones
func (t *ZoneTable) AttributeTotal(name string) float64 {
	var total float64
	for i := range t.zones {
		total += t.zones[i].AttributeValue(name)
	}
	return total
}

// AttributeNames returns the union of attribute names present in the table
func (t *ZoneTable) AttributeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for i := range t.zones {
		for name := range t.zones[i].Attributes {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
