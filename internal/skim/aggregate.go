package skim

import (
	"log"
	"sort"
	"strconv"

	"github.com/lagoslab/accessibility-backend-go/internal/models"
)

// DropStats counts raw rows excluded during aggregation. Exclusions are
// diagnostics, not errors: a skim referencing unmapped nodes still
// aggregates from its remaining rows.
type DropStats struct {
	Unreachable    int `json:"unreachable"`     // "--" sentinel rows
	Malformed      int `json:"malformed"`       // non-numeric travel time
	UnmappedOrigin int `json:"unmapped_origin"` // origin node not in mapping
	UnmappedDest   int `json:"unmapped_dest"`   // destination node not in mapping
}

// Total returns the total number of dropped rows
func (s DropStats) Total() int {
	return s.Unreachable + s.Malformed + s.UnmappedOrigin + s.UnmappedDest
}

type zonePair struct {
	origin, dest int32
}

// Aggregate converts a raw node-level skim into a zone-level skim. Both
// endpoints are translated through the mapper; rows that fail to
// translate, carry the unreachable sentinel, or hold malformed travel
// times are dropped and counted. Remaining rows are grouped by
// (origin_zone, destination_zone) and averaged, so the output has at
// most one entry per zone pair.
func Aggregate(name string, raw []models.RawSkimEntry, mapper *NodeZoneMapper) (*models.Skim, DropStats) {
	var stats DropStats
	sums := make(map[zonePair]float64)
	counts := make(map[zonePair]int)

	for _, row := range raw {
		if row.TravelTime == models.UnreachableSentinel {
			stats.Unreachable++
			continue
		}
		minutes, err := strconv.ParseFloat(row.TravelTime, 64)
		if err != nil {
			stats.Malformed++
			continue
		}
		originZone, ok := mapper.Zone(row.OriginNode)
		if !ok {
			stats.UnmappedOrigin++
			continue
		}
		destZone, ok := mapper.Zone(row.DestinationNode)
		if !ok {
			stats.UnmappedDest++
			continue
		}
		pair := zonePair{origin: originZone, dest: destZone}
		sums[pair] += minutes
		counts[pair]++
	}

	entries := make([]models.SkimEntry, 0, len(sums))
	for pair, sum := range sums {
		entries = append(entries, models.SkimEntry{
			OriginZone:      pair.origin,
			DestinationZone: pair.dest,
			TravelTime:      sum / float64(counts[pair]),
		})
	}

	// Deterministic entry order regardless of map iteration
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OriginZone != entries[j].OriginZone {
			return entries[i].OriginZone < entries[j].OriginZone
		}
		return entries[i].DestinationZone < entries[j].DestinationZone
	})

	if dropped := stats.Total(); dropped > 0 {
		log.Printf("Skim %q: dropped %d of %d raw rows (unreachable=%d malformed=%d unmapped_origin=%d unmapped_dest=%d)",
			name, dropped, len(raw), stats.Unreachable, stats.Malformed, stats.UnmappedOrigin, stats.UnmappedDest)
	}

	return &models.Skim{Name: name, Entries: entries}, stats
}
