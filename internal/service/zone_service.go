package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/lagoslab/accessibility-backend-go/internal/cache"
	"github.com/lagoslab/accessibility-backend-go/internal/models"
	"github.com/lagoslab/accessibility-backend-go/internal/repository"
	"github.com/lagoslab/accessibility-backend-go/internal/spatial"
	"github.com/lagoslab/accessibility-backend-go/internal/stats"
)

const zoneTableKey = "zones"

// AttributeInfo pairs an attribute column with its display name
type AttributeInfo struct {
	Column      string `json:"column"`
	DisplayName string `json:"display_name"`
}

// ZoneService handles zone import, lookup and map-bounds derivation
type ZoneService struct {
	repo  *repository.ZoneRepository
	zones *cache.Cache[*models.ZoneTable]
}

// NewZoneService creates a new zone service
func NewZoneService(repo *repository.ZoneRepository, ttl time.Duration) *ZoneService {
	return &ZoneService{
		repo:  repo,
		zones: cache.New[*models.ZoneTable](ttl),
	}
}

// ImportZones validates, cleans and stores a zone table. Negative
// attribute values are clipped to zero; outliers are counted and logged
// but kept.
func (s *ZoneService) ImportZones(zones []models.Zone) error {
	if len(zones) == 0 {
		return fmt.Errorf("zone table is empty")
	}

	cleanNegativeAttributes(zones)
	logAttributeOutliers(zones)

	if err := s.repo.ReplaceZones(zones); err != nil {
		return fmt.Errorf("failed to store zones: %w", err)
	}
	s.zones.Invalidate(zoneTableKey)
	log.Printf("Imported %d zones", len(zones))
	return nil
}

// ZoneTable returns the cached zone snapshot, loading it on a miss
func (s *ZoneService) ZoneTable() (*models.ZoneTable, error) {
	return s.zones.GetOrCompute(zoneTableKey, func() (*models.ZoneTable, error) {
		zones, err := s.repo.GetZones()
		if err != nil {
			return nil, err
		}
		if len(zones) == 0 {
			return nil, fmt.Errorf("no zones loaded")
		}
		return models.NewZoneTable(zones), nil
	})
}

// Bounds derives the centroid and bounding box of all zone geometry for
// the map-recenter control
func (s *ZoneService) Bounds() (spatial.Bounds, error) {
	table, err := s.ZoneTable()
	if err != nil {
		return spatial.Bounds{}, err
	}

	var points []spatial.Point
	for _, z := range table.Zones() {
		points = append(points, spatial.PointsFromGeoJSON(z.Geometry)...)
	}
	if len(points) == 0 {
		return spatial.Bounds{}, fmt.Errorf("no zone geometry available")
	}
	return spatial.BoundingBox(points), nil
}

// Attributes lists the selectable numeric attributes with display names
func (s *ZoneService) Attributes() ([]AttributeInfo, error) {
	table, err := s.ZoneTable()
	if err != nil {
		return nil, err
	}
	names := table.AttributeNames()
	return lo.Map(names, func(name string, _ int) AttributeInfo {
		return AttributeInfo{Column: name, DisplayName: models.DisplayName(name)}
	}), nil
}

// cleanNegativeAttributes clips negative attribute values to zero
func cleanNegativeAttributes(zones []models.Zone) {
	clipped := 0
	for i := range zones {
		for attr, value := range zones[i].Attributes {
			if value < 0 {
				zones[i].Attributes[attr] = 0
				clipped++
			}
		}
	}
	if clipped > 0 {
		log.Printf("Clipped %d negative attribute values to zero", clipped)
	}
}

// logAttributeOutliers counts values beyond the per-attribute outlier
// threshold. Population, employment and area columns use a more lenient
// 4-sigma threshold; everything else 3-sigma.
func logAttributeOutliers(zones []models.Zone) {
	byAttr := make(map[string][]float64)
	for i := range zones {
		for attr, value := range zones[i].Attributes {
			byAttr[attr] = append(byAttr[attr], value)
		}
	}

	totalOutliers := 0
	columns := 0
	for attr, values := range byAttr {
		sigmas := 3.0
		upper := strings.ToUpper(attr)
		if strings.Contains(upper, "EMP") || strings.Contains(upper, "POP") || strings.Contains(upper, "AREA") {
			sigmas = 4.0
		}
		threshold := stats.Mean(values) + sigmas*stats.StdDev(values)
		count := lo.CountBy(values, func(v float64) bool { return v > threshold })
		if count > 0 {
			totalOutliers += count
			columns++
		}
	}
	if totalOutliers > 0 {
		log.Printf("Zone validation: found %d outliers across %d attribute columns", totalOutliers, columns)
	}
}
