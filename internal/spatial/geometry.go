// Package spatial provides the geometry helpers behind the map-recenter
// endpoint: zone polygon centroids and bounding boxes.
package spatial

import (
	"encoding/json"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is a latitude/longitude bounding box with its centroid
type Bounds struct {
	Center     Point   `json:"center"`
	MinLat     float64 `json:"min_lat"`
	MinLon     float64 `json:"min_lon"`
	MaxLat     float64 `json:"max_lat"`
	MaxLon     float64 `json:"max_lon"`
	SpanMeters float64 `json:"span_meters"`
}

// geoJSONGeometry is the subset of GeoJSON needed to extract vertices
type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// PointsFromGeoJSON extracts the outer-ring vertices of a GeoJSON
// Polygon or MultiPolygon. Geometry the core does not understand yields
// no points rather than an error; zone geometry is display-only.
func PointsFromGeoJSON(raw json.RawMessage) []Point {
	if len(raw) == 0 {
		return nil
	}
	var geom geoJSONGeometry
	if err := json.Unmarshal(raw, &geom); err != nil {
		return nil
	}

	var rings [][][]float64
	switch geom.Type {
	case "Polygon":
		if err := json.Unmarshal(geom.Coordinates, &rings); err != nil {
			return nil
		}
	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(geom.Coordinates, &polys); err != nil {
			return nil
		}
		for _, p := range polys {
			if len(p) > 0 {
				rings = append(rings, p[0])
			}
		}
	default:
		return nil
	}

	var points []Point
	for _, ring := range rings {
		// Outer ring only; holes do not move the centroid enough to matter
		for _, coord := range ring {
			if len(coord) < 2 {
				continue
			}
			// GeoJSON order is [lon, lat]
			points = append(points, Point{Lat: coord[1], Lon: coord[0]})
		}
		break
	}
	return points
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// BoundingBox calculates the bounding box of a set of points, including
// the diagonal span in meters for zoom estimation
func BoundingBox(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon
	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return Bounds{
		Center:     Centroid(points),
		MinLat:     minLat,
		MinLon:     minLon,
		MaxLat:     maxLat,
		MaxLon:     maxLon,
		SpanMeters: HaversineDistance(minLat, minLon, maxLat, maxLon),
	}
}

// HaversineDistance calculates the great-circle distance between two
// points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}
