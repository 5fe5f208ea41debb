package spatial

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsFromGeoJSONPolygon(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "Polygon",
		"coordinates": [[[3.35, 6.45], [3.40, 6.45], [3.40, 6.50], [3.35, 6.45]]]
	}`)

	points := PointsFromGeoJSON(raw)
	require.Len(t, points, 4)

	// GeoJSON coordinate order is [lon, lat]
	assert.Equal(t, Point{Lat: 6.45, Lon: 3.35}, points[0])
	assert.Equal(t, Point{Lat: 6.50, Lon: 3.40}, points[2])
}

func TestPointsFromGeoJSONMultiPolygon(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "MultiPolygon",
		"coordinates": [
			[[[3.0, 6.0], [3.1, 6.0], [3.1, 6.1]]],
			[[[4.0, 7.0], [4.1, 7.0], [4.1, 7.1]]]
		]
	}`)

	points := PointsFromGeoJSON(raw)
	require.Len(t, points, 3)
	assert.Equal(t, Point{Lat: 6.0, Lon: 3.0}, points[0])
}

func TestPointsFromGeoJSONInvalid(t *testing.T) {
	assert.Nil(t, PointsFromGeoJSON(nil))
	assert.Nil(t, PointsFromGeoJSON(json.RawMessage(`not json`)))
	assert.Nil(t, PointsFromGeoJSON(json.RawMessage(`{"type": "Point", "coordinates": [3.35, 6.45]}`)))
	assert.Nil(t, PointsFromGeoJSON(json.RawMessage(`{"type": "Polygon", "coordinates": "bad"}`)))
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))

	points := []Point{
		{Lat: 6.0, Lon: 3.0},
		{Lat: 7.0, Lon: 4.0},
	}
	assert.Equal(t, Point{Lat: 6.5, Lon: 3.5}, Centroid(points))
}

func TestBoundingBox(t *testing.T) {
	points := []Point{
		{Lat: 6.4, Lon: 3.2},
		{Lat: 6.7, Lon: 3.6},
		{Lat: 6.5, Lon: 3.4},
	}

	b := BoundingBox(points)
	assert.Equal(t, 6.4, b.MinLat)
	assert.Equal(t, 6.7, b.MaxLat)
	assert.Equal(t, 3.2, b.MinLon)
	assert.Equal(t, 3.6, b.MaxLon)
	assert.Greater(t, b.SpanMeters, 0.0)
	assert.InDelta(t, 6.5333, b.Center.Lat, 1e-4)

	assert.Equal(t, Bounds{}, BoundingBox(nil))
}

func TestHaversineDistance(t *testing.T) {
	// One degree of longitude at the equator is about 111.2 km
	d := HaversineDistance(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 100)

	assert.Zero(t, HaversineDistance(6.5, 3.4, 6.5, 3.4))
}
