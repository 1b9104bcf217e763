// Package geo provides great-circle distance math for nearby-joint
// queries. Coordinates are plain lat/lon pairs; there is no geospatial
// extension, so searches use a bounding-box prefilter plus exact
// haversine refinement.
package geo

import "math"

const earthRadiusMeters = 6371000

// Haversine returns the great-circle distance in meters between two
// (lat, lon) points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BoundingBox is a lat/lon rectangle used to prefilter rows before the
// exact distance check.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// NewBoundingBox returns a box that fully contains the circle of the
// given radius around (lat, lon). Near the poles or the antimeridian the
// longitude span degrades to the full range rather than wrapping.
func NewBoundingBox(lat, lon, radiusMeters float64) BoundingBox {
	dLat := radiusMeters / earthRadiusMeters * 180 / math.Pi

	box := BoundingBox{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
		MinLon: -180,
		MaxLon: 180,
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat <= 0 {
		return box
	}
	dLon := dLat / cosLat
	if lon-dLon >= -180 && lon+dLon <= 180 {
		box.MinLon = lon - dLon
		box.MaxLon = lon + dLon
	}
	return box
}

// Contains reports whether the point lies within the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
