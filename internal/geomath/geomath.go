// Package geomath provides the spherical geometry primitives used by the
// route planner: great-circle distance, bearings and point-to-segment
// distance for off-path detection.
package geomath

import (
	"math"

	"accessible-route-planner/internal/models"
)

const earthRadiusMeters = 6371000

// metersPerDegree is the approximate length of one degree of latitude
const metersPerDegree = 111320.0

// Haversine calculates the great-circle distance in meters between two points
func Haversine(a, b models.Coordinate) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Bearing returns the initial compass bearing in degrees [0,360) from one
// point toward another
func Bearing(from, to models.Coordinate) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	deltaLng := (to.Lng - from.Lng) * math.Pi / 180

	y := math.Sin(deltaLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLng)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// compass octants in ascending bearing order, north first
var directions = []string{
	"north", "northeast", "east", "southeast",
	"south", "southwest", "west", "northwest",
}

// BearingToDirection classifies a bearing into the nearest compass octant.
// Exact boundary values (22.5, 67.5, ...) round half-up toward the lower
// bearing's neighbor, so 22.5 is already "northeast".
func BearingToDirection(bearing float64) string {
	bearing = math.Mod(math.Mod(bearing, 360)+360, 360)
	idx := int(math.Floor(bearing/45+0.5)) % len(directions)
	return directions[idx]
}

// DistanceToSegment returns the distance in meters from a point to the
// closest point on the segment between segStart and segEnd. Uses a local
// equirectangular projection around the segment, which is accurate at the
// scales off-path detection cares about (tens of meters).
func DistanceToSegment(p, segStart, segEnd models.Coordinate) float64 {
	// project to a flat plane centered on the segment start
	cosLat := math.Cos(segStart.Lat * math.Pi / 180)

	px := (p.Lng - segStart.Lng) * cosLat * metersPerDegree
	py := (p.Lat - segStart.Lat) * metersPerDegree

	ex := (segEnd.Lng - segStart.Lng) * cosLat * metersPerDegree
	ey := (segEnd.Lat - segStart.Lat) * metersPerDegree

	segLenSq := ex*ex + ey*ey
	if segLenSq == 0 {
		// degenerate segment, distance to the single point
		return math.Sqrt(px*px + py*py)
	}

	// clamp the projection parameter to the segment
	t := (px*ex + py*ey) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	dx := px - t*ex
	dy := py - t*ey
	return math.Sqrt(dx*dx + dy*dy)
}
