// Package tracker answers two questions during travel: is the traveler
// still on the committed route, and what do they do next. It never mutates
// route state; off-path detection is the caller's trigger for a reroute.
package tracker

import (
	"accessible-route-planner/internal/geomath"
	"accessible-route-planner/internal/models"
)

// DefaultToleranceMeters is how far a position may drift from the route
// before the traveler counts as off-path
const DefaultToleranceMeters = 30

// IsOnPath reports whether current is within tolerance meters of any
// segment of the waypoint polyline
func IsOnPath(current models.Coordinate, waypoints []models.Coordinate, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = DefaultToleranceMeters
	}
	if len(waypoints) == 0 {
		return false
	}
	if len(waypoints) == 1 {
		return geomath.Haversine(current, waypoints[0]) <= tolerance
	}

	for i := 0; i < len(waypoints)-1; i++ {
		if geomath.DistanceToSegment(current, waypoints[i], waypoints[i+1]) <= tolerance {
			return true
		}
	}
	return false
}

// fallbackStep is returned when a position cannot be resolved to a step
func fallbackStep() models.RouteStep {
	return models.RouteStep{
		Instruction: "Continue to your destination",
		Maneuver:    models.ManeuverStraight,
	}
}

// NextInstruction finds the route waypoint nearest to the traveler's
// position and returns its associated step. Positions that resolve to no
// step fall back to a generic continue instruction.
func NextInstruction(current models.Coordinate, route *models.Route) models.RouteStep {
	if route == nil || len(route.Waypoints) == 0 || len(route.Steps) == 0 {
		return fallbackStep()
	}

	nearest := 0
	nearestDist := geomath.Haversine(current, route.Waypoints[0])
	for i := 1; i < len(route.Waypoints); i++ {
		d := geomath.Haversine(current, route.Waypoints[i])
		if d < nearestDist {
			nearest = i
			nearestDist = d
		}
	}

	if nearest >= len(route.Steps) {
		return fallbackStep()
	}
	return route.Steps[nearest]
}
