package planner

import (
	"fmt"
	"math"

	"accessible-route-planner/internal/geomath"
	"accessible-route-planner/internal/models"
)

// Turn-angle buckets in degrees. The left/right/uturn boundaries are not
// symmetric around 180; clients depend on this classification, keep as-is.
const (
	turnStraightBelow = 45.0
	turnRightUpTo     = 135.0
	turnUTurnUpTo     = 225.0
	turnLeftUpTo      = 315.0
)

// Narrator converts a waypoint sequence into turn-by-turn steps: computes
// per-segment bearings, classifies turns, injects elevator/ramp call-outs
// for wheelchair profiles and appends the terminal arrive step.
type Narrator struct{}

// Narrate builds one step per traversed segment plus the final arrive step.
// segments[i] must hold the attributes of the edge arriving at waypoints[i]
// (the planner's SearchResult layout); segments may be nil when attributes
// are unknown. Calling Narrate twice on the same inputs yields identical
// steps.
func (n Narrator) Narrate(waypoints []models.Coordinate, segments []models.SegmentAttributes, prefs *models.AccessibilityPreferences) []models.RouteStep {
	if len(waypoints) == 0 {
		return nil
	}
	if len(waypoints) == 1 {
		wp := waypoints[0]
		return []models.RouteStep{arriveStep(wp)}
	}

	wheelchair := prefs != nil && prefs.WheelchairProfile()

	steps := make([]models.RouteStep, 0, len(waypoints))
	prevBearing := 0.0

	for i := 0; i < len(waypoints)-1; i++ {
		from := waypoints[i]
		to := waypoints[i+1]
		bearing := geomath.Bearing(from, to)
		dist := geomath.Haversine(from, to)
		direction := geomath.BearingToDirection(bearing)

		var instruction string
		var maneuver models.Maneuver

		if i == 0 {
			instruction = fmt.Sprintf("Head %s for %.0fm", direction, dist)
			maneuver = models.ManeuverStraight
		} else {
			turn := math.Mod(bearing-prevBearing+360, 360)
			switch {
			case turn < turnStraightBelow || turn > turnLeftUpTo:
				instruction = fmt.Sprintf("Continue %s for %.0fm", direction, dist)
				maneuver = models.ManeuverStraight
			case turn <= turnRightUpTo:
				instruction = fmt.Sprintf("Turn right and continue %s for %.0fm", direction, dist)
				maneuver = models.ManeuverTurnRight
			case turn <= turnUTurnUpTo:
				instruction = fmt.Sprintf("Make a U-turn and continue %s for %.0fm", direction, dist)
				maneuver = models.ManeuverUTurn
			default:
				instruction = fmt.Sprintf("Turn left and continue %s for %.0fm", direction, dist)
				maneuver = models.ManeuverTurnLeft
			}
		}

		// accessibility call-outs override the turn classification
		if wheelchair && i+1 < len(segments) {
			attrs := segments[i+1]
			if attrs.HasElevator {
				instruction += ". Use elevator ahead"
				maneuver = models.ManeuverElevator
			} else if attrs.HasRamp {
				instruction += ". Use ramp ahead"
				maneuver = models.ManeuverRamp
			}
		}

		wp := to
		steps = append(steps, models.RouteStep{
			Instruction: instruction,
			Distance:    dist,
			Maneuver:    maneuver,
			Waypoint:    &wp,
		})
		prevBearing = bearing
	}

	steps = append(steps, arriveStep(waypoints[len(waypoints)-1]))
	return steps
}

func arriveStep(wp models.Coordinate) models.RouteStep {
	return models.RouteStep{
		Instruction: "Arrive at your destination",
		Distance:    0,
		Maneuver:    models.ManeuverArrive,
		Waypoint:    &wp,
	}
}
