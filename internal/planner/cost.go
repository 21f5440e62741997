// Package planner computes accessible walking routes: an A* search over a
// spatial graph provider, cost shaping by accessibility preference, turn
// narration and route scoring.
package planner

import (
	"accessible-route-planner/internal/models"
)

// Cost multipliers applied to a segment's raw distance. They compose
// multiplicatively, so edge cost never drops below distance * 0.8*0.9*0.9
// and stays strictly positive.
const (
	elevatorBonus   = 0.8
	rampBonus       = 0.9
	stairsPenalty   = 1.5
	smoothBonus     = 0.9
)

// CostModel turns a segment's physical attributes plus the traveler's
// preferences into an admissibility verdict and a traversal cost multiplier.
type CostModel struct{}

// Evaluate reports whether a segment may be used at all and, if so, the
// multiplier applied to its raw distance to form the edge cost.
//
// Hard constraints apply only to wheelchair-class profiles; for all other
// profiles every segment is admissible and preferences shape cost only.
func (CostModel) Evaluate(attrs models.SegmentAttributes, prefs *models.AccessibilityPreferences) (admissible bool, multiplier float64) {
	if prefs == nil {
		return true, 1.0
	}
	rp := prefs.Routes

	if prefs.WheelchairProfile() {
		if rp.AvoidStairs && attrs.HasStairs && !attrs.HasRamp && !attrs.HasElevator {
			return false, 0
		}
		if rp.MaxSlope != nil && attrs.Slope > *rp.MaxSlope {
			return false, 0
		}
		if rp.MinWidth != nil && attrs.Width < *rp.MinWidth {
			return false, 0
		}
		if rp.PreferSmoothTerrain && attrs.Surface.IsRough() {
			return false, 0
		}
	}

	multiplier = 1.0
	if rp.PreferElevators && attrs.HasElevator {
		multiplier *= elevatorBonus
	}
	if rp.PreferRamps && attrs.HasRamp {
		multiplier *= rampBonus
	}
	if rp.AvoidStairs && attrs.HasStairs {
		// segment already passed admissibility, so stairs only cost extra
		multiplier *= stairsPenalty
	}
	if rp.PreferSmoothTerrain && attrs.Surface.IsSmooth() {
		multiplier *= smoothBonus
	}
	return true, multiplier
}
