package planner

import (
	"github.com/google/uuid"

	"accessible-route-planner/internal/models"
)

const (
	baseScore = 70

	fullFeatureBonus = 20
	someFeatureBonus = 10
	stairsPenaltyPts = 30
)

// Ranker derives accessibility scores and descriptions for computed routes
// and synthesizes the shortest/most-accessible trade-off variants.
type Ranker struct{}

// Score aggregates feature presence over the whole path and maps it to a
// 0-100 accessibility score
func (Ranker) Score(segments []models.SegmentAttributes) int {
	var hasRamps, hasElevators, hasStairs bool
	for _, s := range segments {
		hasRamps = hasRamps || s.HasRamp
		hasElevators = hasElevators || s.HasElevator
		hasStairs = hasStairs || s.HasStairs
	}

	score := baseScore
	switch {
	case hasRamps && hasElevators && !hasStairs:
		score += fullFeatureBonus
	case (hasRamps || hasElevators) && !hasStairs:
		score += someFeatureBonus
	case hasStairs && !hasRamps && !hasElevators:
		score -= stairsPenaltyPts
	}
	return clampScore(score)
}

// Describe maps a score to its user-facing description
func (Ranker) Describe(score int) string {
	switch {
	case score > 90:
		return "Most accessible route"
	case score >= 70:
		return "Accessible route"
	default:
		return "Route with some accessibility challenges"
	}
}

// Variants synthesizes the two trade-off siblings of a computed route. They
// are scaled approximations of the primary, not independently searched
// paths; good enough to present the trade-off, documented as such.
func (Ranker) Variants(primary models.Route) []models.Route {
	shorter := primary
	shorter.ID = uuid.NewString()
	shorter.Distance = primary.Distance * 0.8
	shorter.Duration = primary.Duration * 0.8
	shorter.AccessibilityScore = clampScore(primary.AccessibilityScore - 20)
	shorter.Description = "Shortest route (may have accessibility challenges)"

	longer := primary
	longer.ID = uuid.NewString()
	longer.Distance = primary.Distance * 1.2
	longer.Duration = primary.Duration * 1.2
	longer.AccessibilityScore = clampScore(primary.AccessibilityScore + 15)
	longer.Description = "Most accessible route (slightly longer)"

	return []models.Route{shorter, longer}
}

// Select picks one route automatically: highest score when the traveler
// prefers fewest obstacles, lowest distance when they prefer the shortest
// route, and otherwise the primary (first) route.
func (Ranker) Select(routes []models.Route, prefs *models.AccessibilityPreferences) *models.Route {
	if len(routes) == 0 {
		return nil
	}
	if prefs == nil {
		return &routes[0]
	}

	switch {
	case prefs.Routes.PreferFewestObstacles:
		best := 0
		for i := 1; i < len(routes); i++ {
			if routes[i].AccessibilityScore > routes[best].AccessibilityScore {
				best = i
			}
		}
		return &routes[best]
	case prefs.Routes.PreferShortestRoute:
		best := 0
		for i := 1; i < len(routes); i++ {
			if routes[i].Distance < routes[best].Distance {
				best = i
			}
		}
		return &routes[best]
	default:
		return &routes[0]
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
