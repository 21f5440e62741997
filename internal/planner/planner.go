package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"accessible-route-planner/internal/geomath"
	"accessible-route-planner/internal/graph"
	"accessible-route-planner/internal/models"
)

// WalkingSpeedMPS is the assumed walking speed for duration estimates
const WalkingSpeedMPS = 1.4

const fallbackScore = 50

const fallbackDescription = "Direct route (accessibility not verified)"

// Planner is the public entry point: one PlanRoutes call runs
// search -> narrate -> rank and returns the primary route plus its two
// trade-off variants. A Planner holds no per-call state and is safe for
// concurrent use; each invocation owns its own search bookkeeping.
type Planner struct {
	searcher Searcher
	narrator Narrator
	ranker   Ranker
}

// New creates a planner over the given spatial graph provider
func New(provider graph.Provider) *Planner {
	return &Planner{
		searcher: Searcher{Provider: provider},
	}
}

// PlanRoutes computes the accessible route from start to goal and its
// variants. The first returned route is always the primary computed one.
// Degraded results (no accessible path found) come back as a direct
// fallback route with a neutral score, not as an error.
func (p *Planner) PlanRoutes(ctx context.Context, start, goal models.Coordinate, prefs *models.AccessibilityPreferences) ([]models.Route, error) {
	if err := models.ValidateCoordinate(start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := models.ValidateCoordinate(goal); err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}

	result, err := p.searcher.FindPath(ctx, start, goal, prefs)
	if err != nil {
		return nil, err
	}

	primary := p.assemble(result, prefs)
	routes := append([]models.Route{primary}, p.ranker.Variants(primary)...)
	return routes, nil
}

// Select applies the automatic selection policy to a set of candidate routes
func (p *Planner) Select(routes []models.Route, prefs *models.AccessibilityPreferences) *models.Route {
	return p.ranker.Select(routes, prefs)
}

// assemble turns a raw search result into a finished Route
func (p *Planner) assemble(result *SearchResult, prefs *models.AccessibilityPreferences) models.Route {
	steps := p.narrator.Narrate(result.Waypoints, result.Segments, prefs)

	var distance float64
	for i := 0; i < len(result.Waypoints)-1; i++ {
		distance += geomath.Haversine(result.Waypoints[i], result.Waypoints[i+1])
	}

	score := p.ranker.Score(result.Segments)
	description := p.ranker.Describe(score)
	if !result.Verified {
		score = fallbackScore
		description = fallbackDescription
	}

	return models.Route{
		ID:                 uuid.NewString(),
		Distance:           distance,
		Duration:           distance / WalkingSpeedMPS / 60,
		Waypoints:          result.Waypoints,
		Steps:              steps,
		AccessibilityScore: score,
		Description:        description,
		Verified:           result.Verified,
		CreatedAt:          time.Now().UTC(),
	}
}
