// Package graph defines the spatial graph source the route planner queries
// for accessible neighbor edges, plus the bundled provider implementations.
package graph

import (
	"context"

	"accessible-route-planner/internal/models"
)

// Edge is a traversable connection from a queried coordinate to a neighbor,
// together with the physical attributes of the connecting segment
type Edge struct {
	To         models.Coordinate
	Attributes models.SegmentAttributes
}

// Provider yields the accessible neighbor edges of a coordinate. The planner
// only requires that a call terminates and returns a finite list; how the
// graph is populated (real map data vs. synthetic) is up to the
// implementation. Implementations must be deterministic for the planner's
// output to be reproducible.
type Provider interface {
	Neighbors(ctx context.Context, at models.Coordinate, prefs *models.AccessibilityPreferences) ([]Edge, error)
}
