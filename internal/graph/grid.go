package graph

import (
	"context"
	"fmt"

	"accessible-route-planner/internal/models"
)

// DefaultCellSize is the lattice spacing in degrees (~55m of latitude)
const DefaultCellSize = 0.0005

// gridOffsets enumerates the eight lattice neighbors in a fixed clockwise
// order starting north, so neighbor ordering is stable across runs
var gridOffsets = [8][2]float64{
	{1, 0},   // north
	{1, 1},   // northeast
	{0, 1},   // east
	{-1, 1},  // southeast
	{-1, 0},  // south
	{-1, -1}, // southwest
	{0, -1},  // west
	{1, -1},  // northwest
}

// GridProvider is a deterministic synthetic graph source: coordinates snap to
// a lattice and every cell connects to its eight neighbors. Segment
// attributes default to a flat paved sidewalk; per-cell overrides let tests
// and demos model stairs, ramps, narrow passages and rough terrain.
type GridProvider struct {
	CellSize  float64
	Default   models.SegmentAttributes
	overrides map[string]models.SegmentAttributes
}

// NewGridProvider creates a grid provider with the given cell size in degrees
func NewGridProvider(cellSize float64) *GridProvider {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &GridProvider{
		CellSize: cellSize,
		Default: models.SegmentAttributes{
			Width:   2.0,
			Slope:   0,
			Surface: models.SurfacePaved,
		},
		overrides: make(map[string]models.SegmentAttributes),
	}
}

// SetSegment overrides the attributes of every edge arriving at the cell
// containing the given coordinate
func (g *GridProvider) SetSegment(at models.Coordinate, attrs models.SegmentAttributes) {
	g.overrides[g.cellKey(g.Snap(at))] = attrs
}

// Snap returns the lattice point nearest to the given coordinate
func (g *GridProvider) Snap(c models.Coordinate) models.Coordinate {
	snap := func(v float64) float64 {
		cells := v / g.CellSize
		if cells >= 0 {
			return float64(int64(cells+0.5)) * g.CellSize
		}
		return float64(int64(cells-0.5)) * g.CellSize
	}
	return models.Coordinate{Lat: snap(c.Lat), Lng: snap(c.Lng)}
}

func (g *GridProvider) cellKey(c models.Coordinate) string {
	return fmt.Sprintf("%.7f,%.7f", c.Lat, c.Lng)
}

// Neighbors returns the eight lattice neighbors of the cell containing the
// queried coordinate, in a fixed order
func (g *GridProvider) Neighbors(ctx context.Context, at models.Coordinate, prefs *models.AccessibilityPreferences) ([]Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	center := g.Snap(at)
	edges := make([]Edge, 0, len(gridOffsets))
	for _, off := range gridOffsets {
		to := models.Coordinate{
			Lat: center.Lat + off[0]*g.CellSize,
			Lng: center.Lng + off[1]*g.CellSize,
		}
		attrs := g.Default
		if override, ok := g.overrides[g.cellKey(to)]; ok {
			attrs = override
		}
		edges = append(edges, Edge{To: to, Attributes: attrs})
	}
	return edges, nil
}
