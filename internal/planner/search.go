package planner

import (
	"container/heap"
	"context"
	"fmt"
	"log"

	"accessible-route-planner/internal/geomath"
	"accessible-route-planner/internal/graph"
	"accessible-route-planner/internal/models"
)

const (
	// ArrivalToleranceMeters absorbs coordinate jitter from the upstream
	// spatial source: a node this close to the goal counts as arrived
	ArrivalToleranceMeters = 20

	// MaxExpansions is the safety valve for providers that never converge
	MaxExpansions = 1000

	// coordKeyPrecision quantizes coordinates for identity checks
	// (five decimals, ~1e-5 degrees, tolerates floating noise)
	coordKeyPrecision = "%.5f,%.5f"
)

// searchNode lives in the search arena. Parent is an arena index, never a
// pointer, so the reconstruction tree carries no cross-references.
type searchNode struct {
	coord  models.Coordinate
	via    models.SegmentAttributes
	g      float64
	h      float64
	f      float64
	parent int
	order  int64
	closed bool
	heapIx int
}

// openSet orders arena indices by ascending f, ties broken by lower h, then
// by discovery order so identical inputs always pop in the same sequence
type openSet struct {
	arena *[]searchNode
	items []int
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	a := &(*o.arena)[o.items[i]]
	b := &(*o.arena)[o.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.order < b.order
}

func (o *openSet) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
	(*o.arena)[o.items[i]].heapIx = i
	(*o.arena)[o.items[j]].heapIx = j
}

func (o *openSet) Push(x interface{}) {
	ix := x.(int)
	(*o.arena)[ix].heapIx = len(o.items)
	o.items = append(o.items, ix)
}

func (o *openSet) Pop() interface{} {
	old := o.items
	n := len(old)
	ix := old[n-1]
	o.items = old[:n-1]
	(*o.arena)[ix].heapIx = -1
	return ix
}

// SearchResult is the raw output of one A* invocation, before narration and
// scoring. Segments[i] holds the attributes of the edge arriving at
// Waypoints[i]; Segments[0] is always zero.
type SearchResult struct {
	Waypoints  []models.Coordinate
	Segments   []models.SegmentAttributes
	Cost       float64
	Expansions int
	// Verified is false when the search fell back to a direct two-point
	// path without confirming accessibility
	Verified bool
}

// Searcher runs A* over a spatial graph provider using the accessibility
// cost model for edge weights and great-circle distance as the heuristic.
// Each call owns its entire search state, so a Searcher is safe for
// concurrent use.
type Searcher struct {
	Provider graph.Provider
	Cost     CostModel
}

func coordKey(c models.Coordinate) string {
	return fmt.Sprintf(coordKeyPrecision, c.Lat, c.Lng)
}

// FindPath searches from start to goal. On exhaustion of the frontier or the
// expansion budget it returns the direct two-point fallback with
// Verified=false rather than an error; the only error cause is cancellation.
func (s *Searcher) FindPath(ctx context.Context, start, goal models.Coordinate, prefs *models.AccessibilityPreferences) (*SearchResult, error) {
	arena := make([]searchNode, 0, 64)
	byKey := make(map[string]int)

	open := &openSet{arena: &arena}
	heap.Init(open)

	var discovered int64

	h0 := geomath.Haversine(start, goal)
	arena = append(arena, searchNode{
		coord:  start,
		g:      0,
		h:      h0,
		f:      h0,
		parent: -1,
		order:  discovered,
	})
	byKey[coordKey(start)] = 0
	heap.Push(open, 0)

	expansions := 0
	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if expansions >= MaxExpansions {
			log.Printf("[search] expansion budget exhausted after %d nodes, falling back to direct path", expansions)
			return s.fallback(start, goal, expansions), nil
		}

		ix := heap.Pop(open).(int)
		current := &arena[ix]
		if current.closed {
			continue
		}

		if geomath.Haversine(current.coord, goal) <= ArrivalToleranceMeters {
			return reconstruct(arena, ix, expansions), nil
		}

		current.closed = true
		expansions++

		edges, err := s.Provider.Neighbors(ctx, current.coord, prefs)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// a failing provider call means no neighbors from this node;
			// the rest of the frontier is still worth exploring
			log.Printf("[search] neighbor query failed at (%.5f,%.5f): %v", current.coord.Lat, current.coord.Lng, err)
			continue
		}

		for _, edge := range edges {
			admissible, multiplier := s.Cost.Evaluate(edge.Attributes, prefs)
			if !admissible {
				continue
			}

			key := coordKey(edge.To)
			tentative := arena[ix].g + geomath.Haversine(arena[ix].coord, edge.To)*multiplier

			if existing, seen := byKey[key]; seen {
				node := &arena[existing]
				if node.closed || tentative >= node.g {
					continue
				}
				// strictly better path to a node still on the frontier
				node.g = tentative
				node.f = tentative + node.h
				node.parent = ix
				node.via = edge.Attributes
				if node.heapIx >= 0 {
					heap.Fix(open, node.heapIx)
				} else {
					heap.Push(open, existing)
				}
				continue
			}

			discovered++
			hn := geomath.Haversine(edge.To, goal)
			arena = append(arena, searchNode{
				coord:  edge.To,
				via:    edge.Attributes,
				g:      tentative,
				h:      hn,
				f:      tentative + hn,
				parent: ix,
				order:  discovered,
			})
			byKey[key] = len(arena) - 1
			heap.Push(open, len(arena)-1)
		}
	}

	log.Printf("[search] frontier exhausted after %d expansions, falling back to direct path", expansions)
	return s.fallback(start, goal, expansions), nil
}

// reconstruct walks parent indices from the arrived node back to the root
// and reverses the result
func reconstruct(arena []searchNode, ix int, expansions int) *SearchResult {
	var waypoints []models.Coordinate
	var segments []models.SegmentAttributes
	for cur := ix; cur >= 0; cur = arena[cur].parent {
		waypoints = append(waypoints, arena[cur].coord)
		segments = append(segments, arena[cur].via)
	}
	for i, j := 0, len(waypoints)-1; i < j; i, j = i+1, j-1 {
		waypoints[i], waypoints[j] = waypoints[j], waypoints[i]
		segments[i], segments[j] = segments[j], segments[i]
	}
	segments[0] = models.SegmentAttributes{}

	return &SearchResult{
		Waypoints:  waypoints,
		Segments:   segments,
		Cost:       arena[ix].g,
		Expansions: expansions,
		Verified:   true,
	}
}

func (s *Searcher) fallback(start, goal models.Coordinate, expansions int) *SearchResult {
	return &SearchResult{
		Waypoints:  []models.Coordinate{start, goal},
		Segments:   make([]models.SegmentAttributes, 2),
		Cost:       geomath.Haversine(start, goal),
		Expansions: expansions,
		Verified:   false,
	}
}
