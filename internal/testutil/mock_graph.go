package testutil

import (
	"context"
	"fmt"
	"sync"

	"accessible-route-planner/internal/graph"
	"accessible-route-planner/internal/models"
)

// NeighborCall tracks a call to the graph provider
type NeighborCall struct {
	At models.Coordinate
}

// MockGraphProvider is a table-driven graph source for deterministic tests.
// Edges are registered per coordinate; unregistered coordinates yield no
// neighbors. An injected error makes every call fail.
type MockGraphProvider struct {
	mu    sync.Mutex
	edges map[string][]graph.Edge
	err   error

	Calls []NeighborCall
}

func NewMockGraphProvider() *MockGraphProvider {
	return &MockGraphProvider{
		edges: make(map[string][]graph.Edge),
	}
}

func (m *MockGraphProvider) makeKey(c models.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lng)
}

// AddEdge registers a one-way edge from a coordinate
func (m *MockGraphProvider) AddEdge(from, to models.Coordinate, attrs models.SegmentAttributes) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := m.makeKey(from)
	m.edges[key] = append(m.edges[key], graph.Edge{To: to, Attributes: attrs})
}

// AddBidirectional registers the edge in both directions
func (m *MockGraphProvider) AddBidirectional(a, b models.Coordinate, attrs models.SegmentAttributes) {
	m.AddEdge(a, b, attrs)
	m.AddEdge(b, a, attrs)
}

// FailWith makes every Neighbors call return the given error
func (m *MockGraphProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Neighbors returns the registered edges for the queried coordinate
func (m *MockGraphProvider) Neighbors(ctx context.Context, at models.Coordinate, prefs *models.AccessibilityPreferences) ([]graph.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, NeighborCall{At: at})
	if m.err != nil {
		return nil, m.err
	}
	return m.edges[m.makeKey(at)], nil
}

// ResetCalls clears the recorded calls
func (m *MockGraphProvider) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}
