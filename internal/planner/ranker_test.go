package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessible-route-planner/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		segments []models.SegmentAttributes
		expected int
	}{
		{
			name:     "plain path scores base",
			segments: []models.SegmentAttributes{{Surface: models.SurfacePaved}},
			expected: 70,
		},
		{
			name: "ramps and elevators with no stairs",
			segments: []models.SegmentAttributes{
				{HasRamp: true},
				{HasElevator: true},
			},
			expected: 90,
		},
		{
			name: "ramps only with no stairs",
			segments: []models.SegmentAttributes{
				{HasRamp: true},
				{},
			},
			expected: 80,
		},
		{
			name: "stairs with no mitigation",
			segments: []models.SegmentAttributes{
				{HasStairs: true},
			},
			expected: 40,
		},
		{
			name: "stairs mitigated by a ramp elsewhere",
			segments: []models.SegmentAttributes{
				{HasStairs: true},
				{HasRamp: true},
			},
			expected: 70,
		},
		{
			name:     "empty path scores base",
			segments: nil,
			expected: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ranker{}.Score(tt.segments))
		})
	}
}

func TestDescribe(t *testing.T) {
	r := Ranker{}
	assert.Equal(t, "Most accessible route", r.Describe(95))
	assert.Equal(t, "Accessible route", r.Describe(90))
	assert.Equal(t, "Accessible route", r.Describe(70))
	assert.Equal(t, "Route with some accessibility challenges", r.Describe(69))
	assert.Equal(t, "Route with some accessibility challenges", r.Describe(40))
}

func TestVariants(t *testing.T) {
	primary := models.Route{
		ID:                 "primary",
		Distance:           1000,
		Duration:           12,
		AccessibilityScore: 70,
		Waypoints:          []models.Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.01}},
	}

	variants := Ranker{}.Variants(primary)
	require.Len(t, variants, 2)

	shorter, longer := variants[0], variants[1]

	assert.InDelta(t, 800, shorter.Distance, 1e-9)
	assert.InDelta(t, 9.6, shorter.Duration, 1e-9)
	assert.Equal(t, 50, shorter.AccessibilityScore)
	assert.Equal(t, "Shortest route (may have accessibility challenges)", shorter.Description)
	assert.NotEqual(t, primary.ID, shorter.ID)

	assert.InDelta(t, 1200, longer.Distance, 1e-9)
	assert.InDelta(t, 14.4, longer.Duration, 1e-9)
	assert.Equal(t, 85, longer.AccessibilityScore)
	assert.Equal(t, "Most accessible route (slightly longer)", longer.Description)
	assert.NotEqual(t, primary.ID, longer.ID)
	assert.NotEqual(t, shorter.ID, longer.ID)
}

func TestVariantsClampScores(t *testing.T) {
	lowScore := models.Route{AccessibilityScore: 10}
	variants := Ranker{}.Variants(lowScore)
	assert.Equal(t, 0, variants[0].AccessibilityScore)

	highScore := models.Route{AccessibilityScore: 95}
	variants = Ranker{}.Variants(highScore)
	assert.Equal(t, 100, variants[1].AccessibilityScore)
}

func TestSelect(t *testing.T) {
	routes := []models.Route{
		{ID: "primary", Distance: 1000, AccessibilityScore: 70},
		{ID: "short", Distance: 800, AccessibilityScore: 50},
		{ID: "accessible", Distance: 1200, AccessibilityScore: 85},
	}

	r := Ranker{}

	picked := r.Select(routes, wheelchairPrefs(models.RoutePreferences{PreferFewestObstacles: true}))
	require.NotNil(t, picked)
	assert.Equal(t, "accessible", picked.ID)

	picked = r.Select(routes, wheelchairPrefs(models.RoutePreferences{PreferShortestRoute: true}))
	require.NotNil(t, picked)
	assert.Equal(t, "short", picked.ID)

	picked = r.Select(routes, wheelchairPrefs(models.RoutePreferences{}))
	require.NotNil(t, picked)
	assert.Equal(t, "primary", picked.ID)

	picked = r.Select(routes, nil)
	require.NotNil(t, picked)
	assert.Equal(t, "primary", picked.ID)

	assert.Nil(t, r.Select(nil, nil))
}
