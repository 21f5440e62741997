package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessible-route-planner/internal/models"
)

func TestNarrateStraightLineEast(t *testing.T) {
	waypoints := []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.0025},
		{Lat: 0, Lng: 0.005},
		{Lat: 0, Lng: 0.0075},
		{Lat: 0, Lng: 0.01},
	}

	steps := Narrator{}.Narrate(waypoints, nil, nil)

	require.Len(t, steps, 5)

	assert.Equal(t, models.ManeuverStraight, steps[0].Maneuver)
	assert.Contains(t, steps[0].Instruction, "Head east")

	for _, step := range steps[1 : len(steps)-1] {
		assert.Equal(t, models.ManeuverStraight, step.Maneuver)
		assert.Contains(t, step.Instruction, "Continue east")
	}

	last := steps[len(steps)-1]
	assert.Equal(t, models.ManeuverArrive, last.Maneuver)
	assert.Equal(t, 0.0, last.Distance)
	assert.Equal(t, "Arrive at your destination", last.Instruction)
}

func TestNarrateTurnClassification(t *testing.T) {
	tests := []struct {
		name     string
		third    models.Coordinate
		expected models.Maneuver
	}{
		// first leg heads east (bearing 90); the second leg's bearing
		// determines the turn bucket
		{"right turn south", models.Coordinate{Lat: -0.001, Lng: 0.001}, models.ManeuverTurnRight},
		{"left turn north", models.Coordinate{Lat: 0.001, Lng: 0.001}, models.ManeuverTurnLeft},
		{"u-turn back west", models.Coordinate{Lat: 0, Lng: 0}, models.ManeuverUTurn},
		{"straight on east", models.Coordinate{Lat: 0, Lng: 0.002}, models.ManeuverStraight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waypoints := []models.Coordinate{
				{Lat: 0, Lng: 0},
				{Lat: 0, Lng: 0.001},
				tt.third,
			}
			steps := Narrator{}.Narrate(waypoints, nil, nil)
			require.Len(t, steps, 3)
			assert.Equal(t, tt.expected, steps[1].Maneuver)
		})
	}
}

func TestNarrateAsymmetricBuckets(t *testing.T) {
	// a 150 degree turn lands in the u-turn bucket per the documented
	// boundaries, sharp as it looks for a real intersection
	waypoints := []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
		// bearing ~240 from the middle waypoint: turn angle ~150
		{Lat: -0.0005, Lng: 0.000134},
	}

	steps := Narrator{}.Narrate(waypoints, nil, nil)
	require.Len(t, steps, 3)
	assert.Equal(t, models.ManeuverUTurn, steps[1].Maneuver)
}

func TestNarrateWheelchairCallouts(t *testing.T) {
	waypoints := []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
		{Lat: 0, Lng: 0.002},
	}
	segments := []models.SegmentAttributes{
		{},
		{HasElevator: true, Width: 2, Surface: models.SurfacePaved},
		{HasRamp: true, Width: 2, Surface: models.SurfacePaved},
	}
	prefs := wheelchairPrefs(models.RoutePreferences{})

	steps := Narrator{}.Narrate(waypoints, segments, prefs)
	require.Len(t, steps, 3)

	assert.Equal(t, models.ManeuverElevator, steps[0].Maneuver)
	assert.Contains(t, steps[0].Instruction, "Use elevator ahead")
	assert.Equal(t, models.ManeuverRamp, steps[1].Maneuver)
	assert.Contains(t, steps[1].Instruction, "Use ramp ahead")
}

func TestNarrateCalloutsOnlyForWheelchairProfiles(t *testing.T) {
	waypoints := []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
	}
	segments := []models.SegmentAttributes{
		{},
		{HasElevator: true, Width: 2, Surface: models.SurfacePaved},
	}
	prefs := &models.AccessibilityPreferences{
		DisabilityTypes: []models.DisabilityType{models.DisabilityVisual},
	}

	steps := Narrator{}.Narrate(waypoints, segments, prefs)
	require.Len(t, steps, 2)
	assert.Equal(t, models.ManeuverStraight, steps[0].Maneuver)
	assert.NotContains(t, steps[0].Instruction, "elevator")
}

func TestNarrateIdempotent(t *testing.T) {
	waypoints := []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0.001, Lng: 0.001},
		{Lat: 0.001, Lng: 0.002},
		{Lat: 0, Lng: 0.003},
	}

	first := Narrator{}.Narrate(waypoints, nil, nil)
	second := Narrator{}.Narrate(waypoints, nil, nil)
	assert.Equal(t, first, second)
}

func TestNarrateEdgeCases(t *testing.T) {
	assert.Nil(t, Narrator{}.Narrate(nil, nil, nil))

	single := Narrator{}.Narrate([]models.Coordinate{{Lat: 1, Lng: 1}}, nil, nil)
	require.Len(t, single, 1)
	assert.Equal(t, models.ManeuverArrive, single[0].Maneuver)
}

func TestNarrateStepWaypoints(t *testing.T) {
	waypoints := []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
		{Lat: 0, Lng: 0.002},
	}

	steps := Narrator{}.Narrate(waypoints, nil, nil)
	require.Len(t, steps, 3)

	require.NotNil(t, steps[0].Waypoint)
	assert.Equal(t, waypoints[1], *steps[0].Waypoint)
	require.NotNil(t, steps[2].Waypoint)
	assert.Equal(t, waypoints[2], *steps[2].Waypoint)
}
