package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"accessible-route-planner/internal/models"
)

func eastLine() []models.Coordinate {
	return []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.005},
		{Lat: 0, Lng: 0.01},
	}
}

func TestIsOnPathOnTheLine(t *testing.T) {
	waypoints := eastLine()

	assert.True(t, IsOnPath(models.Coordinate{Lat: 0, Lng: 0.003}, waypoints, DefaultToleranceMeters))
	assert.True(t, IsOnPath(models.Coordinate{Lat: 0, Lng: 0}, waypoints, DefaultToleranceMeters))
	assert.True(t, IsOnPath(models.Coordinate{Lat: 0, Lng: 0.01}, waypoints, DefaultToleranceMeters))
}

func TestIsOnPathWithinTolerance(t *testing.T) {
	waypoints := eastLine()

	// ~22m north of the line
	near := models.Coordinate{Lat: 0.0002, Lng: 0.004}
	assert.True(t, IsOnPath(near, waypoints, DefaultToleranceMeters))
}

func TestIsOnPathDriftBeyondTolerance(t *testing.T) {
	waypoints := eastLine()

	// ~50m perpendicular to the nearest segment
	off := models.Coordinate{Lat: 0.00045, Lng: 0.004}
	assert.False(t, IsOnPath(off, waypoints, 30))
	// a looser tolerance accepts the same position
	assert.True(t, IsOnPath(off, waypoints, 60))
}

func TestIsOnPathPastTheEndpoint(t *testing.T) {
	waypoints := eastLine()

	// ~110m beyond the final waypoint, measured to the clamped endpoint
	past := models.Coordinate{Lat: 0, Lng: 0.011}
	assert.False(t, IsOnPath(past, waypoints, 30))
}

func TestIsOnPathZeroToleranceUsesDefault(t *testing.T) {
	waypoints := eastLine()

	near := models.Coordinate{Lat: 0.0002, Lng: 0.004}
	assert.True(t, IsOnPath(near, waypoints, 0))
	assert.True(t, IsOnPath(near, waypoints, -5))
}

func TestIsOnPathDegenerateRoutes(t *testing.T) {
	assert.False(t, IsOnPath(models.Coordinate{}, nil, 30))
	assert.False(t, IsOnPath(models.Coordinate{}, []models.Coordinate{}, 30))

	single := []models.Coordinate{{Lat: 0, Lng: 0}}
	assert.True(t, IsOnPath(models.Coordinate{Lat: 0, Lng: 0.0001}, single, 30))
	assert.False(t, IsOnPath(models.Coordinate{Lat: 0, Lng: 0.001}, single, 30))
}

func TestNextInstructionNearestWaypoint(t *testing.T) {
	route := &models.Route{
		Waypoints: eastLine(),
		Steps: []models.RouteStep{
			{Instruction: "Head east for 557m", Maneuver: models.ManeuverStraight},
			{Instruction: "Continue east for 557m", Maneuver: models.ManeuverStraight},
			{Instruction: "Arrive at your destination", Maneuver: models.ManeuverArrive},
		},
	}

	step := NextInstruction(models.Coordinate{Lat: 0, Lng: 0.0001}, route)
	assert.Equal(t, "Head east for 557m", step.Instruction)

	step = NextInstruction(models.Coordinate{Lat: 0, Lng: 0.0049}, route)
	assert.Equal(t, "Continue east for 557m", step.Instruction)

	step = NextInstruction(models.Coordinate{Lat: 0, Lng: 0.02}, route)
	assert.Equal(t, models.ManeuverArrive, step.Maneuver)
}

func TestNextInstructionFallbacks(t *testing.T) {
	step := NextInstruction(models.Coordinate{}, nil)
	assert.Equal(t, "Continue to your destination", step.Instruction)
	assert.Equal(t, models.ManeuverStraight, step.Maneuver)

	step = NextInstruction(models.Coordinate{}, &models.Route{})
	assert.Equal(t, "Continue to your destination", step.Instruction)

	// more waypoints than steps resolves to the fallback past the last step
	route := &models.Route{
		Waypoints: eastLine(),
		Steps:     []models.RouteStep{{Instruction: "Head east for 557m"}},
	}
	step = NextInstruction(models.Coordinate{Lat: 0, Lng: 0.01}, route)
	assert.Equal(t, "Continue to your destination", step.Instruction)
}
