package models

import (
	"fmt"
	"math"
	"time"
)

// Coordinate represents a geographic point (WGS84 degrees)
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ErrInvalidCoordinate is returned when a coordinate fails validation
type ErrInvalidCoordinate struct {
	Coord  Coordinate
	Reason string
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate (%.6f,%.6f): %s", e.Coord.Lat, e.Coord.Lng, e.Reason)
}

// ValidateCoordinate rejects NaN/Inf and out-of-range latitudes/longitudes.
// Called at public entry points so garbage never reaches cost computations.
func ValidateCoordinate(c Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return &ErrInvalidCoordinate{Coord: c, Reason: "not a finite number"}
	}
	if c.Lat < -90 || c.Lat > 90 {
		return &ErrInvalidCoordinate{Coord: c, Reason: "latitude out of range [-90,90]"}
	}
	if c.Lng < -180 || c.Lng > 180 {
		return &ErrInvalidCoordinate{Coord: c, Reason: "longitude out of range [-180,180]"}
	}
	return nil
}

// Surface categorizes the physical surface of a path segment
type Surface string

const (
	SurfacePaved    Surface = "paved"
	SurfaceAsphalt  Surface = "asphalt"
	SurfaceConcrete Surface = "concrete"
	SurfaceGravel   Surface = "gravel"
	SurfaceDirt     Surface = "dirt"
	SurfaceOther    Surface = "other"
)

// IsSmooth reports whether the surface rolls well under wheels
func (s Surface) IsSmooth() bool {
	return s == SurfacePaved || s == SurfaceAsphalt || s == SurfaceConcrete
}

// IsRough reports whether the surface is hard to traverse with wheels
func (s Surface) IsRough() bool {
	return s == SurfaceGravel || s == SurfaceDirt
}

// SegmentAttributes describes the physical properties of an edge between
// two coordinates. Slope is a percent grade magnitude; Width is meters.
type SegmentAttributes struct {
	HasElevator bool    `json:"has_elevator"`
	HasRamp     bool    `json:"has_ramp"`
	HasStairs   bool    `json:"has_stairs"`
	Width       float64 `json:"width"`
	Slope       float64 `json:"slope"`
	Surface     Surface `json:"surface"`
}

// DisabilityType identifies a traveler's mobility profile
type DisabilityType string

const (
	DisabilityWheelchair DisabilityType = "wheelchair"
	DisabilityMobility   DisabilityType = "mobility"
	DisabilityVisual     DisabilityType = "visual"
	DisabilityHearing    DisabilityType = "hearing"
	DisabilityCognitive  DisabilityType = "cognitive"
)

// RoutePreferences holds per-route planning flags. MaxSlope and MinWidth are
// optional hard limits; nil means no limit. At most one of PreferShortestRoute,
// PreferFewestObstacles and PreferSmoothTerrain is true at a time (caller's
// invariant, not enforced here).
type RoutePreferences struct {
	AvoidStairs           bool     `json:"avoid_stairs"`
	PreferElevators       bool     `json:"prefer_elevators"`
	PreferRamps           bool     `json:"prefer_ramps"`
	PreferSmoothTerrain   bool     `json:"prefer_smooth_terrain"`
	PreferShortestRoute   bool     `json:"prefer_shortest_route"`
	PreferFewestObstacles bool     `json:"prefer_fewest_obstacles"`
	AudioGuidance         bool     `json:"audio_guidance"`
	MaxSlope              *float64 `json:"max_slope,omitempty"`
	MinWidth              *float64 `json:"min_width,omitempty"`
}

// AccessibilityPreferences is the read-only snapshot the planner receives per
// search invocation. Owned by the profile subsystem; the planner never writes
// back to it.
type AccessibilityPreferences struct {
	UserID           string           `json:"user_id,omitempty"`
	DisabilityTypes  []DisabilityType `json:"disability_types"`
	RequiredFeatures []string         `json:"required_features,omitempty"`
	Routes           RoutePreferences `json:"route_preferences"`
	UpdatedAt        time.Time        `json:"updated_at,omitempty"`
}

// WheelchairProfile reports whether the traveler needs wheelchair-class
// accessibility. Only these profiles get hard segment admissibility
// constraints; other profiles get cost-only shaping.
func (p *AccessibilityPreferences) WheelchairProfile() bool {
	for _, d := range p.DisabilityTypes {
		if d == DisabilityWheelchair || d == DisabilityMobility {
			return true
		}
	}
	return false
}

// Maneuver is the action a route step asks the traveler to perform
type Maneuver string

const (
	ManeuverStraight  Maneuver = "straight"
	ManeuverTurnLeft  Maneuver = "turn-left"
	ManeuverTurnRight Maneuver = "turn-right"
	ManeuverUTurn     Maneuver = "uturn"
	ManeuverElevator  Maneuver = "elevator"
	ManeuverRamp      Maneuver = "ramp"
	ManeuverArrive    Maneuver = "arrive"
)

// RouteStep is a single turn-by-turn instruction. Immutable once built.
type RouteStep struct {
	Instruction string      `json:"instruction"`
	Distance    float64     `json:"distance"`
	Maneuver    Maneuver    `json:"maneuver"`
	Waypoint    *Coordinate `json:"waypoint,omitempty"`
}

// Route is a complete planned route. Distance is meters, Duration is minutes.
// Created once per search+narrate+score cycle and never mutated; a reroute
// produces a fresh Route.
type Route struct {
	ID                 string       `json:"id"`
	Distance           float64      `json:"distance"`
	Duration           float64      `json:"duration"`
	Waypoints          []Coordinate `json:"waypoints"`
	Steps              []RouteStep  `json:"steps"`
	AccessibilityScore int          `json:"accessibility_score"`
	Description        string       `json:"description"`
	Verified           bool         `json:"verified"`
	CreatedAt          time.Time    `json:"created_at,omitempty"`
}

// RouteHistoryEntry records one completed route plan for a user. The route
// itself is stored as a JSON snapshot so history survives model evolution.
type RouteHistoryEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	StartLat  float64   `json:"start_lat"`
	StartLng  float64   `json:"start_lng"`
	EndLat    float64   `json:"end_lat"`
	EndLng    float64   `json:"end_lng"`
	Route     Route     `json:"route"`
	CreatedAt time.Time `json:"created_at"`
}

// Start returns the entry's origin coordinate
func (e *RouteHistoryEntry) Start() Coordinate {
	return Coordinate{Lat: e.StartLat, Lng: e.StartLng}
}

// End returns the entry's destination coordinate
func (e *RouteHistoryEntry) End() Coordinate {
	return Coordinate{Lat: e.EndLat, Lng: e.EndLng}
}

// SavedPlace is a named coordinate a user has bookmarked
type SavedPlace struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetCoords returns the coordinates of the saved place
func (p *SavedPlace) GetCoords() Coordinate {
	return Coordinate{Lat: p.Lat, Lng: p.Lng}
}
