package graph

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/serjvanilla/go-overpass"

	"accessible-route-planner/internal/geomath"
	"accessible-route-planner/internal/models"
)

const (
	// DefaultOverpassEndpoint is the public Overpass API instance
	DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

	// DefaultSearchRadiusMeters bounds each neighbor query around the
	// queried point
	DefaultSearchRadiusMeters = 250

	// maxNeighborEdges caps the edges returned per expansion so a dense
	// downtown block cannot blow up the search frontier
	maxNeighborEdges = 12
)

// OverpassProvider sources neighbor edges from OpenStreetMap pedestrian ways
// via the Overpass API. Way tags (highway=steps, ramp, surface, width,
// incline) are mapped onto SegmentAttributes. This is a thin query wrapper,
// not a routable network import: each expansion asks Overpass for the
// walkable ways around the current point and offers their nearby nodes as
// neighbors.
type OverpassProvider struct {
	client  *overpass.Client
	timeout time.Duration
	radius  int
}

// NewOverpassProvider creates a provider backed by the given Overpass endpoint
func NewOverpassProvider(endpoint string, timeout time.Duration) *OverpassProvider {
	if endpoint == "" {
		endpoint = DefaultOverpassEndpoint
	}
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassProvider{
		client:  &client,
		timeout: timeout,
		radius:  DefaultSearchRadiusMeters,
	}
}

// SetSearchRadius overrides the neighbor query radius in meters
func (p *OverpassProvider) SetSearchRadius(meters int) {
	if meters > 0 {
		p.radius = meters
	}
}

// Neighbors queries walkable OSM ways around the coordinate and returns their
// nearby nodes as candidate edges, sorted by distance for determinism
func (p *OverpassProvider) Neighbors(ctx context.Context, at models.Coordinate, prefs *models.AccessibilityPreferences) ([]Edge, error) {
	query := fmt.Sprintf(`
		[out:json];
		(
			way["highway"~"footway|path|pedestrian|steps|living_street|residential"](around:%d,%.6f,%.6f);
			node["highway"="elevator"](around:%d,%.6f,%.6f);
		);
		out body;
		>;
		out skel qt;
	`,
		p.radius, at.Lat, at.Lng,
		p.radius, at.Lat, at.Lng)

	result, err := p.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("overpass neighbors query failed: %w", err)
	}

	var edges []Edge
	for _, way := range result.Ways {
		attrs := attributesFromTags(way.Tags)
		node := nearestWayNode(way, at)
		if node == nil {
			continue
		}
		to := models.Coordinate{Lat: node.Lat, Lng: node.Lon}
		if geomath.Haversine(at, to) < 1 {
			// standing on this node already, nothing to traverse
			continue
		}
		edges = append(edges, Edge{To: to, Attributes: attrs})
	}

	for _, node := range result.Nodes {
		if node.Tags["highway"] != "elevator" {
			continue
		}
		to := models.Coordinate{Lat: node.Lat, Lng: node.Lon}
		if geomath.Haversine(at, to) < 1 {
			continue
		}
		edges = append(edges, Edge{
			To: to,
			Attributes: models.SegmentAttributes{
				HasElevator: true,
				Width:       2.0,
				Surface:     models.SurfacePaved,
			},
		})
	}

	// Overpass results come out of maps; order them so searches are repeatable
	sort.Slice(edges, func(i, j int) bool {
		di := geomath.Haversine(at, edges[i].To)
		dj := geomath.Haversine(at, edges[j].To)
		if di != dj {
			return di < dj
		}
		if edges[i].To.Lat != edges[j].To.Lat {
			return edges[i].To.Lat < edges[j].To.Lat
		}
		return edges[i].To.Lng < edges[j].To.Lng
	})

	if len(edges) > maxNeighborEdges {
		edges = edges[:maxNeighborEdges]
	}

	log.Printf("[overpass] neighbors at (%.5f,%.5f): %d edges", at.Lat, at.Lng, len(edges))
	return edges, nil
}

func (p *OverpassProvider) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	// the Overpass client has no context support; the HTTP client timeout
	// bounds the call, and callers get a last cancellation check here
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.client.Query(query)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// nearestWayNode returns the way node closest to the given coordinate
func nearestWayNode(way *overpass.Way, at models.Coordinate) *overpass.Node {
	var best *overpass.Node
	bestDist := 0.0
	for _, n := range way.Nodes {
		if n == nil {
			continue
		}
		d := geomath.Haversine(at, models.Coordinate{Lat: n.Lat, Lng: n.Lon})
		if best == nil || d < bestDist {
			best = n
			bestDist = d
		}
	}
	return best
}

// attributesFromTags maps OSM way tags onto segment attributes
func attributesFromTags(tags map[string]string) models.SegmentAttributes {
	attrs := models.SegmentAttributes{
		Width:   defaultWidthMeters,
		Surface: surfaceFromTag(tags["surface"]),
	}

	if tags["highway"] == "steps" {
		attrs.HasStairs = true
	}
	switch tags["ramp"] {
	case "yes", "wheelchair":
		attrs.HasRamp = true
	}
	if tags["ramp:wheelchair"] == "yes" {
		attrs.HasRamp = true
	}
	if tags["highway"] == "elevator" || tags["elevator"] == "yes" {
		attrs.HasElevator = true
	}

	if w, ok := parseMeasure(tags["width"]); ok {
		attrs.Width = w
	}
	if s, ok := parseIncline(tags["incline"]); ok {
		attrs.Slope = s
	}

	return attrs
}

// defaultWidthMeters is assumed when a way carries no width tag
const defaultWidthMeters = 2.0

// surfaceFromTag maps an OSM surface tag value to a surface category
func surfaceFromTag(raw string) models.Surface {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asphalt":
		return models.SurfaceAsphalt
	case "paved", "paving_stones", "sett":
		return models.SurfacePaved
	case "concrete", "concrete:plates", "concrete:lanes":
		return models.SurfaceConcrete
	case "gravel", "fine_gravel", "pebblestone", "compacted":
		return models.SurfaceGravel
	case "dirt", "ground", "earth", "mud", "grass", "sand":
		return models.SurfaceDirt
	default:
		return models.SurfaceOther
	}
}

// parseMeasure parses numeric OSM measures like "1.5" or "1.5 m"
func parseMeasure(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "m"))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// parseIncline parses OSM incline tags ("5%", "-8%", "up", "down") into an
// unsigned percent grade; bare "up"/"down" map to a nominal steep value
func parseIncline(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch raw {
	case "":
		return 0, false
	case "up", "down", "steep":
		return 10, true
	case "flat", "no":
		return 0, true
	}
	raw = strings.TrimSuffix(raw, "%")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	if v < 0 {
		v = -v
	}
	return v, true
}
