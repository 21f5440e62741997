package planner

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"accessible-route-planner/internal/models"
	"accessible-route-planner/internal/tracker"
)

// ErrSuperseded is returned when a newer navigation request replaced this
// one before it finished; its result was discarded, not installed.
var ErrSuperseded = errors.New("navigation request superseded by a newer one")

// Session tracks one traveler's current route and guarantees at most one
// in-flight search: every Navigate call bumps a monotonically increasing
// token and cancels the previous search, and a search that finishes after
// being superseded has its result discarded. Winner is decided by logical
// token order, never by completion order.
type Session struct {
	planner *Planner

	mu      sync.Mutex
	id      string
	token   uint64
	cancel  context.CancelFunc
	current *models.Route
}

// NewSession creates a navigation session over the given planner
func NewSession(p *Planner) *Session {
	return &Session{
		planner: p,
		id:      uuid.NewString(),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Navigate computes a fresh set of routes, installs the automatically
// selected one as the session's current route and returns it. A concurrent
// later Navigate call supersedes this one: the stale search is cancelled
// and ErrSuperseded is returned.
func (s *Session) Navigate(ctx context.Context, start, goal models.Coordinate, prefs *models.AccessibilityPreferences) (*models.Route, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.token++
	myToken := s.token
	searchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer cancel()

	routes, err := s.planner.PlanRoutes(searchCtx, start, goal, prefs)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != myToken {
		log.Printf("[session %s] discarding stale route result (token %d < %d)", s.id, myToken, s.token)
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	selected := s.planner.Select(routes, prefs)
	s.current = selected
	return selected, nil
}

// Current returns the committed route, or nil before the first Navigate
func (s *Session) Current() *models.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnPath reports whether the traveler is within tolerance of the committed
// route. With no committed route it reports false.
func (s *Session) OnPath(position models.Coordinate) bool {
	route := s.Current()
	if route == nil {
		return false
	}
	return tracker.IsOnPath(position, route.Waypoints, tracker.DefaultToleranceMeters)
}

// NextInstruction returns the upcoming step for the traveler's position
func (s *Session) NextInstruction(position models.Coordinate) models.RouteStep {
	route := s.Current()
	return tracker.NextInstruction(position, route)
}
