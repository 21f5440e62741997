package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"accessible-route-planner/internal/database"
	"accessible-route-planner/internal/models"
	"accessible-route-planner/internal/planner"
)

type planRouteRequest struct {
	UserID      string                           `json:"user_id"`
	Start       models.Coordinate                `json:"start"`
	End         models.Coordinate                `json:"end"`
	Preferences *models.AccessibilityPreferences `json:"preferences,omitempty"`
}

type planRouteResponse struct {
	SessionID string        `json:"session_id"`
	Route     *models.Route `json:"route"`
}

type previewRoutesResponse struct {
	Routes []models.Route `json:"routes"`
}

type trackResponse struct {
	OnPath bool             `json:"on_path"`
	Step   models.RouteStep `json:"step"`
}

// resolvePreferences returns the request's inline preferences, falling back
// to the user's stored profile. No profile means no preferences.
func (h *Handler) resolvePreferences(r *http.Request, req *planRouteRequest) (*models.AccessibilityPreferences, error) {
	if req.Preferences != nil {
		return req.Preferences, nil
	}
	if req.UserID == "" {
		return nil, nil
	}

	prefs, err := h.DB.Profiles().Get(r.Context(), req.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// HandlePlanRoute handles POST /api/v1/routes/plan
func (h *Handler) HandlePlanRoute(w http.ResponseWriter, r *http.Request) {
	var req planRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "invalid request body")
		return
	}

	prefs, err := h.resolvePreferences(r, &req)
	if err != nil {
		log.Printf("[ERROR] Failed to load profile: user=%s err=%v", req.UserID, err)
		h.handleInternalError(w, "failed to load accessibility profile")
		return
	}

	session := h.Sessions.For(req.UserID)
	route, err := session.Navigate(r.Context(), req.Start, req.End, prefs)
	if err != nil {
		var invalidErr *models.ErrInvalidCoordinate
		switch {
		case errors.As(err, &invalidErr):
			h.handleValidationError(w, invalidErr.Error())
		case errors.Is(err, planner.ErrSuperseded):
			h.writeError(w, http.StatusConflict, "SUPERSEDED", "a newer route request replaced this one", nil)
		default:
			log.Printf("[ERROR] Route planning failed: user=%s err=%v", req.UserID, err)
			h.handleInternalError(w, "route planning failed")
		}
		return
	}

	h.recordHistory(r, &req, route)

	log.Printf("[HTTP] POST /api/v1/routes/plan: user=%s route=%s distance=%.0fm score=%d",
		req.UserID, route.ID, route.Distance, route.AccessibilityScore)
	h.writeJSON(w, http.StatusOK, planRouteResponse{
		SessionID: session.ID(),
		Route:     route,
	})
}

// recordHistory stores the planned route; failures are logged, never fatal
func (h *Handler) recordHistory(r *http.Request, req *planRouteRequest, route *models.Route) {
	if req.UserID == "" {
		return
	}

	entry := &models.RouteHistoryEntry{
		UserID:   req.UserID,
		StartLat: req.Start.Lat,
		StartLng: req.Start.Lng,
		EndLat:   req.End.Lat,
		EndLng:   req.End.Lng,
		Route:    *route,
	}
	if _, err := h.DB.RouteHistory().Record(r.Context(), entry); err != nil {
		log.Printf("[ERROR] Failed to record route history: user=%s err=%v", req.UserID, err)
	}
}

// HandlePreviewRoutes handles POST /api/v1/routes/preview. It returns all
// route alternatives without committing any of them to a session.
func (h *Handler) HandlePreviewRoutes(w http.ResponseWriter, r *http.Request) {
	var req planRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "invalid request body")
		return
	}

	prefs, err := h.resolvePreferences(r, &req)
	if err != nil {
		log.Printf("[ERROR] Failed to load profile: user=%s err=%v", req.UserID, err)
		h.handleInternalError(w, "failed to load accessibility profile")
		return
	}

	routes, err := h.Planner.PlanRoutes(r.Context(), req.Start, req.End, prefs)
	if err != nil {
		var invalidErr *models.ErrInvalidCoordinate
		if errors.As(err, &invalidErr) {
			h.handleValidationError(w, invalidErr.Error())
			return
		}
		log.Printf("[ERROR] Route preview failed: user=%s err=%v", req.UserID, err)
		h.handleInternalError(w, "route planning failed")
		return
	}

	h.writeJSON(w, http.StatusOK, previewRoutesResponse{Routes: routes})
}

// HandleTrack handles GET /api/v1/track
func (h *Handler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	position, err := parseCoordQuery(r, "lat", "lng")
	if err != nil {
		h.handleValidationError(w, err.Error())
		return
	}

	session := h.Sessions.For(userID)
	h.writeJSON(w, http.StatusOK, trackResponse{
		OnPath: session.OnPath(position),
		Step:   session.NextInstruction(position),
	})
}
