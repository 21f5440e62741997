package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"accessible-route-planner/internal/database"
	"accessible-route-planner/internal/geocoding"
	"accessible-route-planner/internal/models"
	"accessible-route-planner/internal/planner"
)

// Handler provides common handler utilities and dependencies
type Handler struct {
	DB       database.DataStore
	Geocoder geocoding.Geocoder
	Planner  *planner.Planner
	Sessions *SessionStore
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// handleNotFound handles 404 errors
func (h *Handler) handleNotFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// handleValidationError handles 400 errors
func (h *Handler) handleValidationError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
}

// handleInternalError handles 500 errors
func (h *Handler) handleInternalError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// parseCoordQuery reads lat/lng query parameters into a validated coordinate
func parseCoordQuery(r *http.Request, latKey, lngKey string) (models.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get(latKey), 64)
	if err != nil {
		return models.Coordinate{}, &models.ErrInvalidCoordinate{Reason: latKey + " is not a number"}
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get(lngKey), 64)
	if err != nil {
		return models.Coordinate{}, &models.ErrInvalidCoordinate{Reason: lngKey + " is not a number"}
	}

	coord := models.Coordinate{Lat: lat, Lng: lng}
	if err := models.ValidateCoordinate(coord); err != nil {
		return models.Coordinate{}, err
	}
	return coord, nil
}

// HandleHealth handles GET /api/v1/health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "UNHEALTHY", err.Error(), nil)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
