package handlers

import (
	"log"
	"net/http"
)

// HandleAddressSearch handles GET /api/v1/geocode/search
func (h *Handler) HandleAddressSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	log.Printf("[HTTP] GET /api/v1/geocode/search: query=%s", query)

	if len(query) < 4 {
		h.writeJSON(w, http.StatusOK, []interface{}{})
		return
	}

	results, err := h.Geocoder.Search(r.Context(), query, 5)
	if err != nil {
		log.Printf("[ERROR] Failed to search addresses: query=%s err=%v", query, err)
		h.writeJSON(w, http.StatusOK, []interface{}{})
		return
	}

	log.Printf("[HTTP] GET /api/v1/geocode/search: query=%s results_count=%d", query, len(results))
	h.writeJSON(w, http.StatusOK, results)
}

// HandleReverseGeocode handles GET /api/v1/geocode/reverse
func (h *Handler) HandleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	coord, err := parseCoordQuery(r, "lat", "lng")
	if err != nil {
		h.handleValidationError(w, err.Error())
		return
	}

	result, err := h.Geocoder.Reverse(r.Context(), coord)
	if err != nil {
		log.Printf("[ERROR] Reverse geocoding failed: lat=%.6f lng=%.6f err=%v", coord.Lat, coord.Lng, err)
		h.writeError(w, http.StatusUnprocessableEntity, "GEOCODING_FAILED", err.Error(), nil)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
