package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"accessible-route-planner/internal/database"
	"accessible-route-planner/internal/models"
)

// HandleListPlaces handles GET /api/v1/places
func (h *Handler) HandleListPlaces(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.handleValidationError(w, "user_id is required")
		return
	}
	search := r.URL.Query().Get("search")

	places, err := h.DB.SavedPlaces().List(r.Context(), userID, search)
	if err != nil {
		log.Printf("[ERROR] Failed to list saved places: user=%s err=%v", userID, err)
		h.handleInternalError(w, "failed to load saved places")
		return
	}

	if places == nil {
		places = []models.SavedPlace{}
	}
	h.writeJSON(w, http.StatusOK, places)
}

// HandleCreatePlace handles POST /api/v1/places
func (h *Handler) HandleCreatePlace(w http.ResponseWriter, r *http.Request) {
	var place models.SavedPlace
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		h.handleValidationError(w, "invalid request body")
		return
	}
	if place.UserID == "" || place.Name == "" {
		h.handleValidationError(w, "user_id and name are required")
		return
	}

	created, err := h.DB.SavedPlaces().Create(r.Context(), &place)
	if err != nil {
		var invalidErr *models.ErrInvalidCoordinate
		if errors.As(err, &invalidErr) {
			h.handleValidationError(w, invalidErr.Error())
			return
		}
		log.Printf("[ERROR] Failed to create saved place: user=%s err=%v", place.UserID, err)
		h.handleInternalError(w, "failed to save place")
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// HandleUpdatePlace handles PUT /api/v1/places/{id}
func (h *Handler) HandleUpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.handleValidationError(w, "invalid place id")
		return
	}

	var place models.SavedPlace
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		h.handleValidationError(w, "invalid request body")
		return
	}
	place.ID = id

	updated, err := h.DB.SavedPlaces().Update(r.Context(), &place)
	if errors.Is(err, database.ErrNotFound) {
		h.handleNotFound(w, "place not found")
		return
	}
	if err != nil {
		var invalidErr *models.ErrInvalidCoordinate
		if errors.As(err, &invalidErr) {
			h.handleValidationError(w, invalidErr.Error())
			return
		}
		log.Printf("[ERROR] Failed to update saved place: id=%d err=%v", id, err)
		h.handleInternalError(w, "failed to update place")
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// HandleDeletePlace handles DELETE /api/v1/places/{id}
func (h *Handler) HandleDeletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.handleValidationError(w, "invalid place id")
		return
	}

	err = h.DB.SavedPlaces().Delete(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		h.handleNotFound(w, "place not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] Failed to delete saved place: id=%d err=%v", id, err)
		h.handleInternalError(w, "failed to delete place")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
