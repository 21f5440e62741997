package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"accessible-route-planner/internal/database"
	"accessible-route-planner/internal/models"
)

// HandleGetProfile handles GET /api/v1/profiles/{userID}
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	prefs, err := h.DB.Profiles().Get(r.Context(), userID)
	if errors.Is(err, database.ErrNotFound) {
		h.handleNotFound(w, "profile not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] Failed to get profile: user=%s err=%v", userID, err)
		h.handleInternalError(w, "failed to load profile")
		return
	}

	h.writeJSON(w, http.StatusOK, prefs)
}

// HandlePutProfile handles PUT /api/v1/profiles/{userID}
func (h *Handler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	var prefs models.AccessibilityPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		h.handleValidationError(w, "invalid request body")
		return
	}
	prefs.UserID = userID

	if err := h.DB.Profiles().Upsert(r.Context(), &prefs); err != nil {
		log.Printf("[ERROR] Failed to save profile: user=%s err=%v", userID, err)
		h.handleInternalError(w, "failed to save profile")
		return
	}

	log.Printf("[HTTP] PUT /api/v1/profiles/%s: saved", userID)
	h.writeJSON(w, http.StatusOK, &prefs)
}

// HandleDeleteProfile handles DELETE /api/v1/profiles/{userID}
func (h *Handler) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	err := h.DB.Profiles().Delete(r.Context(), userID)
	if errors.Is(err, database.ErrNotFound) {
		h.handleNotFound(w, "profile not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] Failed to delete profile: user=%s err=%v", userID, err)
		h.handleInternalError(w, "failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
