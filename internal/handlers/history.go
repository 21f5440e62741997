package handlers

import (
	"log"
	"net/http"
	"strconv"

	"accessible-route-planner/internal/models"
)

type historyListResponse struct {
	Entries []models.RouteHistoryEntry `json:"entries"`
	Total   int                        `json:"total"`
	Limit   int                        `json:"limit"`
	Offset  int                        `json:"offset"`
}

// HandleListHistory handles GET /api/v1/history
func (h *Handler) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.handleValidationError(w, "user_id is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	entries, total, err := h.DB.RouteHistory().List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Failed to list route history: user=%s err=%v", userID, err)
		h.handleInternalError(w, "failed to load route history")
		return
	}

	if entries == nil {
		entries = []models.RouteHistoryEntry{}
	}
	h.writeJSON(w, http.StatusOK, historyListResponse{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// HandleClearHistory handles DELETE /api/v1/history
func (h *Handler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.handleValidationError(w, "user_id is required")
		return
	}

	if err := h.DB.RouteHistory().Clear(r.Context(), userID); err != nil {
		log.Printf("[ERROR] Failed to clear route history: user=%s err=%v", userID, err)
		h.handleInternalError(w, "failed to clear route history")
		return
	}

	log.Printf("[HTTP] DELETE /api/v1/history: user=%s cleared", userID)
	w.WriteHeader(http.StatusNoContent)
}
