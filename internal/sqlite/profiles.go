package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"accessible-route-planner/internal/database"
	"accessible-route-planner/internal/models"
)

type profileRepository struct {
	store *Store
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.AccessibilityPreferences, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT preferences, updated_at FROM profiles WHERE user_id = ?`

	var raw string
	var updatedAt time.Time
	err := r.store.db.QueryRowContext(ctx, query, userID).Scan(&raw, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var prefs models.AccessibilityPreferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, fmt.Errorf("failed to decode profile preferences: %w", err)
	}
	prefs.UserID = userID
	prefs.UpdatedAt = updatedAt

	return &prefs, nil
}

func (r *profileRepository) Upsert(ctx context.Context, prefs *models.AccessibilityPreferences) error {
	if prefs.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prefs.UpdatedAt = time.Now()

	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode profile preferences: %w", err)
	}

	query := `INSERT INTO profiles (user_id, preferences, updated_at)
	          VALUES (?, ?, ?)
	          ON CONFLICT(user_id) DO UPDATE SET preferences = excluded.preferences, updated_at = excluded.updated_at`

	if _, err := r.store.db.ExecContext(ctx, query, prefs.UserID, string(raw), prefs.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *profileRepository) Delete(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `DELETE FROM profiles WHERE user_id = ?`
	result, err := r.store.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrNotFound
	}

	return nil
}
