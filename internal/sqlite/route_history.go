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

type routeHistoryRepository struct {
	store *Store
}

func (r *routeHistoryRepository) List(ctx context.Context, userID string, limit, offset int) ([]models.RouteHistoryEntry, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM route_history WHERE user_id = ?`
	if err := r.store.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count route history: %w", err)
	}

	query := `SELECT id, user_id, start_lat, start_lng, end_lat, end_lng, route_json, created_at
	          FROM route_history
	          WHERE user_id = ?
	          ORDER BY created_at DESC, id DESC
	          LIMIT ? OFFSET ?`

	rows, err := r.store.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query route history: %w", err)
	}
	defer rows.Close()

	var entries []models.RouteHistoryEntry
	for rows.Next() {
		entry, err := scanHistoryRow(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating route history: %w", err)
	}

	return entries, total, nil
}

func (r *routeHistoryRepository) GetByID(ctx context.Context, id int64) (*models.RouteHistoryEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT id, user_id, start_lat, start_lng, end_lat, end_lng, route_json, created_at
	          FROM route_history WHERE id = ?`

	row := r.store.db.QueryRowContext(ctx, query, id)
	entry, err := scanHistoryRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *routeHistoryRepository) Record(ctx context.Context, entry *models.RouteHistoryEntry) (*models.RouteHistoryEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entry.CreatedAt = time.Now()

	routeJSON, err := json.Marshal(entry.Route)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route snapshot: %w", err)
	}

	query := `INSERT INTO route_history (user_id, start_lat, start_lng, end_lat, end_lng, route_json, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.store.db.ExecContext(ctx, query,
		entry.UserID, entry.StartLat, entry.StartLng, entry.EndLat, entry.EndLng, string(routeJSON), entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record route history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = id

	return entry, nil
}

func (r *routeHistoryRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `DELETE FROM route_history WHERE id = ?`
	result, err := r.store.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete route history entry: %w", err)
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

func (r *routeHistoryRepository) Clear(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `DELETE FROM route_history WHERE user_id = ?`
	if _, err := r.store.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear route history: %w", err)
	}

	return nil
}

func scanHistoryRow(scan func(dest ...any) error) (*models.RouteHistoryEntry, error) {
	var entry models.RouteHistoryEntry
	var routeJSON string

	err := scan(&entry.ID, &entry.UserID, &entry.StartLat, &entry.StartLng, &entry.EndLat, &entry.EndLng, &routeJSON, &entry.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan route history entry: %w", err)
	}

	if err := json.Unmarshal([]byte(routeJSON), &entry.Route); err != nil {
		return nil, fmt.Errorf("failed to decode route snapshot: %w", err)
	}

	return &entry, nil
}
