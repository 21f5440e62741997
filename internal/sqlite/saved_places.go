package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"accessible-route-planner/internal/database"
	"accessible-route-planner/internal/models"
)

type savedPlaceRepository struct {
	store *Store
}

func (r *savedPlaceRepository) List(ctx context.Context, userID, search string) ([]models.SavedPlace, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows *sql.Rows
	var err error

	if search != "" {
		query := `SELECT id, user_id, name, address, lat, lng, created_at, updated_at
		          FROM saved_places
		          WHERE user_id = ? AND name LIKE ?
		          ORDER BY name`
		rows, err = r.store.db.QueryContext(ctx, query, userID, "%"+search+"%")
	} else {
		query := `SELECT id, user_id, name, address, lat, lng, created_at, updated_at
		          FROM saved_places
		          WHERE user_id = ?
		          ORDER BY name`
		rows, err = r.store.db.QueryContext(ctx, query, userID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query saved places: %w", err)
	}
	defer rows.Close()

	var places []models.SavedPlace
	for rows.Next() {
		var p models.SavedPlace
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Address, &p.Lat, &p.Lng, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved places: %w", err)
	}

	return places, nil
}

func (r *savedPlaceRepository) GetByID(ctx context.Context, id int64) (*models.SavedPlace, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT id, user_id, name, address, lat, lng, created_at, updated_at
	          FROM saved_places WHERE id = ?`

	var p models.SavedPlace
	err := r.store.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Address, &p.Lat, &p.Lng, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved place: %w", err)
	}

	return &p, nil
}

func (r *savedPlaceRepository) Create(ctx context.Context, p *models.SavedPlace) (*models.SavedPlace, error) {
	if err := models.ValidateCoordinate(p.GetCoords()); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO saved_places (user_id, name, address, lat, lng, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.store.db.ExecContext(ctx, query,
		p.UserID, p.Name, p.Address, p.Lat, p.Lng, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create saved place: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id

	return p, nil
}

func (r *savedPlaceRepository) Update(ctx context.Context, p *models.SavedPlace) (*models.SavedPlace, error) {
	if err := models.ValidateCoordinate(p.GetCoords()); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p.UpdatedAt = time.Now()

	query := `UPDATE saved_places
	          SET name = ?, address = ?, lat = ?, lng = ?, updated_at = ?
	          WHERE id = ?`

	result, err := r.store.db.ExecContext(ctx, query,
		p.Name, p.Address, p.Lat, p.Lng, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update saved place: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, database.ErrNotFound
	}

	return p, nil
}

func (r *savedPlaceRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `DELETE FROM saved_places WHERE id = ?`
	result, err := r.store.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved place: %w", err)
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
