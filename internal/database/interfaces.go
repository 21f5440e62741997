package database

import (
	"context"

	"accessible-route-planner/internal/models"
)

// DataStore is the interface for data persistence
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Profiles() ProfileRepository
	RouteHistory() RouteHistoryRepository
	SavedPlaces() SavedPlaceRepository
}

// ProfileRepository persists per-user accessibility preferences
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.AccessibilityPreferences, error)
	Upsert(ctx context.Context, prefs *models.AccessibilityPreferences) error
	Delete(ctx context.Context, userID string) error
}

// RouteHistoryRepository persists completed route plans
type RouteHistoryRepository interface {
	List(ctx context.Context, userID string, limit, offset int) ([]models.RouteHistoryEntry, int, error)
	GetByID(ctx context.Context, id int64) (*models.RouteHistoryEntry, error)
	Record(ctx context.Context, entry *models.RouteHistoryEntry) (*models.RouteHistoryEntry, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context, userID string) error
}

// SavedPlaceRepository persists bookmarked destinations
type SavedPlaceRepository interface {
	List(ctx context.Context, userID, search string) ([]models.SavedPlace, error)
	GetByID(ctx context.Context, id int64) (*models.SavedPlace, error)
	Create(ctx context.Context, p *models.SavedPlace) (*models.SavedPlace, error)
	Update(ctx context.Context, p *models.SavedPlace) (*models.SavedPlace, error)
	Delete(ctx context.Context, id int64) error
}
