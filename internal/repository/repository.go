package repository

import (
	"context"
	"errors"

	"github.com/gauchoeats/gaucho/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines data access for user profiles
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdatePreferences(ctx context.Context, id int64, prefs models.Preferences) (*models.User, error)
}

// MenuRepository defines data access for dining hall menus
type MenuRepository interface {
	// ListMenu returns the items of one hall ordered by food station then name.
	// An empty hall lists every item.
	ListMenu(ctx context.Context, hall string) ([]models.MenuItem, error)
}

// WaitTimeRepository defines data access for observed wait samples
type WaitTimeRepository interface {
	AddSample(ctx context.Context, sample models.WaitSample) error
	// RecentSamples returns up to limit samples for hall, newest first
	RecentSamples(ctx context.Context, hall string, limit int) ([]models.WaitSample, error)
}

// QueryRepository records recommendation queries
type QueryRepository interface {
	RecordQuery(ctx context.Context, q models.QueryRecord) error
}

// Store groups every repository the backend needs
type Store interface {
	UserRepository
	MenuRepository
	WaitTimeRepository
	QueryRepository
}
