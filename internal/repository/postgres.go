package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements Store on PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool to dsn and verifies it with a ping
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks that the database is reachable
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies the embedded migrations in name order
func (s *PostgresStore) Migrate(ctx context.Context, logger *slog.Logger) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		logger.Info("migration applied", "name", name)
	}
	return nil
}

// GetUser returns a user by ID
func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, wants_v, wants_vgn, wants_w_nuts
		FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.WantsV, &u.WantsVgn, &u.WantsWNuts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// UpdatePreferences overwrites the user's flags and returns the stored record
func (s *PostgresStore) UpdatePreferences(ctx context.Context, id int64, prefs models.Preferences) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, `
		UPDATE users
		SET wants_v = $1, wants_vgn = $2, wants_w_nuts = $3
		WHERE id = $4
		RETURNING id, name, wants_v, wants_vgn, wants_w_nuts`,
		prefs.WantsV, prefs.WantsVgn, prefs.WantsWNuts, id,
	).Scan(&u.ID, &u.Name, &u.WantsV, &u.WantsVgn, &u.WantsWNuts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return &u, nil
}

// ListMenu returns a hall's items ordered by food station then name
func (s *PostgresStore) ListMenu(ctx context.Context, hall string) ([]models.MenuItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, dining_hall, item_name, price::float8, image, food_station, meal_time, is_v, is_vgn, is_w_nuts
		FROM dining_hall_menu
		WHERE $1::text = '' OR lower(dining_hall) = lower($1::text)
		ORDER BY food_station, item_name`,
		hall,
	)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(&it.ID, &it.DiningHall, &it.Name, &it.Price, &it.Image,
			&it.FoodStation, &it.MealTime, &it.IsV, &it.IsVgn, &it.IsWNuts); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddSample stores a wait sample
func (s *PostgresStore) AddSample(ctx context.Context, sample models.WaitSample) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO wait_time (id, dining_hall, wait_time, timestamp)
		VALUES ($1::text::uuid, $2, $3, $4)`,
		sample.ID, sample.DiningHall, sample.WaitTime, sample.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert wait sample: %w", err)
	}
	return nil
}

// RecentSamples returns up to limit samples for hall, newest first
func (s *PostgresStore) RecentSamples(ctx context.Context, hall string, limit int) ([]models.WaitSample, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, dining_hall, wait_time, timestamp
		FROM wait_time
		WHERE dining_hall = $1
		ORDER BY timestamp DESC
		LIMIT $2`,
		hall, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query wait samples: %w", err)
	}
	defer rows.Close()

	samples := make([]models.WaitSample, 0, limit)
	for rows.Next() {
		var ws models.WaitSample
		if err := rows.Scan(&ws.ID, &ws.DiningHall, &ws.WaitTime, &ws.Timestamp); err != nil {
			return nil, fmt.Errorf("scan wait sample: %w", err)
		}
		samples = append(samples, ws)
	}
	return samples, rows.Err()
}

// RecordQuery appends a recommendation query to the log
func (s *PostgresStore) RecordQuery(ctx context.Context, q models.QueryRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO queries (user_id, query_text, queries_today)
		VALUES ($1, $2, $3)`,
		q.UserID, q.QueryText, q.QueriesToday,
	)
	if err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}
