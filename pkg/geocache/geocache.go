package geocache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wolfxl/campbuddy/pkg/geo"
)

//go:embed schema.sql
var schema string

// Cache persists resolved coordinates between runs in a local SQLite file
type Cache struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the cache file at path
func Open(path string) (*Cache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("cache path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open geocode cache: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping geocode cache: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create geocode cache schema: %w", err)
	}

	return &Cache{sqlDB: sqlDB}, nil
}

// Close releases the underlying connection
func (c *Cache) Close() error {
	if c == nil || c.sqlDB == nil {
		return nil
	}
	return c.sqlDB.Close()
}

// Get returns the cached point for key. The bool is false when nothing is cached.
func (c *Cache) Get(ctx context.Context, key string) (geo.Point, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return geo.Point{}, false, fmt.Errorf("cache key is required")
	}

	var p geo.Point
	err := c.sqlDB.QueryRowContext(ctx,
		`SELECT latitude, longitude FROM coordinates WHERE cache_key = ?`,
		key,
	).Scan(&p.Latitude, &p.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return geo.Point{}, false, nil
	}
	if err != nil {
		return geo.Point{}, false, fmt.Errorf("failed to read cached coordinates: %w", err)
	}

	return p, true, nil
}

// Put stores the point for key, replacing any previous value
func (c *Cache) Put(ctx context.Context, key string, p geo.Point) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("cache key is required")
	}

	_, err := c.sqlDB.ExecContext(ctx,
		`INSERT INTO coordinates (cache_key, latitude, longitude, resolved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    latitude = excluded.latitude,
		    longitude = excluded.longitude,
		    resolved_at = excluded.resolved_at`,
		key, p.Latitude, p.Longitude, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to store coordinates: %w", err)
	}

	return nil
}

// Count returns the number of cached entries
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM coordinates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached coordinates: %w", err)
	}
	return n, nil
}
