package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wolfxl/campbuddy/pkg/db"
	"github.com/wolfxl/campbuddy/pkg/geo"
)

// GetZipcode returns the centroid for a zip code, or nil when the zip is not in the table
func (d *DB) GetZipcode(ctx context.Context, zip string) (*geo.Point, error) {
	var p geo.Point
	err := d.pool.QueryRow(ctx, `
		SELECT latitude, longitude FROM zipcodes WHERE zip = $1
	`, zip).Scan(&p.Latitude, &p.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query zipcode %s: %w", zip, err)
	}
	return &p, nil
}

// UpsertZipcodes inserts or updates zip code centroids
func (d *DB) UpsertZipcodes(ctx context.Context, zipcodes []db.Zipcode) error {
	if len(zipcodes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, z := range zipcodes {
		batch.Queue(`
			INSERT INTO zipcodes (zip, city, state, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (zip) DO UPDATE SET
				city = EXCLUDED.city,
				state = EXCLUDED.state,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude
		`, z.Zip, z.City, z.State, z.Latitude, z.Longitude)
	}

	if err := d.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert zipcodes: %w", err)
	}
	return nil
}
