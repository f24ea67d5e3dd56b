package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// GetCamps retrieves the full catalog with locations and sessions, ordered by camp id
func (d *DB) GetCamps(ctx context.Context) ([]model.Camp, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, organization, description, price_numeric, min_grade, max_grade, grade_range, categories
		FROM camps
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query camps: %w", err)
	}
	defer rows.Close()

	var camps []model.Camp
	index := make(map[int64]int)
	for rows.Next() {
		var c model.Camp
		if err := rows.Scan(&c.ID, &c.Name, &c.Organization, &c.Description, &c.Price,
			&c.MinGrade, &c.MaxGrade, &c.GradeRange, &c.Categories); err != nil {
			return nil, fmt.Errorf("failed to scan camp: %w", err)
		}
		index[c.ID] = len(camps)
		camps = append(camps, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating camps: %w", err)
	}

	if err := d.loadLocations(ctx, camps, index); err != nil {
		return nil, err
	}
	if err := d.loadSessions(ctx, camps, index); err != nil {
		return nil, err
	}

	return camps, nil
}

// locationRow is one camp_locations row; coordinates are NULL until geocoded
type locationRow struct {
	CampID    int64
	Name      string
	Latitude  *float64
	Longitude *float64
}

// sessionRow is one sessions row
type sessionRow struct {
	ID        int64
	CampID    int64
	StartDate time.Time
	EndDate   time.Time
	StartTime string
	EndTime   string
	Days      string
	Location  string
}

func (d *DB) loadLocations(ctx context.Context, camps []model.Camp, index map[int64]int) error {
	rows, err := d.pool.Query(ctx, `
		SELECT camp_id, name, latitude, longitude
		FROM camp_locations
		ORDER BY camp_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query camp locations: %w", err)
	}

	locations, err := pgx.CollectRows(rows, pgx.RowToStructByPos[locationRow])
	if err != nil {
		return fmt.Errorf("failed to scan camp locations: %w", err)
	}

	attachLocations(camps, index, locations)
	return nil
}

func (d *DB) loadSessions(ctx context.Context, camps []model.Camp, index map[int64]int) error {
	rows, err := d.pool.Query(ctx, `
		SELECT id, camp_id, start_date, end_date, start_time, end_time, days, location
		FROM sessions
		ORDER BY camp_id, start_date, id
	`)
	if err != nil {
		return fmt.Errorf("failed to query sessions: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, pgx.RowToStructByPos[sessionRow])
	if err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}

	attachSessions(camps, index, sessions)
	return nil
}

// attachLocations appends locations to their camps in row order.
// Rows for camps not in index are ignored; coordinates are kept only when both are set.
func attachLocations(camps []model.Camp, index map[int64]int, locations []locationRow) {
	for _, loc := range locations {
		i, ok := index[loc.CampID]
		if !ok {
			continue
		}
		camps[i].Locations = append(camps[i].Locations, loc.Name)
		if loc.Latitude != nil && loc.Longitude != nil {
			camps[i].LocationCoords = append(camps[i].LocationCoords, model.LocationCoords{
				Name:      loc.Name,
				Latitude:  *loc.Latitude,
				Longitude: *loc.Longitude,
			})
		}
	}
}

// attachSessions appends sessions to their camps in row order, formatting dates as YYYY-MM-DD
func attachSessions(camps []model.Camp, index map[int64]int, sessions []sessionRow) {
	for _, row := range sessions {
		i, ok := index[row.CampID]
		if !ok {
			continue
		}
		camps[i].Sessions = append(camps[i].Sessions, model.Session{
			ID:        row.ID,
			CampID:    row.CampID,
			StartDate: row.StartDate.Format("2006-01-02"),
			EndDate:   row.EndDate.Format("2006-01-02"),
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Days:      row.Days,
			Location:  row.Location,
		})
	}
}

// UpsertCamps inserts or replaces camps in a single transaction.
// A camp's locations and sessions are replaced wholesale.
func (d *DB) UpsertCamps(ctx context.Context, camps []model.Camp) error {
	return pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		for _, camp := range camps {
			if err := upsertCamp(ctx, tx, camp); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertCamp(ctx context.Context, tx pgx.Tx, camp model.Camp) error {
	categories := camp.Categories
	if categories == nil {
		categories = []string{}
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO camps (id, name, organization, description, price_numeric, min_grade, max_grade, grade_range, categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			organization = EXCLUDED.organization,
			description = EXCLUDED.description,
			price_numeric = EXCLUDED.price_numeric,
			min_grade = EXCLUDED.min_grade,
			max_grade = EXCLUDED.max_grade,
			grade_range = EXCLUDED.grade_range,
			categories = EXCLUDED.categories,
			updated_at = NOW()
	`, camp.ID, camp.Name, camp.Organization, camp.Description, camp.Price,
		camp.MinGrade, camp.MaxGrade, camp.GradeRange, categories)
	if err != nil {
		return fmt.Errorf("failed to upsert camp %d: %w", camp.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM camp_locations WHERE camp_id = $1`, camp.ID); err != nil {
		return fmt.Errorf("failed to clear locations for camp %d: %w", camp.ID, err)
	}
	for position, name := range camp.Locations {
		var lat, lon *float64
		if coords, ok := camp.CoordsFor(name); ok {
			lat, lon = &coords.Latitude, &coords.Longitude
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO camp_locations (camp_id, position, name, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5)
		`, camp.ID, position, name, lat, lon)
		if err != nil {
			return fmt.Errorf("failed to insert location %q for camp %d: %w", name, camp.ID, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE camp_id = $1`, camp.ID); err != nil {
		return fmt.Errorf("failed to clear sessions for camp %d: %w", camp.ID, err)
	}
	for _, s := range camp.Sessions {
		_, err := tx.Exec(ctx, `
			INSERT INTO sessions (id, camp_id, start_date, end_date, start_time, end_time, days, location)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				camp_id = EXCLUDED.camp_id,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				days = EXCLUDED.days,
				location = EXCLUDED.location
		`, s.ID, camp.ID, s.StartDate, s.EndDate, s.StartTime, s.EndTime, s.Days, s.Location)
		if err != nil {
			return fmt.Errorf("failed to insert session %d for camp %d: %w", s.ID, camp.ID, err)
		}
	}

	return nil
}
