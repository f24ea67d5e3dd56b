package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wolfxl/campbuddy/pkg/core/planner"
	"github.com/wolfxl/campbuddy/pkg/db"
)

// InsertPlan stores a planning run
func (d *DB) InsertPlan(ctx context.Context, plan *db.Plan) error {
	form, err := json.Marshal(plan.Form)
	if err != nil {
		return fmt.Errorf("failed to encode plan form: %w", err)
	}
	options, err := json.Marshal(plan.Options)
	if err != nil {
		return fmt.Errorf("failed to encode plan options: %w", err)
	}
	suggestions, err := json.Marshal(plan.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode plan suggestions: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO plans (id, created_at, form, options, suggestions)
		VALUES ($1, $2, $3, $4, $5)
	`, plan.ID, plan.CreatedAt.UTC(), form, options, suggestions)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

// GetPlan loads a stored plan. Returns db.ErrNotFound when the id is unknown.
func (d *DB) GetPlan(ctx context.Context, id string) (*db.Plan, error) {
	var plan db.Plan
	var form, options, suggestions []byte
	err := d.pool.QueryRow(ctx, `
		SELECT id::text, created_at, form, options, suggestions
		FROM plans
		WHERE id = $1
	`, id).Scan(&plan.ID, &plan.CreatedAt, &form, &options, &suggestions)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan: %w", err)
	}

	if err := json.Unmarshal(form, &plan.Form); err != nil {
		return nil, fmt.Errorf("failed to decode plan form: %w", err)
	}
	if err := json.Unmarshal(options, &plan.Options); err != nil {
		return nil, fmt.Errorf("failed to decode plan options: %w", err)
	}
	if err := json.Unmarshal(suggestions, &plan.Suggestions); err != nil {
		return nil, fmt.Errorf("failed to decode plan suggestions: %w", err)
	}

	return &plan, nil
}

// UpdatePlanOptions replaces a stored plan's schedule options
func (d *DB) UpdatePlanOptions(ctx context.Context, id string, options []planner.ScheduleOption) error {
	encoded, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to encode plan options: %w", err)
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE plans SET options = $2, updated_at = NOW() WHERE id = $1
	`, id, encoded)
	if err != nil {
		return fmt.Errorf("failed to update plan options: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plan %s: %w", id, db.ErrNotFound)
	}
	return nil
}
