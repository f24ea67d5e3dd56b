package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/db"
)

// ErrScheduleGenerationFailed is returned when schedules could not be built for a form
var ErrScheduleGenerationFailed = errors.New("failed to generate schedule")

// PlanSchedulesStore defines the database operations needed to plan schedules
type PlanSchedulesStore interface {
	GetCamps(ctx context.Context) ([]model.Camp, error)
	InsertPlan(ctx context.Context, plan *db.Plan) error
}

// PlanSchedules builds the schedule options and suggestions for a form and saves them as a plan.
// Catalog and generation failures (including panics) are reported as ErrScheduleGenerationFailed.
func PlanSchedules(ctx context.Context, store PlanSchedulesStore, env PlannerEnv, form model.FormData, logger *zap.Logger) (plan *db.Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Schedule generation panicked", zap.Any("panic", r))
			plan = nil
			err = fmt.Errorf("%w: %v", ErrScheduleGenerationFailed, r)
		}
	}()

	logger.Debug("Planning schedules",
		zap.Int("children", len(form.Children)),
		zap.Ints("selected_weeks", form.SelectedWeekIndices()))

	// Step 1: Fetch the catalog
	camps, err := store.GetCamps(ctx)
	if err != nil {
		logger.Error("Failed to fetch camps", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to fetch camps: %w", ErrScheduleGenerationFailed, err)
	}

	logger.Debug("Fetched camps", zap.Int("count", len(camps)))

	// Step 2: Build every strategy's schedule
	optimizer := env.newOptimizer(form, camps, logger)
	options, err := optimizer.Generate(ctx)
	if err != nil {
		logger.Error("Failed to generate schedule options", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrScheduleGenerationFailed, err)
	}

	// Step 3: Suggest camps the options left out
	suggestions := optimizer.Suggest(options, env.SuggestionCount)

	// Step 4: Persist
	plan = &db.Plan{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Form:        form,
		Options:     options,
		Suggestions: suggestions,
	}

	if err := store.InsertPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	logger.Info("Plan created",
		zap.String("plan_id", plan.ID),
		zap.Int("options", len(options)),
		zap.Int("suggestions", len(suggestions)))

	return plan, nil
}
