package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
	"github.com/wolfxl/campbuddy/pkg/db"
)

// ErrScheduleNotFound is returned when a plan has no schedule option with the given id
var ErrScheduleNotFound = errors.New("schedule not found")

// SwapCampStore defines the database operations needed to swap a camp in a saved plan
type SwapCampStore interface {
	GetCamps(ctx context.Context) ([]model.Camp, error)
	GetPlan(ctx context.Context, id string) (*db.Plan, error)
	UpdatePlanOptions(ctx context.Context, id string, options []planner.ScheduleOption) error
}

// Slot identifies one child's week within a saved schedule option
type Slot struct {
	PlanID     string
	ScheduleID string
	WeekID     int
	ChildID    int
}

// SwapCamp replaces the camp in one slot of a saved schedule option and saves the updated plan
func SwapCamp(ctx context.Context, store SwapCampStore, env PlannerEnv, slot Slot, campID int64, logger *zap.Logger) (*planner.ScheduleOption, error) {
	logger.Debug("Swapping camp",
		zap.String("plan_id", slot.PlanID),
		zap.String("schedule_id", slot.ScheduleID),
		zap.Int("week", slot.WeekID),
		zap.Int("child", slot.ChildID),
		zap.Int64("camp_id", campID))

	// Step 1: Load the plan and find the schedule
	plan, err := store.GetPlan(ctx, slot.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}

	index := findOption(plan.Options, slot.ScheduleID)
	if index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, slot.ScheduleID)
	}

	// Step 2: Rebuild the optimizer against the current catalog
	camps, err := store.GetCamps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camps: %w", err)
	}
	optimizer := env.newOptimizer(plan.Form, camps, logger)

	// Step 3: Swap
	updated, err := optimizer.Swap(ctx, &plan.Options[index], slot.WeekID, slot.ChildID, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to swap camp: %w", err)
	}

	// Step 4: Save
	options := make([]planner.ScheduleOption, len(plan.Options))
	copy(options, plan.Options)
	options[index] = *updated

	if err := store.UpdatePlanOptions(ctx, plan.ID, options); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	logger.Info("Camp swapped",
		zap.String("plan_id", plan.ID),
		zap.String("schedule_id", updated.ScheduleID),
		zap.Float64("total_score", updated.TotalScore),
		zap.Float64("total_cost", updated.TotalCost))

	return updated, nil
}

// FindAlternativesStore defines the database operations needed to list alternatives for a slot
type FindAlternativesStore interface {
	GetCamps(ctx context.Context) ([]model.Camp, error)
	GetPlan(ctx context.Context, id string) (*db.Plan, error)
}

// FindAlternatives ranks the camps that could fill a week/child slot of a saved plan.
// A limit of 0 uses the configured default.
func FindAlternatives(ctx context.Context, store FindAlternativesStore, env PlannerEnv, planID string, weekID, childID, limit int, logger *zap.Logger) ([]*planner.CampMatch, error) {
	plan, err := store.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}

	camps, err := store.GetCamps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camps: %w", err)
	}

	optimizer := env.newOptimizer(plan.Form, camps, logger)
	alternatives, err := optimizer.FindAlternatives(ctx, weekID, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find alternatives: %w", err)
	}

	logger.Debug("Found alternatives",
		zap.String("plan_id", planID),
		zap.Int("week", weekID),
		zap.Int("child", childID),
		zap.Int("count", len(alternatives)))

	return alternatives, nil
}

func findOption(options []planner.ScheduleOption, scheduleID string) int {
	for i := range options {
		if options[i].ScheduleID == scheduleID {
			return i
		}
	}
	return -1
}
