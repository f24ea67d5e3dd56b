package services

import (
	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
)

// PlannerEnv carries the calendar, tuning and collaborators every planning service needs
type PlannerEnv struct {
	// Weeks is the calendar the form's week flags index into; nil uses planner.DefaultWeeks
	Weeks   []model.Week
	Options planner.Options

	// SuggestionCount is how many extra camps to suggest; 0 uses planner.DefaultSuggestionCount
	SuggestionCount int

	// Geocoder may be nil, in which case radius checks pass
	Geocoder planner.Geocoder
}

// newOptimizer builds an optimizer for one form over the catalog
func (e PlannerEnv) newOptimizer(form model.FormData, camps []model.Camp, logger *zap.Logger) *planner.Optimizer {
	location := planner.NewLocationMatcher(e.Geocoder, planner.NewRadiusCache(), logger)

	return planner.NewOptimizer(planner.Input{
		Form:  form,
		Camps: camps,
		Weeks: e.Weeks,
	}, location, logger, e.Options)
}
