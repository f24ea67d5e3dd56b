package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

func rankedMatches() []*CampMatch {
	return []*CampMatch{
		{Camp: model.Camp{ID: 1, Price: 300}, Score: 200, LocationMatch: false, CategoryMatch: false},
		{Camp: model.Camp{ID: 2, Price: 150}, Score: 180, LocationMatch: true, CategoryMatch: false},
		{Camp: model.Camp{ID: 3, Price: 150}, Score: 170, LocationMatch: true, CategoryMatch: true},
	}
}

func TestPriorityStrategy(t *testing.T) {
	tests := []struct {
		priority string
		label    string
		focus    Focus
		pick     int64
	}{
		{priority: "price", label: "Budget-Optimized", focus: FocusBudget, pick: 2},
		{priority: "location", label: "Location-Optimized", focus: FocusLocation, pick: 2},
		{priority: "activities", label: "Activity-Optimized", focus: FocusActivity, pick: 3},
		{priority: "schedule", label: "Schedule-Optimized", focus: FocusBalanced, pick: 1},
		{priority: "weather", label: "Custom-Optimized", focus: FocusBalanced, pick: 1},
	}

	for _, tt := range tests {
		t.Run(tt.priority, func(t *testing.T) {
			strategy := PriorityStrategy(tt.priority)
			assert.Equal(t, tt.label, strategy.Label)
			assert.Equal(t, tt.focus, strategy.Focus)

			picked := strategy.Select(rankedMatches())
			if assert.NotNil(t, picked) {
				assert.Equal(t, tt.pick, picked.Camp.ID)
			}
		})
	}
}

func TestPriorityStrategy_NoAcceptableMatch(t *testing.T) {
	ranked := []*CampMatch{{Camp: model.Camp{ID: 1}, Score: 100}}
	assert.Nil(t, PriorityStrategy("location").Select(ranked))
	assert.Nil(t, PriorityStrategy("activities").Select(ranked))
	assert.Nil(t, PriorityStrategy("price").Select(nil))
}

func TestDefaultStrategies(t *testing.T) {
	assert.Equal(t, "Balanced", BalancedStrategy().Label)
	assert.Equal(t, "Budget-Friendly", BudgetStrategy().Label)
	assert.Equal(t, "Activity-Optimized", ActivityStrategy().Label)

	for _, s := range []Strategy{BalancedStrategy(), BudgetStrategy(), ActivityStrategy()} {
		assert.Equal(t, int64(1), s.Select(rankedMatches()).Camp.ID)
		assert.Nil(t, s.Select(nil))
	}
}

func TestFocusFromLabel(t *testing.T) {
	assert.Equal(t, FocusBudget, focusFromLabel("Budget-Friendly"))
	assert.Equal(t, FocusBudget, focusFromLabel("Budget-Optimized"))
	assert.Equal(t, FocusActivity, focusFromLabel("Activity-Optimized"))
	assert.Equal(t, FocusLocation, focusFromLabel("Location-Optimized"))
	assert.Equal(t, FocusBalanced, focusFromLabel("Custom-Optimized"))
	assert.Equal(t, FocusBalanced, focusFromLabel("Balanced"))
}
