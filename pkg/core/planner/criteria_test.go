package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

func TestBuildCriteria(t *testing.T) {
	form := model.FormData{
		Children: []model.Child{
			{Name: "Ava", Grade: "3rd Grade", Interests: []model.Interest{{Name: "STEM", Strength: model.StrengthLove}}},
			{Name: "Ben", Grade: "Kindergarten", Interests: []model.Interest{{Name: "STEM", Strength: model.StrengthLike}, {Name: "Art", Strength: model.StrengthTry}}},
		},
		Location:           "75034",
		Distance:           "15",
		Budget:             "$2,000",
		WeeklyBudget:       "$350.50",
		TimePreference:     "full-day",
		Transportation:     "parent",
		Priorities:         []string{"activities", "price", "location"},
		RequiredActivities: []string{"STEM"},
	}

	criteria := BuildCriteria(form)

	assert.Equal(t, []GradeRange{{Min: 3, Max: 3}, {Min: 0, Max: 0}}, criteria.GradeRanges)
	assert.Equal(t, "75034", criteria.Location)
	assert.Equal(t, 15, criteria.Distance)
	require.NotNil(t, criteria.MaxWeeklyCost)
	assert.Equal(t, 350.5, *criteria.MaxWeeklyCost)
	require.NotNil(t, criteria.TotalBudget)
	assert.Equal(t, 2000.0, *criteria.TotalBudget)
	assert.Equal(t, "full-day", criteria.TimePreference)
	assert.Equal(t, "parent", criteria.Transportation)
	assert.Equal(t, []string{"STEM"}, criteria.RequiredActivities)

	// Interests of all children merged, duplicates kept
	require.Len(t, criteria.Categories, 3)
	assert.Equal(t, "STEM", criteria.Categories[0].Name)
	assert.Equal(t, "STEM", criteria.Categories[1].Name)
	assert.Equal(t, "Art", criteria.Categories[2].Name)

	assert.Equal(t, PriorityWeights{Activities: 3, Price: 2, Location: 1, Schedule: 0}, criteria.PriorityWeights)
}

func TestBuildPriorityWeights(t *testing.T) {
	tests := []struct {
		name       string
		priorities []string
		expected   PriorityWeights
	}{
		{"empty", nil, PriorityWeights{}},
		{"all four", []string{"price", "location", "activities", "schedule"}, PriorityWeights{Price: 4, Location: 3, Activities: 2, Schedule: 1}},
		{"single", []string{"location"}, PriorityWeights{Location: 1}},
		{"unknown key still counts toward n", []string{"fun", "price"}, PriorityWeights{Price: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildPriorityWeights(tt.priorities))
		})
	}
}

func TestParseDollarAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected *float64
	}{
		{"", nil},
		{"abc", nil},
		{"$", nil},
		{"$300", ptr(300)},
		{"1,200.50", ptr(1200.5)},
		{"$ 99.99 / week", ptr(99.99)},
		{"250.", ptr(250)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDollarAmount(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-9)
		})
	}
}

func TestParseDistance(t *testing.T) {
	assert.Equal(t, 15, ParseDistance("15"))
	assert.Equal(t, 25, ParseDistance("25 miles"))
	assert.Equal(t, DefaultDistanceMiles, ParseDistance(""))
	assert.Equal(t, DefaultDistanceMiles, ParseDistance("far"))
	assert.Equal(t, 0, ParseDistance("0"))
	assert.Equal(t, -5, ParseDistance("-5"))
}

func ptr(v float64) *float64 {
	return &v
}
