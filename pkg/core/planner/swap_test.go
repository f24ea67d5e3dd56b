package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

func swapFixture(t *testing.T) (*Optimizer, *ScheduleOption) {
	t.Helper()

	robotics := stemCamp(1)
	robotics.Sessions = firstWeekSession(1, "Frisco Community Center")

	art := model.Camp{
		ID:         2,
		Name:       "Art Studio",
		Price:      150,
		MinGrade:   1,
		MaxGrade:   5,
		Categories: []string{"Art"},
		Locations:  []string{"Frisco Community Center"},
		Sessions:   firstWeekSession(2, "Frisco Community Center"),
	}

	form := model.FormData{
		Children: []model.Child{stemLover()},
		Weeks:    firstWeekOnly(),
	}

	optimizer := NewOptimizer(Input{Form: form, Camps: []model.Camp{robotics, art}}, nil, zap.NewNop(), DefaultOptions())
	option, err := optimizer.RunStrategy(context.Background(), BalancedStrategy())
	require.NoError(t, err)
	require.Equal(t, int64(1), option.WeekSchedule[0].Children[0].CampMatch.Camp.ID)

	return optimizer, option
}

func TestSwap_ReplacesCampAndUpdatesTotals(t *testing.T) {
	optimizer, original := swapFixture(t)

	updated, err := optimizer.Swap(context.Background(), original, 0, 0, 2)
	require.NoError(t, err)

	match := updated.WeekSchedule[0].Children[0].CampMatch
	require.NotNil(t, match)
	assert.Equal(t, int64(2), match.Camp.ID)

	// 100 base + 20 price + 25 diversity, the replaced camp no longer counts as used
	assert.InDelta(t, 145.0, match.Score, 1e-9)
	assert.Equal(t, 150.0, updated.TotalCost)
	assert.InDelta(t, 145.0, updated.TotalScore, 1e-9)
	assert.Equal(t, 0, updated.MatchSummary.CategoryMatch)
	assert.Equal(t, 1, updated.MatchSummary.GradeMatch)
	assert.Equal(t, 1, updated.MatchSummary.TotalWeeksCovered)
	assert.Equal(t, original.ScheduleID, updated.ScheduleID)

	// Original untouched
	assert.Equal(t, int64(1), original.WeekSchedule[0].Children[0].CampMatch.Camp.ID)
	assert.Equal(t, 200.0, original.TotalCost)
	assert.InDelta(t, 167.5, original.TotalScore, 1e-9)
	assert.Equal(t, 1, original.MatchSummary.CategoryMatch)
}

func TestSwap_FillsEmptySlot(t *testing.T) {
	optimizer, original := swapFixture(t)

	empty := original.Clone()
	empty.WeekSchedule[0].Children[0].CampMatch = nil
	empty.TotalCost = 0
	empty.TotalScore = 0
	empty.MatchSummary = MatchSummary{}

	updated, err := optimizer.Swap(context.Background(), empty, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.TotalCost)
	assert.InDelta(t, 167.5, updated.TotalScore, 1e-9)
	assert.Equal(t, 1, updated.MatchSummary.TotalWeeksCovered)
}

func TestSwap_Errors(t *testing.T) {
	optimizer, original := swapFixture(t)

	tests := []struct {
		name    string
		weekID  int
		childID int
		campID  int64
		target  error
	}{
		{name: "unknown week", weekID: 5, childID: 0, campID: 2, target: ErrWeekNotFound},
		{name: "unknown child", weekID: 0, childID: 3, campID: 2, target: ErrChildNotFound},
		{name: "unknown camp", weekID: 0, childID: 0, campID: 99, target: ErrCampNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := optimizer.Swap(context.Background(), original, tt.weekID, tt.childID, tt.campID)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestSwap_IneligibleCamp(t *testing.T) {
	teens := model.Camp{ID: 3, Price: 100, MinGrade: 9, MaxGrade: 12, Sessions: firstWeekSession(3, "")}
	robotics := stemCamp(1)
	robotics.Sessions = firstWeekSession(1, "")

	form := model.FormData{Children: []model.Child{stemLover()}, Weeks: firstWeekOnly()}
	optimizer := NewOptimizer(Input{Form: form, Camps: []model.Camp{robotics, teens}}, nil, zap.NewNop(), DefaultOptions())

	option, err := optimizer.RunStrategy(context.Background(), BalancedStrategy())
	require.NoError(t, err)

	_, err = optimizer.Swap(context.Background(), option, 0, 0, 3)
	assert.ErrorIs(t, err, ErrCampIneligible)
}

func TestSwap_KeepsFocusMultiplier(t *testing.T) {
	optimizer, _ := swapFixture(t)

	activity, err := optimizer.RunStrategy(context.Background(), ActivityStrategy())
	require.NoError(t, err)

	updated, err := optimizer.Swap(context.Background(), activity, 0, 0, 1)
	require.NoError(t, err)

	// Activity focus with one interest match: x1.1
	assert.InDelta(t, 167.5*1.1, updated.WeekSchedule[0].Children[0].CampMatch.Score, 1e-9)
}

func TestFindAlternatives(t *testing.T) {
	optimizer, _ := swapFixture(t)

	alternatives, err := optimizer.FindAlternatives(context.Background(), 0, 0, 0)
	require.NoError(t, err)
	require.Len(t, alternatives, 2)
	assert.Equal(t, int64(1), alternatives[0].Camp.ID)
	assert.Equal(t, int64(2), alternatives[1].Camp.ID)
	assert.GreaterOrEqual(t, alternatives[0].Score, alternatives[1].Score)

	limited, err := optimizer.FindAlternatives(context.Background(), 0, 0, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFindAlternatives_Errors(t *testing.T) {
	optimizer, _ := swapFixture(t)

	_, err := optimizer.FindAlternatives(context.Background(), 42, 0, 5)
	assert.ErrorIs(t, err, ErrWeekNotFound)

	_, err = optimizer.FindAlternatives(context.Background(), 0, -1, 5)
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestFindAlternatives_LimitAboveLocationCandidates(t *testing.T) {
	var camps []model.Camp
	for id := int64(1); id <= 12; id++ {
		camp := stemCamp(id)
		camp.Sessions = firstWeekSession(id, "")
		camps = append(camps, camp)
	}

	form := model.FormData{Children: []model.Child{stemLover()}, Weeks: firstWeekOnly()}
	optimizer := NewOptimizer(Input{Form: form, Camps: camps}, nil, zap.NewNop(), DefaultOptions())

	alternatives, err := optimizer.FindAlternatives(context.Background(), 0, 0, 12)
	require.NoError(t, err)
	assert.Len(t, alternatives, 12)

	alternatives, err = optimizer.FindAlternatives(context.Background(), 0, 0, 0)
	require.NoError(t, err)
	assert.Len(t, alternatives, 5)
}
