package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

func TestDatesOverlap(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 string
		expected       bool
	}{
		{"contained", "2025-06-03", "2025-06-09", "2025-06-04", "2025-06-06", true},
		{"ends on start day", "2025-05-27", "2025-06-03", "2025-06-03", "2025-06-09", true},
		{"disjoint before", "2025-05-20", "2025-05-26", "2025-06-03", "2025-06-09", false},
		{"disjoint after", "2025-06-10", "2025-06-16", "2025-06-03", "2025-06-09", false},
		{"timestamp input", "2025-06-05T09:00:00Z", "2025-06-05T15:00:00Z", "2025-06-03", "2025-06-09", true},
		{"unparsable fails open", "soon", "later", "2025-06-03", "2025-06-09", true},
		{"empty fails open", "", "", "2025-06-03", "2025-06-09", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DatesOverlap(tt.a1, tt.a2, tt.b1, tt.b2))
			// Symmetric
			assert.Equal(t, tt.expected, DatesOverlap(tt.b1, tt.b2, tt.a1, tt.a2))
		})
	}
}

func TestFindMatchingSession(t *testing.T) {
	week := model.Week{ID: 1, StartDate: "2025-06-10", EndDate: "2025-06-16"}
	sessions := []model.Session{
		{ID: 1, StartDate: "2025-06-02", EndDate: "2025-06-06"},
		{ID: 2, StartDate: "2025-06-09", EndDate: "2025-06-13"},
		{ID: 3, StartDate: "2025-06-16", EndDate: "2025-06-20"},
	}

	session, dateMatch := FindMatchingSession(sessions, week, false)
	require.NotNil(t, session)
	assert.Equal(t, int64(2), session.ID)
	assert.True(t, dateMatch)
}

func TestFindMatchingSession_LenientFallsBackToFirst(t *testing.T) {
	week := model.Week{ID: 7, StartDate: "2025-07-22", EndDate: "2025-07-28"}
	sessions := []model.Session{
		{ID: 10, StartDate: "2025-06-02", EndDate: "2025-06-06"},
		{ID: 11, StartDate: "2025-06-09", EndDate: "2025-06-13"},
	}

	session, dateMatch := FindMatchingSession(sessions, week, false)
	require.NotNil(t, session)
	assert.Equal(t, int64(10), session.ID)
	assert.False(t, dateMatch)
}

func TestFindMatchingSession_StrictReturnsNil(t *testing.T) {
	week := model.Week{ID: 7, StartDate: "2025-07-22", EndDate: "2025-07-28"}
	sessions := []model.Session{{ID: 10, StartDate: "2025-06-02", EndDate: "2025-06-06"}}

	session, dateMatch := FindMatchingSession(sessions, week, true)
	assert.Nil(t, session)
	assert.False(t, dateMatch)
}

func TestFindMatchingSession_Empty(t *testing.T) {
	session, _ := FindMatchingSession(nil, model.Week{}, false)
	assert.Nil(t, session)
}

func TestFallbackSessions(t *testing.T) {
	camp := model.Camp{ID: 5, Locations: []string{"Frisco Rec Center", "Plano Library"}}

	sessions := FallbackSessions(camp, DefaultWeeks(), 3)
	require.Len(t, sessions, 3)

	assert.Equal(t, int64(501), sessions[0].ID)
	assert.Equal(t, int64(503), sessions[2].ID)
	assert.Equal(t, int64(5), sessions[0].CampID)
	assert.Equal(t, "2025-06-03", sessions[0].StartDate)
	assert.Equal(t, "2025-06-09", sessions[0].EndDate)
	assert.Equal(t, "2025-06-17", sessions[2].StartDate)
	assert.Equal(t, "Frisco Rec Center", sessions[0].Location)
	assert.Equal(t, "Mon-Fri", sessions[0].Days)
	assert.Equal(t, "9:00 AM", sessions[0].StartTime)
	assert.Equal(t, "3:00 PM", sessions[0].EndTime)
}

func TestFallbackSessions_NoLocation(t *testing.T) {
	sessions := FallbackSessions(model.Camp{ID: 1}, DefaultWeeks(), 1)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Location TBD", sessions[0].Location)
}

func TestFallbackSessions_NoWeeks(t *testing.T) {
	assert.Nil(t, FallbackSessions(model.Camp{ID: 1}, nil, 3))
	assert.Nil(t, FallbackSessions(model.Camp{ID: 1}, DefaultWeeks(), 0))
}

func TestWithFallbackSessions(t *testing.T) {
	camps := []model.Camp{
		{ID: 1, Sessions: []model.Session{{ID: 99}}},
		{ID: 2},
	}

	result, synthesized := WithFallbackSessions(camps, DefaultWeeks(), 3)
	assert.Equal(t, 1, synthesized)
	assert.Len(t, result[0].Sessions, 1)
	assert.Len(t, result[1].Sessions, 3)

	// Input untouched
	assert.Empty(t, camps[1].Sessions)
}
