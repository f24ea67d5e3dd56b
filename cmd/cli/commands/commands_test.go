package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/internal/config"
	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
	"github.com/wolfxl/campbuddy/pkg/db"
	"github.com/wolfxl/campbuddy/pkg/formfile"
	"github.com/wolfxl/campbuddy/pkg/geo"
)

// mockDatabase implements db.Database and Migrator in memory
type mockDatabase struct {
	camps      []model.Camp
	plans      map[string]*db.Plan
	migrations []string
}

func newMockDatabase() *mockDatabase {
	return &mockDatabase{
		camps: []model.Camp{
			{ID: 1, Name: "Robotics Lab", Price: 200, MinGrade: 1, MaxGrade: 5, Categories: []string{"STEM"}, Locations: []string{"Frisco Community Center"}},
			{ID: 2, Name: "Art Studio", Price: 150, MinGrade: 1, MaxGrade: 5, Categories: []string{"Art"}},
		},
		plans: make(map[string]*db.Plan),
	}
}

func (m *mockDatabase) GetCamps(ctx context.Context) ([]model.Camp, error) { return m.camps, nil }

func (m *mockDatabase) UpsertCamps(ctx context.Context, camps []model.Camp) error {
	m.camps = camps
	return nil
}

func (m *mockDatabase) GetZipcode(ctx context.Context, zip string) (*geo.Point, error) {
	return nil, nil
}

func (m *mockDatabase) UpsertZipcodes(ctx context.Context, zipcodes []db.Zipcode) error { return nil }

func (m *mockDatabase) InsertPlan(ctx context.Context, plan *db.Plan) error {
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockDatabase) GetPlan(ctx context.Context, id string) (*db.Plan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %s: %w", id, db.ErrNotFound)
	}
	return plan, nil
}

func (m *mockDatabase) UpdatePlanOptions(ctx context.Context, id string, options []planner.ScheduleOption) error {
	plan, ok := m.plans[id]
	if !ok {
		return db.ErrNotFound
	}
	plan.Options = options
	return nil
}

func (m *mockDatabase) RunMigrations(ctx context.Context) ([]string, error) {
	applied := m.migrations
	m.migrations = nil
	return applied, nil
}

const testForm = `
children:
  - name: Ava
    grade: 3rd Grade
    interests: [STEM]
weeks: [true, false, false, false, false, false, false, false]
`

func testApp(t *testing.T) (*AppContext, *mockDatabase) {
	t.Helper()
	database := newMockDatabase()
	cfg := config.Defaults()
	return &AppContext{
		Env:      "test",
		Cfg:      &cfg,
		Database: database,
		Migrator: database,
		Logger:   zap.NewNop(),
		Ctx:      context.Background(),
	}, database
}

func writeForm(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testForm), 0644))
	return path
}

func TestPlanCmd(t *testing.T) {
	app, database := testApp(t)

	var out bytes.Buffer
	cmd := PlanCmd(app)
	cmd.SetArgs([]string{writeForm(t)})
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	require.Len(t, database.plans, 1)
	for id := range database.plans {
		assert.Contains(t, out.String(), "Plan ID: "+id)
	}
	assert.Contains(t, out.String(), "✓ Plan created!")
	assert.Contains(t, out.String(), "Balanced")
	assert.Contains(t, out.String(), "Robotics Lab (#1)")
}

func TestPlanCmd_JSON(t *testing.T) {
	app, _ := testApp(t)

	var out bytes.Buffer
	cmd := PlanCmd(app)
	cmd.SetArgs([]string{writeForm(t), "--json"})
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	var plan db.Plan
	require.NoError(t, json.Unmarshal(out.Bytes(), &plan))
	require.Len(t, plan.Options, 3)
	assert.Equal(t, int64(1), plan.Options[0].WeekSchedule[0].Children[0].CampMatch.Camp.ID)
}

func TestPlanCmd_MissingForm(t *testing.T) {
	app, _ := testApp(t)

	cmd := PlanCmd(app)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestPlanCmd_InvalidForm(t *testing.T) {
	app, database := testApp(t)

	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte("children:\n  - name: Ava\nweeks: []\n"), 0644))

	cmd := PlanCmd(app)
	cmd.SetArgs([]string{path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, formfile.ErrInvalidForm)
	assert.Contains(t, err.Error(), "select a grade level for: Ava")
	assert.Empty(t, database.plans)
}

func TestSwapAndAlternativesCmd(t *testing.T) {
	app, database := testApp(t)

	plan := PlanCmd(app)
	plan.SetArgs([]string{writeForm(t)})
	plan.SetOut(&bytes.Buffer{})
	require.NoError(t, plan.Execute())

	var saved *db.Plan
	for _, p := range database.plans {
		saved = p
	}
	require.NotNil(t, saved)

	var out bytes.Buffer
	alternatives := AlternativesCmd(app)
	alternatives.SetArgs([]string{saved.ID, "1", "1", "--limit", "1"})
	alternatives.SetOut(&out)
	require.NoError(t, alternatives.Execute())
	assert.Contains(t, out.String(), "Robotics Lab (#1)")
	assert.NotContains(t, out.String(), "Art Studio")

	out.Reset()
	swap := SwapCmd(app)
	swap.SetArgs([]string{saved.ID, saved.Options[0].ScheduleID, "1", "1", "2"})
	swap.SetOut(&out)
	require.NoError(t, swap.Execute())
	assert.Contains(t, out.String(), "✓ Camp swapped!")
	assert.Contains(t, out.String(), "Art Studio (#2)")
	assert.Equal(t, int64(2), saved.Options[0].WeekSchedule[0].Children[0].CampMatch.Camp.ID)
}

func TestMigrateCmd(t *testing.T) {
	app, database := testApp(t)
	database.migrations = []string{"001_create_catalog.sql"}

	var out bytes.Buffer
	cmd := MigrateCmd(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "✓ Applied 1 migrations:")
	assert.Contains(t, out.String(), "001_create_catalog.sql")

	out.Reset()
	cmd = MigrateCmd(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Database is up to date.\n", out.String())
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		week    string
		child   string
		wantW   int
		wantC   int
		wantErr bool
	}{
		{name: "first slot", week: "1", child: "1", wantW: 0, wantC: 0},
		{name: "later slot", week: "8", child: "3", wantW: 7, wantC: 2},
		{name: "zero week", week: "0", child: "1", wantErr: true},
		{name: "bad child", week: "1", child: "two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c, err := parseSlot(tt.week, tt.child)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantC, c)
		})
	}
}

func TestSessionLabel(t *testing.T) {
	assert.Equal(t, "-", sessionLabel(nil))
	assert.Equal(t, "2025-06-03 to 2025-06-09", sessionLabel(&model.Session{StartDate: "2025-06-03", EndDate: "2025-06-09"}))
	assert.Equal(t, "2025-06-03 to 2025-06-09 @ Library", sessionLabel(&model.Session{StartDate: "2025-06-03", EndDate: "2025-06-09", Location: "Library"}))
}

func TestRenderOption_EmptySlot(t *testing.T) {
	var out bytes.Buffer
	option := planner.ScheduleOption{
		ScheduleID:        "s-1",
		OptimizationFocus: "Balanced",
		WeekSchedule: []planner.WeekSchedule{{
			WeekID:   0,
			Label:    "June 3 - June 9",
			Children: []planner.ChildSchedule{{ChildName: "Ava"}},
		}},
	}

	require.NoError(t, renderOption(&out, option))
	assert.Contains(t, out.String(), "Balanced (schedule s-1)")
	assert.Contains(t, out.String(), "No camp found")
	assert.Contains(t, out.String(), "1: June 3 - June 9")
}
