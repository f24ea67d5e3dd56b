package services

import (
	"context"
	"fmt"

	"github.com/wolfxl/campbuddy/internal/config"
	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
	"github.com/wolfxl/campbuddy/pkg/db"
)

// mockStore implements the catalog and plan store interfaces in memory
type mockStore struct {
	camps []model.Camp
	plans map[string]*db.Plan

	upserted       []model.Camp
	updatedOptions []planner.ScheduleOption

	getCampsErr   error
	insertPlanErr error
	updatePlanErr error
	upsertErr     error
	panicOnCamps  bool
}

func newMockStore(camps ...model.Camp) *mockStore {
	return &mockStore{camps: camps, plans: make(map[string]*db.Plan)}
}

func (m *mockStore) GetCamps(ctx context.Context) ([]model.Camp, error) {
	if m.panicOnCamps {
		panic("catalog corrupted")
	}
	if m.getCampsErr != nil {
		return nil, m.getCampsErr
	}
	return m.camps, nil
}

func (m *mockStore) UpsertCamps(ctx context.Context, camps []model.Camp) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, camps...)
	return nil
}

func (m *mockStore) InsertPlan(ctx context.Context, plan *db.Plan) error {
	if m.insertPlanErr != nil {
		return m.insertPlanErr
	}
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockStore) GetPlan(ctx context.Context, id string) (*db.Plan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %s: %w", id, db.ErrNotFound)
	}
	return plan, nil
}

func (m *mockStore) UpdatePlanOptions(ctx context.Context, id string, options []planner.ScheduleOption) error {
	if m.updatePlanErr != nil {
		return m.updatePlanErr
	}
	if _, ok := m.plans[id]; !ok {
		return db.ErrNotFound
	}
	m.updatedOptions = options
	return nil
}

// mockCatalogSource implements CatalogSource
type mockCatalogSource struct {
	camps []model.Camp
	err   error
	cfg   config.CatalogConfig
}

func (m *mockCatalogSource) ListCatalog(ctx context.Context, cfg config.CatalogConfig) ([]model.Camp, error) {
	m.cfg = cfg
	if m.err != nil {
		return nil, m.err
	}
	return m.camps, nil
}

// mockEmailClient implements EmailClient
type mockEmailClient struct {
	to      string
	subject string
	body    string
	err     error
}

func (m *mockEmailClient) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func testCamps() []model.Camp {
	return []model.Camp{
		{ID: 1, Name: "Robotics Lab", Price: 200, MinGrade: 1, MaxGrade: 5, Categories: []string{"STEM"}, Locations: []string{"Frisco Community Center"}},
		{ID: 2, Name: "Art Studio", Price: 150, MinGrade: 1, MaxGrade: 5, Categories: []string{"Art"}, Locations: []string{"Plano Library"}},
		{ID: 3, Name: "Chess Club", Price: 100, MinGrade: 1, MaxGrade: 8, Categories: []string{"Chess"}},
		{ID: 4, Name: "Teen Leadership", Price: 300, MinGrade: 9, MaxGrade: 12, Categories: []string{"Leadership"}},
	}
}

func testForm() model.FormData {
	return model.FormData{
		Children: []model.Child{{
			Name:      "Ava",
			Grade:     "3rd Grade",
			Interests: []model.Interest{{Name: "STEM", Strength: model.StrengthLove}},
		}},
		Weeks: []bool{true, false, false, false, false, false, false, false},
	}
}
