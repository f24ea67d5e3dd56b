package db

import (
	"context"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
	"github.com/wolfxl/campbuddy/pkg/geo"
)

// CatalogStore defines the interface for camp catalog operations
type CatalogStore interface {
	GetCamps(ctx context.Context) ([]model.Camp, error)
	UpsertCamps(ctx context.Context, camps []model.Camp) error
}

// ZipcodeStore defines the interface for zip code centroid operations
type ZipcodeStore interface {
	GetZipcode(ctx context.Context, zip string) (*geo.Point, error)
	UpsertZipcodes(ctx context.Context, zipcodes []Zipcode) error
}

// PlanStore defines the interface for persisted plans
type PlanStore interface {
	InsertPlan(ctx context.Context, plan *Plan) error
	GetPlan(ctx context.Context, id string) (*Plan, error)
	UpdatePlanOptions(ctx context.Context, id string, options []planner.ScheduleOption) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	CatalogStore
	ZipcodeStore
	PlanStore
}
