package db

import (
	"errors"
	"time"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Plan is a persisted planning run: the form that was submitted and the options built for it
type Plan struct {
	ID          string                   `json:"id"`
	CreatedAt   time.Time                `json:"createdAt"`
	Form        model.FormData           `json:"form"`
	Options     []planner.ScheduleOption `json:"options"`
	Suggestions []model.Camp             `json:"suggestions"`
}

// Zipcode is a zip code centroid
type Zipcode struct {
	Zip       string
	City      string
	State     string
	Latitude  float64
	Longitude float64
}
