package sheetsclient

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/wolfxl/campbuddy/internal/config"
	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
)

// CampRow is one row of the camps tab
type CampRow struct {
	ID           int64    `sheet:"Camp ID" validate:"gt=0"`
	Name         string   `sheet:"Name" validate:"required"`
	Organization string   `sheet:"Organization"`
	Description  string   `sheet:"Description"`
	Price        string   `sheet:"Price"`
	MinGrade     *int     `sheet:"Min Grade" validate:"omitempty,min=-1,max=12"`
	MaxGrade     *int     `sheet:"Max Grade" validate:"omitempty,min=-1,max=12"`
	GradeRange   string   `sheet:"Grade Range"`
	Categories   []string `sheet:"Categories"`
}

// LocationRow is one row of the locations tab
type LocationRow struct {
	CampID    int64   `sheet:"Camp ID" validate:"gt=0"`
	Name      string  `sheet:"Location" validate:"required"`
	Latitude  float64 `sheet:"Latitude" validate:"min=-90,max=90"`
	Longitude float64 `sheet:"Longitude" validate:"min=-180,max=180"`
}

// SessionRow is one row of the sessions tab
type SessionRow struct {
	ID        int64  `sheet:"Session ID" validate:"gt=0"`
	CampID    int64  `sheet:"Camp ID" validate:"gt=0"`
	StartDate string `sheet:"Start Date" validate:"required,datetime=2006-01-02"`
	EndDate   string `sheet:"End Date" validate:"required,datetime=2006-01-02"`
	StartTime string `sheet:"Start Time"`
	EndTime   string `sheet:"End Time"`
	Days      string `sheet:"Days"`
	Location  string `sheet:"Location"`
}

var validate = validator.New()

// ListCatalog reads the camps, locations and sessions tabs and assembles camps
func (c *Client) ListCatalog(ctx context.Context, cfg config.CatalogConfig) ([]model.Camp, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("catalog spreadsheet id is not configured")
	}

	campValues, err := c.GetValues(ctx, cfg.SpreadsheetID, cfg.CampsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get camp data: %w", err)
	}
	locationValues, err := c.GetValues(ctx, cfg.SpreadsheetID, cfg.LocationsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get location data: %w", err)
	}
	sessionValues, err := c.GetValues(ctx, cfg.SpreadsheetID, cfg.SessionsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get session data: %w", err)
	}

	return ParseCatalog(campValues, locationValues, sessionValues)
}

// ParseCatalog decodes and validates the three catalog tabs and joins them by camp id.
// Locations and sessions referring to unknown camps are rejected.
// Blank grade cells are filled from the grade range text.
func ParseCatalog(campValues, locationValues, sessionValues [][]interface{}) ([]model.Camp, error) {
	campRows, err := decodeValid[CampRow]("camps", campValues)
	if err != nil {
		return nil, err
	}
	locationRows, err := decodeValid[LocationRow]("locations", locationValues)
	if err != nil {
		return nil, err
	}
	sessionRows, err := decodeValid[SessionRow]("sessions", sessionValues)
	if err != nil {
		return nil, err
	}

	camps := make([]model.Camp, 0, len(campRows))
	index := make(map[int64]int, len(campRows))
	for i, row := range campRows {
		if _, dup := index[row.ID]; dup {
			return nil, fmt.Errorf("duplicate camp id %d", row.ID)
		}

		minGrade, maxGrade := planner.GradeBounds(row.GradeRange)
		if row.MinGrade != nil {
			minGrade = *row.MinGrade
		}
		if row.MaxGrade != nil {
			maxGrade = *row.MaxGrade
		}
		if maxGrade < minGrade {
			return nil, fmt.Errorf("invalid camps entry %d: max grade %d is below min grade %d", i+1, maxGrade, minGrade)
		}

		price := 0.0
		if p := planner.ParseDollarAmount(row.Price); p != nil {
			price = *p
		}

		index[row.ID] = len(camps)
		camps = append(camps, model.Camp{
			ID:           row.ID,
			Name:         row.Name,
			Organization: row.Organization,
			Description:  row.Description,
			Price:        price,
			MinGrade:     minGrade,
			MaxGrade:     maxGrade,
			GradeRange:   row.GradeRange,
			Categories:   row.Categories,
		})
	}

	for _, row := range locationRows {
		i, ok := index[row.CampID]
		if !ok {
			return nil, fmt.Errorf("location %q refers to unknown camp %d", row.Name, row.CampID)
		}
		camps[i].Locations = append(camps[i].Locations, row.Name)
		if row.Latitude != 0 && row.Longitude != 0 {
			camps[i].LocationCoords = append(camps[i].LocationCoords, model.LocationCoords{
				Name:      row.Name,
				Latitude:  row.Latitude,
				Longitude: row.Longitude,
			})
		}
	}

	for _, row := range sessionRows {
		i, ok := index[row.CampID]
		if !ok {
			return nil, fmt.Errorf("session %d refers to unknown camp %d", row.ID, row.CampID)
		}
		if row.EndDate < row.StartDate {
			return nil, fmt.Errorf("session %d ends before it starts", row.ID)
		}
		camps[i].Sessions = append(camps[i].Sessions, model.Session{
			ID:        row.ID,
			CampID:    row.CampID,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Days:      row.Days,
			Location:  row.Location,
		})
	}

	return camps, nil
}

func decodeValid[T any](tab string, values [][]interface{}) ([]T, error) {
	rows, err := DecodeRows[T](values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tab, err)
	}
	for i := range rows {
		if err := validate.Struct(rows[i]); err != nil {
			return nil, fmt.Errorf("invalid %s entry %d: %w", tab, i+1, err)
		}
	}
	return rows, nil
}
