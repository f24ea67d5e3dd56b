package model

import "strings"

// Strength is how keen a child is on an interest
type Strength string

const (
	StrengthTry  Strength = "try"
	StrengthLike Strength = "like"
	StrengthLove Strength = "love"
)

// IsValid reports whether the strength is one of the known tiers
func (s Strength) IsValid() bool {
	return s == StrengthTry || s == StrengthLike || s == StrengthLove
}

// Interest is a normalized child interest
type Interest struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Strength Strength `json:"strength" yaml:"strength" toml:"strength"`
}

// Child represents a child being planned for
type Child struct {
	Name      string     `json:"name"`
	Grade     string     `json:"grade"`
	Interests []Interest `json:"interests"`
}

// LocationCoords holds stored coordinates for one of a camp's locations
type LocationCoords struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Camp represents a camp from the catalog
type Camp struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Organization   string           `json:"organization"`
	Description    string           `json:"description,omitempty"`
	Price          float64          `json:"price_numeric"`
	MinGrade       int              `json:"min_grade"`
	MaxGrade       int              `json:"max_grade"`
	GradeRange     string           `json:"grade_range"`
	Categories     []string         `json:"categories"`
	Locations      []string         `json:"locations"`
	LocationCoords []LocationCoords `json:"location_coords,omitempty"`
	Sessions       []Session        `json:"sessions,omitempty"`
}

// CoordsFor returns the stored coordinates for a named location
// Zero coordinates are treated as missing
func (c *Camp) CoordsFor(locationName string) (LocationCoords, bool) {
	for _, coords := range c.LocationCoords {
		if coords.Name == locationName && coords.Latitude != 0 && coords.Longitude != 0 {
			return coords, true
		}
	}
	return LocationCoords{}, false
}

// HasCategory reports whether the camp has the category, ignoring case
func (c *Camp) HasCategory(name string) bool {
	for _, category := range c.Categories {
		if strings.EqualFold(category, name) {
			return true
		}
	}
	return false
}

// Session is a dated offering of a camp at one location
type Session struct {
	ID        int64  `json:"id"`
	CampID    int64  `json:"camp_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Days      string `json:"days"`
	Location  string `json:"location"`
}

// Week is one selectable week of the summer calendar
type Week struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	StartDate string `json:"start"`
	EndDate   string `json:"end"`
}

// FormData is the planner form as submitted by a family
type FormData struct {
	Children           []Child  `json:"children"`
	Weeks              []bool   `json:"weeks"`
	TimePreference     string   `json:"timePreference"`
	Location           string   `json:"location"`
	Distance           string   `json:"distance"`
	Budget             string   `json:"budget"`
	WeeklyBudget       string   `json:"weeklyBudget"`
	Transportation     string   `json:"transportation"`
	Priorities         []string `json:"priorities"`
	RequiredActivities []string `json:"requiredActivities"`
}

// SelectedWeekIndices returns the indices of the selected weeks in order
func (f *FormData) SelectedWeekIndices() []int {
	var indices []int
	for i, selected := range f.Weeks {
		if selected {
			indices = append(indices, i)
		}
	}
	return indices
}
