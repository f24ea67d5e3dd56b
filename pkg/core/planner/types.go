package planner

import (
	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// Focus is the optimization focus a schedule is built under
type Focus string

const (
	FocusBalanced Focus = "Balanced"
	FocusBudget   Focus = "Budget-Friendly"
	FocusActivity Focus = "Activity-Optimized"
	FocusLocation Focus = "Location-Optimized"
)

// Priority keys accepted in the form's ordered priority list
const (
	PriorityPrice      = "price"
	PriorityLocation   = "location"
	PriorityActivities = "activities"
	PrioritySchedule   = "schedule"
)

// GradeRange is the numeric grade window for one child
type GradeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PriorityWeights holds the weight derived for each priority key
// Keys missing from the ordered list have weight 0
type PriorityWeights struct {
	Price      int `json:"price"`
	Location   int `json:"location"`
	Activities int `json:"activities"`
	Schedule   int `json:"schedule"`
}

// FilterCriteria is the structured constraint set derived from a form
type FilterCriteria struct {
	GradeRanges        []GradeRange     `json:"gradeRange"`
	Location           string           `json:"location"`
	Distance           int              `json:"distance"`
	MaxWeeklyCost      *float64         `json:"maxWeeklyCost"`
	TotalBudget        *float64         `json:"totalBudget"`
	TimePreference     string           `json:"timePreference"`
	Categories         []model.Interest `json:"categories"`
	RequiredActivities []string         `json:"requiredActivities"`
	PriorityWeights    PriorityWeights  `json:"priorityWeights"`
	Transportation     string           `json:"transportation"`
}

// WeeklyBudget returns the weekly budget, or 0 when none was given
func (fc *FilterCriteria) WeeklyBudget() float64 {
	if fc.MaxWeeklyCost == nil {
		return 0
	}
	return *fc.MaxWeeklyCost
}

// CampMatch is one scored evaluation of a camp for a child in a week
type CampMatch struct {
	Camp                    model.Camp     `json:"camp"`
	Session                 *model.Session `json:"session"`
	Score                   float64        `json:"score"`
	MatchReasons            []string       `json:"matchReasons"`
	GradeMatch              bool           `json:"grade_match"`
	PriceMatch              bool           `json:"price_match"`
	LocationMatch           bool           `json:"location_match"`
	DateMatch               bool           `json:"date_match"`
	CategoryMatch           bool           `json:"category_match"`
	RequiredActivitiesMatch bool           `json:"required_activities_match"`
}

// clone returns a deep copy of the match
func (m *CampMatch) clone() *CampMatch {
	if m == nil {
		return nil
	}
	c := *m
	c.MatchReasons = append([]string(nil), m.MatchReasons...)
	if m.Session != nil {
		session := *m.Session
		c.Session = &session
	}
	return &c
}

// ChildSchedule is one child's assignment for a week
// A nil CampMatch means no eligible camp was found
type ChildSchedule struct {
	ChildID   int        `json:"childId"`
	ChildName string     `json:"childName"`
	Grade     string     `json:"grade"`
	CampMatch *CampMatch `json:"campMatch"`
}

// WeekSchedule holds every child's assignment for one selected week
type WeekSchedule struct {
	WeekID    int             `json:"weekId"`
	Label     string          `json:"label"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Children  []ChildSchedule `json:"children"`
}

// hasMatch reports whether any child received a camp this week
func (ws *WeekSchedule) hasMatch() bool {
	for _, child := range ws.Children {
		if child.CampMatch != nil {
			return true
		}
	}
	return false
}

// MatchSummary counts how many slots satisfied each soft-match category
type MatchSummary struct {
	GradeMatch              int `json:"grade_match"`
	PriceMatch              int `json:"price_match"`
	LocationMatch           int `json:"location_match"`
	CategoryMatch           int `json:"category_match"`
	RequiredActivitiesMatch int `json:"required_activities_match"`
	TotalWeeksCovered       int `json:"total_weeks_covered"`
}

// add applies a match's flags to the summary with the given sign (+1 or -1)
func (s *MatchSummary) add(m *CampMatch, sign int) {
	if m.GradeMatch {
		s.GradeMatch += sign
	}
	if m.PriceMatch {
		s.PriceMatch += sign
	}
	if m.LocationMatch {
		s.LocationMatch += sign
	}
	if m.CategoryMatch {
		s.CategoryMatch += sign
	}
	if m.RequiredActivitiesMatch {
		s.RequiredActivitiesMatch += sign
	}
}

// ScheduleOption is a complete week-by-week plan built under one focus
type ScheduleOption struct {
	ScheduleID        string         `json:"scheduleId"`
	OptimizationFocus string         `json:"optimizationFocus"`
	TotalScore        float64        `json:"totalScore"`
	TotalCost         float64        `json:"totalCost"`
	WeekSchedule      []WeekSchedule `json:"weekSchedule"`
	MatchSummary      MatchSummary   `json:"matchSummary"`
}

// Clone returns a deep copy of the schedule option
func (o *ScheduleOption) Clone() *ScheduleOption {
	c := *o
	c.WeekSchedule = make([]WeekSchedule, len(o.WeekSchedule))
	for i, week := range o.WeekSchedule {
		week.Children = make([]ChildSchedule, len(o.WeekSchedule[i].Children))
		for j, child := range o.WeekSchedule[i].Children {
			child.CampMatch = child.CampMatch.clone()
			week.Children[j] = child
		}
		c.WeekSchedule[i] = week
	}
	return &c
}

// UsedCampIDs returns the ids of every camp assigned anywhere in the schedule
func (o *ScheduleOption) UsedCampIDs() map[int64]bool {
	used := make(map[int64]bool)
	for _, week := range o.WeekSchedule {
		for _, child := range week.Children {
			if child.CampMatch != nil {
				used[child.CampMatch.Camp.ID] = true
			}
		}
	}
	return used
}
