package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// DefaultDistanceMiles is used when the form distance cannot be parsed
const DefaultDistanceMiles = 10

var (
	nonDollarChars = regexp.MustCompile(`[^0-9.]`)
	leadingFloat   = regexp.MustCompile(`^\d*\.?\d*`)
	leadingInt     = regexp.MustCompile(`^[+-]?\d+`)
)

// BuildCriteria derives the filter criteria from submitted form data
func BuildCriteria(form model.FormData) FilterCriteria {
	gradeRanges := make([]GradeRange, len(form.Children))
	var categories []model.Interest
	for i, child := range form.Children {
		grade := GradeToNumber(child.Grade)
		gradeRanges[i] = GradeRange{Min: grade, Max: grade}
		categories = append(categories, child.Interests...)
	}

	return FilterCriteria{
		GradeRanges:        gradeRanges,
		Location:           form.Location,
		Distance:           ParseDistance(form.Distance),
		MaxWeeklyCost:      ParseDollarAmount(form.WeeklyBudget),
		TotalBudget:        ParseDollarAmount(form.Budget),
		TimePreference:     form.TimePreference,
		Categories:         categories,
		RequiredActivities: form.RequiredActivities,
		PriorityWeights:    BuildPriorityWeights(form.Priorities),
		Transportation:     form.Transportation,
	}
}

// BuildPriorityWeights gives the key at position i of n the weight n-i
// Unknown keys are ignored
func BuildPriorityWeights(priorities []string) PriorityWeights {
	var weights PriorityWeights
	n := len(priorities)
	for i, key := range priorities {
		weight := n - i
		switch key {
		case PriorityPrice:
			weights.Price = weight
		case PriorityLocation:
			weights.Location = weight
		case PriorityActivities:
			weights.Activities = weight
		case PrioritySchedule:
			weights.Schedule = weight
		}
	}
	return weights
}

// ParseDollarAmount strips everything but digits and '.' and parses the rest
// Returns nil when nothing parsable remains
func ParseDollarAmount(amount string) *float64 {
	if amount == "" {
		return nil
	}

	numeric := nonDollarChars.ReplaceAllString(amount, "")
	prefix := leadingFloat.FindString(numeric)
	if prefix == "" || prefix == "." {
		return nil
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(prefix, "."), 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseDistance reads the leading integer of the distance string
// Unparsable values fall back to the default radius; 0 disables radius filtering
func ParseDistance(distance string) int {
	prefix := leadingInt.FindString(strings.TrimSpace(distance))
	if prefix == "" {
		return DefaultDistanceMiles
	}

	value, err := strconv.Atoi(prefix)
	if err != nil {
		return DefaultDistanceMiles
	}
	return value
}
