package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// gradeLevels maps grade labels onto the ordinal grade scale
var gradeLevels = map[string]int{
	"Pre-K":        -1,
	"Kindergarten": 0,
	"1st Grade":    1,
	"2nd Grade":    2,
	"3rd Grade":    3,
	"4th Grade":    4,
	"5th Grade":    5,
	"6th Grade":    6,
	"7th Grade":    7,
	"8th Grade":    8,
	"9th Grade":    9,
	"10th Grade":   10,
	"11th Grade":   11,
	"12th Grade":   12,
}

// UnknownGrade is returned for empty or unrecognised grade labels
const UnknownGrade = -1

// GradeToNumber converts a grade label to its ordinal value
func GradeToNumber(label string) int {
	if grade, ok := gradeLevels[label]; ok {
		return grade
	}
	return UnknownGrade
}

// Default grade bounds for camps with no usable grade data
const (
	DefaultMinGrade = 0
	DefaultMaxGrade = 12
)

var (
	gradeRangeStart = regexp.MustCompile(`(?i)^\s*(pre-?k|k|\d+)`)
	gradeRangeEnd   = regexp.MustCompile(`(?i)\b(pre-?k|k|\d+)(?:st|nd|rd|th)?\s*$`)
)

// GradeBounds derives min and max grades from free-text ranges such as "K-5", "Pre-K" or "1st-5th".
// Bounds that cannot be read default to DefaultMinGrade and DefaultMaxGrade.
func GradeBounds(gradeRange string) (int, int) {
	minGrade, maxGrade := DefaultMinGrade, DefaultMaxGrade
	if m := gradeRangeStart.FindStringSubmatch(gradeRange); m != nil {
		minGrade = gradeToken(m[1], DefaultMinGrade)
	}
	if m := gradeRangeEnd.FindStringSubmatch(gradeRange); m != nil {
		maxGrade = gradeToken(m[1], DefaultMaxGrade)
	}
	return minGrade, maxGrade
}

func gradeToken(token string, fallback int) int {
	switch strings.ToLower(token) {
	case "pre-k", "prek":
		return -1
	case "k":
		return 0
	}
	n, err := strconv.Atoi(token)
	if err != nil || n > 12 {
		return fallback
	}
	return n
}

// ParseInterests normalizes a raw interest list into tagged interests.
//
// Accepted item shapes:
//   - string: promoted to strength "like"
//   - model.Interest: passed through
//   - map with "name" and optional "strength" keys: passed through as-is
//
// Order is preserved and duplicates are kept. Items of any other shape are skipped.
func ParseInterests(raw []any) []model.Interest {
	interests := make([]model.Interest, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			interests = append(interests, model.Interest{Name: v, Strength: model.StrengthLike})
		case model.Interest:
			interests = append(interests, v)
		case map[string]any:
			name, ok := v["name"].(string)
			if !ok {
				continue
			}
			interests = append(interests, model.Interest{Name: name, Strength: model.Strength(stringValue(v["strength"]))})
		case map[any]any:
			name, ok := v["name"].(string)
			if !ok {
				continue
			}
			interests = append(interests, model.Interest{Name: name, Strength: model.Strength(stringValue(v["strength"]))})
		}
	}
	return interests
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// strengthMultiplier returns the interest multiplier for a strength
// Anything other than love or like counts as try
func strengthMultiplier(s model.Strength) float64 {
	switch s {
	case model.StrengthLove:
		return 1.5
	case model.StrengthLike:
		return 1.2
	default:
		return 1.0
	}
}
