package planner

import (
	"fmt"
	"strings"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

const (
	// valuePriceCeiling is the price under which Budget-Friendly plans call a camp good value
	// when no weekly budget was given
	valuePriceCeiling = 350.0

	ReasonReducedDiversity = "Fallback selection - reduced diversity, camp reused"
	ReasonOutsideRadius    = "Outside preferred location radius but otherwise good match"
	reasonNewExperience    = "New experience - adds variety to summer"
	reasonGoodValue        = "Great value for money"
)

// MatchReasons builds the user-facing explanation for a match.
// usedCamps may be nil, in which case no variety note is produced.
func MatchReasons(camp model.Camp, child model.Child, focus Focus, usedCamps map[int64]bool, criteria *FilterCriteria) []string {
	var reasons []string

	if gradeMatches(camp, child) {
		reasons = append(reasons, fmt.Sprintf("Perfect grade match (%s)", gradeRangeLabel(camp)))
	}

	var loved, liked, toTry []string
	for _, category := range camp.Categories {
		interest, ok := findInterest(child.Interests, category)
		if !ok {
			continue
		}
		switch interest.Strength {
		case model.StrengthLove:
			loved = append(loved, category)
		case model.StrengthLike:
			liked = append(liked, category)
		default:
			toTry = append(toTry, category)
		}
	}

	if len(loved) > 0 {
		reasons = append(reasons, fmt.Sprintf("Matches %d LOVED interests: %s", len(loved), strings.Join(loved, ", ")))
	}
	if len(liked) > 0 {
		reasons = append(reasons, fmt.Sprintf("Matches %d liked interests: %s", len(liked), strings.Join(liked, ", ")))
	}
	if len(toTry) > 0 {
		reasons = append(reasons, fmt.Sprintf("Opportunity to try %d new interests: %s", len(toTry), strings.Join(toTry, ", ")))
	}

	if usedCamps != nil && !usedCamps[camp.ID] {
		reasons = append(reasons, reasonNewExperience)
	}

	if focus == FocusBudget && isGoodValue(camp, criteria) {
		reasons = append(reasons, reasonGoodValue)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fmt.Sprintf("%s match", focus))
	}

	return reasons
}

// isGoodValue uses the same 80% threshold as the Budget-Friendly multiplier when a budget is set
func isGoodValue(camp model.Camp, criteria *FilterCriteria) bool {
	if criteria != nil {
		if budget := criteria.WeeklyBudget(); budget > 0 {
			return camp.Price < budget*budgetFocusThreshold
		}
	}
	return camp.Price < valuePriceCeiling
}

func gradeRangeLabel(camp model.Camp) string {
	if camp.GradeRange != "" {
		return camp.GradeRange
	}
	return fmt.Sprintf("grades %d-%d", camp.MinGrade, camp.MaxGrade)
}

func findInterest(interests []model.Interest, category string) (model.Interest, bool) {
	for _, interest := range interests {
		if strings.EqualFold(interest.Name, category) {
			return interest, true
		}
	}
	return model.Interest{}, false
}

// withoutLocationReasons drops reasons mentioning location
func withoutLocationReasons(reasons []string) []string {
	kept := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		if strings.Contains(strings.ToLower(reason), "location") {
			continue
		}
		kept = append(kept, reason)
	}
	return kept
}
