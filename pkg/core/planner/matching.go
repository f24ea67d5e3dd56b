package planner

import (
	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// EvaluateMatch scores a camp for a child and packages it as a CampMatch.
// Returns nil when the score is not positive. LocationMatch starts true and is
// revised by the optimizer's location pass.
func EvaluateMatch(in ScoreInput, session *model.Session, dateMatch bool) *CampMatch {
	if in.Criteria == nil {
		in.Criteria = &FilterCriteria{}
	}

	score := Score(in)
	if score <= 0 {
		return nil
	}

	categoryMatches, _ := interestMatches(in.Camp, in.Child)

	return &CampMatch{
		Camp:                    in.Camp,
		Session:                 session,
		Score:                   score,
		MatchReasons:            MatchReasons(in.Camp, in.Child, in.Focus, in.UsedCamps, in.Criteria),
		GradeMatch:              gradeMatches(in.Camp, in.Child),
		PriceMatch:              priceMatches(in.Camp, in.Criteria),
		LocationMatch:           true,
		DateMatch:               dateMatch,
		CategoryMatch:           categoryMatches > 0,
		RequiredActivitiesMatch: coversRequiredActivities(in.Camp, in.Criteria.RequiredActivities),
	}
}
