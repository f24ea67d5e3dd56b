package planner

import (
	"strings"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// Scoring constants
const (
	baseGradeScore        = 100.0
	overBudgetPenalty     = 50.0
	withinBudgetBonus     = 20.0
	budgetBonusThreshold  = 0.75
	interestPointsPerUnit = 15.0
	requiredActivityBonus = 50.0
	diversityBonus        = 25.0

	budgetFocusThreshold  = 0.8
	budgetFocusMultiplier = 1.2
	activityFocusStep     = 0.1
	locationFocusBoost    = 1.15
)

// ScoreInput is everything needed to score a camp for a child
type ScoreInput struct {
	Camp      model.Camp
	Child     model.Child
	Focus     Focus
	UsedCamps map[int64]bool
	Criteria  *FilterCriteria
}

// Criterion is one component of the match score.
// IsCampValid acts as a veto: if any criterion rejects the camp the score is 0.
// Otherwise each criterion contributes Affinity × Weight to the running total.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsCampValid returns false if the camp violates a hard constraint for the child
	IsCampValid(in *ScoreInput) bool

	// Affinity returns the unweighted score contribution (may be negative)
	Affinity(in *ScoreInput) float64

	// Weight returns the multiplier applied to Affinity
	Weight(in *ScoreInput) float64
}

// DefaultCriteria returns the scoring criteria in evaluation order
func DefaultCriteria() []Criterion {
	return []Criterion{
		GradeCriterion{},
		PriceCriterion{},
		InterestCriterion{},
		RequiredActivitiesCriterion{},
		DiversityCriterion{},
	}
}

// Score computes the non-negative match score of a camp for a child
func Score(in ScoreInput) float64 {
	return ScoreWithCriteria(in, DefaultCriteria())
}

// ScoreWithCriteria runs the vetoes, sums weighted affinities, then applies the focus multiplier
func ScoreWithCriteria(in ScoreInput, criteria []Criterion) float64 {
	if in.Criteria == nil {
		in.Criteria = &FilterCriteria{}
	}

	for _, criterion := range criteria {
		if !criterion.IsCampValid(&in) {
			return 0
		}
	}

	total := 0.0
	for _, criterion := range criteria {
		total += criterion.Affinity(&in) * criterion.Weight(&in)
	}

	total *= focusMultiplier(&in)

	return max(total, 0)
}

// focusMultiplier returns the optimization-focus adjustment
func focusMultiplier(in *ScoreInput) float64 {
	budget := in.Criteria.WeeklyBudget()
	switch in.Focus {
	case FocusBudget:
		if budget > 0 && in.Camp.Price < budget*budgetFocusThreshold {
			return budgetFocusMultiplier
		}
	case FocusActivity:
		if matches, _ := interestMatches(in.Camp, in.Child); matches > 0 {
			return 1 + activityFocusStep*float64(matches)
		}
	case FocusLocation:
		return locationFocusBoost
	}
	return 1
}

// priorityFactor treats an unset priority weight as 1
func priorityFactor(weight int) float64 {
	if weight == 0 {
		return 1
	}
	return float64(weight)
}

// GradeCriterion vetoes camps outside the child's grade and awards the base score
type GradeCriterion struct{}

func (GradeCriterion) Name() string {
	return "Grade"
}

func (GradeCriterion) IsCampValid(in *ScoreInput) bool {
	return gradeMatches(in.Camp, in.Child)
}

func (GradeCriterion) Affinity(in *ScoreInput) float64 {
	return baseGradeScore
}

func (GradeCriterion) Weight(in *ScoreInput) float64 {
	return 1
}

// PriceCriterion penalizes camps over the weekly budget and rewards comfortably cheap ones.
// Prices between 75% and 100% of the budget are neutral.
type PriceCriterion struct{}

func (PriceCriterion) Name() string {
	return "Price"
}

func (PriceCriterion) IsCampValid(in *ScoreInput) bool {
	return true
}

func (PriceCriterion) Affinity(in *ScoreInput) float64 {
	budget := in.Criteria.WeeklyBudget()
	price := in.Camp.Price
	if budget > 0 && price > budget {
		return -overBudgetPenalty
	}
	if budget == 0 || price <= budget*budgetBonusThreshold {
		return withinBudgetBonus
	}
	return 0
}

func (PriceCriterion) Weight(in *ScoreInput) float64 {
	return priorityFactor(in.Criteria.PriorityWeights.Price)
}

// InterestCriterion rewards camp categories matching the child's interests, weighted by strength
type InterestCriterion struct{}

func (InterestCriterion) Name() string {
	return "Interest"
}

func (InterestCriterion) IsCampValid(in *ScoreInput) bool {
	return true
}

func (InterestCriterion) Affinity(in *ScoreInput) float64 {
	_, strengthSum := interestMatches(in.Camp, in.Child)
	return strengthSum * interestPointsPerUnit
}

func (InterestCriterion) Weight(in *ScoreInput) float64 {
	return priorityFactor(in.Criteria.PriorityWeights.Activities)
}

// RequiredActivitiesCriterion vetoes camps that do not cover every required activity
type RequiredActivitiesCriterion struct{}

func (RequiredActivitiesCriterion) Name() string {
	return "RequiredActivities"
}

func (RequiredActivitiesCriterion) IsCampValid(in *ScoreInput) bool {
	return coversRequiredActivities(in.Camp, in.Criteria.RequiredActivities)
}

func (RequiredActivitiesCriterion) Affinity(in *ScoreInput) float64 {
	if len(in.Criteria.RequiredActivities) == 0 {
		return 0
	}
	return requiredActivityBonus
}

func (RequiredActivitiesCriterion) Weight(in *ScoreInput) float64 {
	return 1
}

// DiversityCriterion rewards camps not yet used in the schedule
type DiversityCriterion struct{}

func (DiversityCriterion) Name() string {
	return "Diversity"
}

func (DiversityCriterion) IsCampValid(in *ScoreInput) bool {
	return true
}

func (DiversityCriterion) Affinity(in *ScoreInput) float64 {
	if in.UsedCamps[in.Camp.ID] {
		return 0
	}
	return diversityBonus
}

func (DiversityCriterion) Weight(in *ScoreInput) float64 {
	return 1
}

// gradeMatches reports whether the child's grade is inside the camp's range
func gradeMatches(camp model.Camp, child model.Child) bool {
	grade := GradeToNumber(child.Grade)
	return grade >= camp.MinGrade && grade <= camp.MaxGrade
}

// priceMatches reports whether the camp fits the weekly budget (no budget always fits)
func priceMatches(camp model.Camp, criteria *FilterCriteria) bool {
	budget := criteria.WeeklyBudget()
	return budget <= 0 || camp.Price <= budget
}

// interestMatches counts the child's interests found in the camp's categories
// and sums their strength multipliers
func interestMatches(camp model.Camp, child model.Child) (int, float64) {
	categories := lowerSet(camp.Categories)
	count := 0
	sum := 0.0
	for _, interest := range child.Interests {
		if categories[strings.ToLower(interest.Name)] {
			count++
			sum += strengthMultiplier(interest.Strength)
		}
	}
	return count, sum
}

// coversRequiredActivities reports whether every required activity is a camp category
func coversRequiredActivities(camp model.Camp, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, activity := range required {
		if !camp.HasCategory(activity) {
			return false
		}
	}
	return true
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
