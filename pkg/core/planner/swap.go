package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

var (
	ErrWeekNotFound   = errors.New("week not found")
	ErrChildNotFound  = errors.New("child not found")
	ErrCampNotFound   = errors.New("camp not found")
	ErrCampIneligible = errors.New("camp is not eligible for this slot")
)

// Swap returns a copy of schedule with the camp for (weekID, childID) replaced by campID.
// The replacement is scored against the rest of the schedule's camps for diversity.
// The original schedule is never modified.
func (o *Optimizer) Swap(ctx context.Context, schedule *ScheduleOption, weekID, childID int, campID int64) (*ScheduleOption, error) {
	if schedule == nil {
		return nil, fmt.Errorf("schedule is required")
	}

	updated := schedule.Clone()

	weekSchedule := findWeekSchedule(updated, weekID)
	if weekSchedule == nil {
		return nil, fmt.Errorf("%w: %d", ErrWeekNotFound, weekID)
	}

	slot := findChildSchedule(weekSchedule, childID)
	if slot == nil {
		return nil, fmt.Errorf("%w: %d", ErrChildNotFound, childID)
	}
	if childID < 0 || childID >= len(o.form.Children) {
		return nil, fmt.Errorf("%w: %d", ErrChildNotFound, childID)
	}

	camp, ok := o.campByID(campID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCampNotFound, campID)
	}

	week, ok := o.weekByID(weekID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrWeekNotFound, weekID)
	}

	// Diversity is judged against every other slot in the schedule
	used := updated.UsedCampIDs()
	oldMatch := slot.CampMatch
	if oldMatch != nil && countCampUses(updated, oldMatch.Camp.ID) == 1 {
		delete(used, oldMatch.Camp.ID)
	}

	newMatch, err := o.evaluateSlot(ctx, week, o.form.Children[childID], camp, focusFromLabel(schedule.OptimizationFocus), used)
	if err != nil {
		return nil, err
	}
	if newMatch == nil {
		return nil, fmt.Errorf("%w: camp %d, week %d, child %d", ErrCampIneligible, campID, weekID, childID)
	}

	coveredBefore := weekSchedule.hasMatch()

	// Subtract the old match's contributions
	if oldMatch != nil {
		updated.TotalCost -= oldMatch.Camp.Price
		updated.TotalScore -= oldMatch.Score
		updated.MatchSummary.add(oldMatch, -1)
	}

	// Add the new match's contributions
	updated.TotalCost += newMatch.Camp.Price
	updated.TotalScore += newMatch.Score
	updated.MatchSummary.add(newMatch, 1)
	slot.CampMatch = newMatch

	if !coveredBefore {
		updated.MatchSummary.TotalWeeksCovered++
	}

	o.logger.Debug("Swapped camp",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.Int("week", weekID),
		zap.Int("child", childID),
		zap.Int64("camp_id", campID))

	return updated, nil
}

// FindAlternatives returns the top-ranked matches for a slot, ignoring diversity.
// limit <= 0 uses the configured default. Limits above LocationCandidates widen the location check to limit.
func (o *Optimizer) FindAlternatives(ctx context.Context, weekID, childID, limit int) ([]*CampMatch, error) {
	if limit <= 0 {
		limit = o.opts.AlternativesLimit
	}

	week, ok := o.weekByID(weekID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrWeekNotFound, weekID)
	}
	if childID < 0 || childID >= len(o.form.Children) {
		return nil, fmt.Errorf("%w: %d", ErrChildNotFound, childID)
	}

	ranked, err := o.rankSlot(ctx, week, o.form.Children[childID], FocusBalanced, map[int64]bool{}, max(limit, o.opts.LocationCandidates))
	if err != nil {
		return nil, err
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// evaluateSlot scores one camp for a slot and applies the location policy.
// Returns nil if the camp has no session, scores zero, or is excluded by location.
func (o *Optimizer) evaluateSlot(ctx context.Context, week model.Week, child model.Child, camp model.Camp, focus Focus, used map[int64]bool) (*CampMatch, error) {
	session, dateMatch := FindMatchingSession(camp.Sessions, week, o.opts.StrictSessions)
	if session == nil {
		return nil, nil
	}

	match := EvaluateMatch(ScoreInput{
		Camp:      camp,
		Child:     child,
		Focus:     focus,
		UsedCamps: used,
		Criteria:  &o.criteria,
	}, session, dateMatch)
	if match == nil {
		return nil, nil
	}

	if strings.TrimSpace(o.criteria.Location) == "" {
		return match, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if o.location.IsWithinRadius(ctx, camp, o.criteria.Location, o.criteria.Distance) {
		return match, nil
	}
	if o.criteria.PriorityWeights.Location >= locationHardWeight {
		return nil, nil
	}
	applyOutsideRadiusPenalty(match)
	return match, nil
}

func (o *Optimizer) campByID(id int64) (model.Camp, bool) {
	for _, camp := range o.camps {
		if camp.ID == id {
			return camp, true
		}
	}
	return model.Camp{}, false
}

func (o *Optimizer) weekByID(id int) (model.Week, bool) {
	for _, week := range o.weeks {
		if week.ID == id {
			return week, true
		}
	}
	return model.Week{}, false
}

func findWeekSchedule(schedule *ScheduleOption, weekID int) *WeekSchedule {
	for i := range schedule.WeekSchedule {
		if schedule.WeekSchedule[i].WeekID == weekID {
			return &schedule.WeekSchedule[i]
		}
	}
	return nil
}

func findChildSchedule(week *WeekSchedule, childID int) *ChildSchedule {
	for i := range week.Children {
		if week.Children[i].ChildID == childID {
			return &week.Children[i]
		}
	}
	return nil
}

func countCampUses(schedule *ScheduleOption, campID int64) int {
	count := 0
	for _, week := range schedule.WeekSchedule {
		for _, child := range week.Children {
			if child.CampMatch != nil && child.CampMatch.Camp.ID == campID {
				count++
			}
		}
	}
	return count
}
