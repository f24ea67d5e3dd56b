package planner

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

const (
	// Relaxed-diversity candidates keep 80% of their score
	reducedDiversityFactor = 0.8

	// Candidates outside the travel radius keep 60% of their score when location is a minor priority
	outsideRadiusFactor = 0.6

	// Location weights at or above this exclude candidates outside the radius
	locationHardWeight = 2
)

// Options tunes the optimizer
type Options struct {
	// LocationCandidates is how many top-ranked candidates get a location check per slot
	LocationCandidates int

	// LocationConcurrency bounds parallel location checks within a slot (1 = sequential)
	LocationConcurrency int

	// FallbackSessionCount is how many placeholder sessions camps without sessions receive
	FallbackSessionCount int

	// StrictSessions disables the first-session fallback when no session overlaps a week
	StrictSessions bool

	// PriorityOption adds a schedule keyed to the family's top declared priority
	PriorityOption bool

	// AlternativesLimit is the default number of alternatives returned for a slot
	AlternativesLimit int
}

// DefaultOptions returns the standard tuning
func DefaultOptions() Options {
	return Options{
		LocationCandidates:   10,
		LocationConcurrency:  1,
		FallbackSessionCount: DefaultFallbackSessionCount,
		AlternativesLimit:    5,
	}
}

// Input is the data one optimization run works over
type Input struct {
	Form  model.FormData
	Camps []model.Camp

	// Weeks is the calendar the form's week flags index into; nil uses DefaultWeeks
	Weeks []model.Week
}

// Optimizer builds schedule options for one planning request
type Optimizer struct {
	form     model.FormData
	criteria FilterCriteria
	camps    []model.Camp
	weeks    []model.Week
	location *LocationMatcher
	logger   *zap.Logger
	opts     Options
}

// NewOptimizer prepares an optimizer. Camps without sessions receive placeholder sessions.
func NewOptimizer(in Input, location *LocationMatcher, logger *zap.Logger, opts Options) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = NewLocationMatcher(nil, nil, logger)
	}

	defaults := DefaultOptions()
	if opts.LocationCandidates <= 0 {
		opts.LocationCandidates = defaults.LocationCandidates
	}
	if opts.LocationConcurrency <= 0 {
		opts.LocationConcurrency = defaults.LocationConcurrency
	}
	if opts.FallbackSessionCount <= 0 {
		opts.FallbackSessionCount = defaults.FallbackSessionCount
	}
	if opts.AlternativesLimit <= 0 {
		opts.AlternativesLimit = defaults.AlternativesLimit
	}

	weeks := in.Weeks
	if weeks == nil {
		weeks = DefaultWeeks()
	}

	// Fallback stage: synthesize sessions for camps with no session data
	camps, synthesized := WithFallbackSessions(in.Camps, weeks, opts.FallbackSessionCount)
	if synthesized > 0 {
		logger.Debug("Synthesized fallback sessions",
			zap.Int("camps", synthesized),
			zap.Int("sessions_per_camp", opts.FallbackSessionCount))
	}

	return &Optimizer{
		form:     in.Form,
		criteria: BuildCriteria(in.Form),
		camps:    camps,
		weeks:    weeks,
		location: location,
		logger:   logger,
		opts:     opts,
	}
}

// Criteria returns the filter criteria derived from the form
func (o *Optimizer) Criteria() FilterCriteria {
	return o.criteria
}

// Weeks returns the week calendar in use
func (o *Optimizer) Weeks() []model.Week {
	return o.weeks
}

// Strategies returns the strategies Generate runs, in order
func (o *Optimizer) Strategies() []Strategy {
	strategies := []Strategy{
		BalancedStrategy(),
		BudgetStrategy(),
		ActivityStrategy(),
	}
	if o.opts.PriorityOption && len(o.form.Priorities) > 0 {
		strategies = append(strategies, PriorityStrategy(o.form.Priorities[0]))
	}
	return strategies
}

// Generate builds one schedule option per strategy
func (o *Optimizer) Generate(ctx context.Context) ([]ScheduleOption, error) {
	o.logger.Debug("Starting schedule generation",
		zap.Int("children", len(o.form.Children)),
		zap.Int("camps", len(o.camps)),
		zap.Ints("selected_weeks", o.selectedWeeks()))

	var options []ScheduleOption
	for _, strategy := range o.Strategies() {
		option, err := o.RunStrategy(ctx, strategy)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s schedule: %w", strategy.Label, err)
		}
		options = append(options, *option)
	}

	o.logger.Debug("Generated schedule options", zap.Int("count", len(options)))

	return options, nil
}

// RunStrategy builds a single schedule option.
// Weeks are visited in index order and children in input order; each schedule tracks its own used camps.
func (o *Optimizer) RunStrategy(ctx context.Context, strategy Strategy) (*ScheduleOption, error) {
	option := &ScheduleOption{
		ScheduleID:        uuid.NewString(),
		OptimizationFocus: strategy.Label,
		WeekSchedule:      []WeekSchedule{},
	}
	used := make(map[int64]bool)

	for _, weekIndex := range o.selectedWeeks() {
		week := o.weeks[weekIndex]
		weekSchedule := WeekSchedule{
			WeekID:    week.ID,
			Label:     week.Label,
			StartDate: week.StartDate,
			EndDate:   week.EndDate,
			Children:  make([]ChildSchedule, 0, len(o.form.Children)),
		}

		for childIndex, child := range o.form.Children {
			ranked, err := o.rankSlot(ctx, week, child, strategy.Focus, used, o.opts.LocationCandidates)
			if err != nil {
				return nil, err
			}

			best := strategy.Select(ranked)
			if best != nil {
				used[best.Camp.ID] = true
				option.TotalCost += best.Camp.Price
				option.TotalScore += best.Score
				option.MatchSummary.add(best, 1)
			} else {
				o.logger.Debug("No camp for slot",
					zap.String("strategy", strategy.Label),
					zap.Int("week", week.ID),
					zap.Int("child", childIndex))
			}

			weekSchedule.Children = append(weekSchedule.Children, ChildSchedule{
				ChildID:   childIndex,
				ChildName: childDisplayName(child, childIndex),
				Grade:     child.Grade,
				CampMatch: best,
			})
		}

		if weekSchedule.hasMatch() {
			option.MatchSummary.TotalWeeksCovered++
		}
		option.WeekSchedule = append(option.WeekSchedule, weekSchedule)
	}

	o.logger.Debug("Built schedule option",
		zap.String("focus", option.OptimizationFocus),
		zap.Float64("total_score", option.TotalScore),
		zap.Float64("total_cost", option.TotalCost),
		zap.Int("weeks_covered", option.MatchSummary.TotalWeeksCovered))

	return option, nil
}

// rankSlot returns the candidates for one (week, child) slot ranked by descending score.
// The location pass checks at most top candidates.
//
// Stages:
//  1. strict pass: score camps with a session for the week, skipping camps already used
//  2. location pass over the top strict candidates
//  3. relaxed pass (only if stage 2 left nothing): allow reuse at 80% of the score, then the location pass again
func (o *Optimizer) rankSlot(ctx context.Context, week model.Week, child model.Child, focus Focus, used map[int64]bool, top int) ([]*CampMatch, error) {
	candidates := o.scoreCandidates(week, child, focus, used, true)
	if len(candidates) > 0 {
		sortByScore(candidates)
		kept, err := o.locationPass(ctx, candidates, top)
		if err != nil || len(kept) > 0 {
			return kept, err
		}
	}

	// Nothing to relax when no camp has been used yet
	if len(used) == 0 {
		return nil, nil
	}

	candidates = o.relaxedCandidates(week, child, focus)
	if len(candidates) == 0 {
		return nil, nil
	}

	o.logger.Debug("Using relaxed diversity pass",
		zap.Int("week", week.ID),
		zap.String("child", child.Name),
		zap.Int("candidates", len(candidates)))

	sortByScore(candidates)

	return o.locationPass(ctx, candidates, top)
}

// scoreCandidates evaluates every camp with a usable session for the week
func (o *Optimizer) scoreCandidates(week model.Week, child model.Child, focus Focus, used map[int64]bool, skipUsed bool) []*CampMatch {
	var candidates []*CampMatch
	for _, camp := range o.camps {
		if skipUsed && used[camp.ID] {
			continue
		}

		session, dateMatch := FindMatchingSession(camp.Sessions, week, o.opts.StrictSessions)
		if session == nil {
			continue
		}

		match := EvaluateMatch(ScoreInput{
			Camp:      camp,
			Child:     child,
			Focus:     focus,
			UsedCamps: used,
			Criteria:  &o.criteria,
		}, session, dateMatch)
		if match == nil {
			continue
		}

		candidates = append(candidates, match)
	}
	return candidates
}

// relaxedCandidates rescores the pool with an empty used set and applies the reduced-diversity penalty
func (o *Optimizer) relaxedCandidates(week model.Week, child model.Child, focus Focus) []*CampMatch {
	candidates := o.scoreCandidates(week, child, focus, map[int64]bool{}, false)
	for _, match := range candidates {
		match.Score *= reducedDiversityFactor
		reasons := slices.DeleteFunc(match.MatchReasons, func(r string) bool { return r == reasonNewExperience })
		match.MatchReasons = append(reasons, ReasonReducedDiversity)
	}
	return candidates
}

// locationPass checks the top candidates against the travel radius and re-ranks them.
// Candidates ranked below top are discarded.
// Candidates failing the check are dropped when location is a significant priority,
// otherwise kept at 60% of their score.
func (o *Optimizer) locationPass(ctx context.Context, ranked []*CampMatch, top int) ([]*CampMatch, error) {
	if len(ranked) > top {
		ranked = ranked[:top]
	}

	if strings.TrimSpace(o.criteria.Location) == "" {
		return ranked, nil
	}

	within := make([]bool, len(ranked))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.LocationConcurrency)
	for i, match := range ranked {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			within[i] = o.location.IsWithinRadius(gctx, match.Camp, o.criteria.Location, o.criteria.Distance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to check camp locations: %w", err)
	}

	weight := o.criteria.PriorityWeights.Location
	kept := make([]*CampMatch, 0, len(ranked))
	for i, match := range ranked {
		if within[i] {
			kept = append(kept, match)
			continue
		}
		if weight >= locationHardWeight {
			o.logger.Debug("Dropped camp outside radius",
				zap.Int64("camp_id", match.Camp.ID),
				zap.Int("location_weight", weight))
			continue
		}
		applyOutsideRadiusPenalty(match)
		kept = append(kept, match)
	}

	sortByScore(kept)

	return kept, nil
}

// applyOutsideRadiusPenalty marks a match as outside the radius and reduces its score
func applyOutsideRadiusPenalty(match *CampMatch) {
	match.Score *= outsideRadiusFactor
	match.LocationMatch = false
	match.MatchReasons = append(withoutLocationReasons(match.MatchReasons), ReasonOutsideRadius)
}

// selectedWeeks returns selected week indices that exist in the calendar
func (o *Optimizer) selectedWeeks() []int {
	var indices []int
	for _, i := range o.form.SelectedWeekIndices() {
		if i < len(o.weeks) {
			indices = append(indices, i)
		}
	}
	return indices
}

// sortByScore sorts by descending score, keeping catalog order for ties
func sortByScore(matches []*CampMatch) {
	slices.SortStableFunc(matches, func(a, b *CampMatch) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}

func childDisplayName(child model.Child, index int) string {
	if child.Name != "" {
		return child.Name
	}
	return fmt.Sprintf("Child %d", index+1)
}
