package planner

import (
	"slices"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// DefaultSuggestionCount is how many extra camps are suggested by default
const DefaultSuggestionCount = 6

type suggestion struct {
	camp  model.Camp
	score float64
}

// Suggest recommends camps not used by any of the schedule options.
// Each unused camp is ranked by its average Balanced score across all children,
// scored with the full set of used camps for diversity.
func (o *Optimizer) Suggest(options []ScheduleOption, n int) []model.Camp {
	if n <= 0 {
		n = DefaultSuggestionCount
	}
	if len(o.form.Children) == 0 {
		return []model.Camp{}
	}

	used := make(map[int64]bool)
	for i := range options {
		for id := range options[i].UsedCampIDs() {
			used[id] = true
		}
	}

	var ranked []suggestion
	for _, camp := range o.camps {
		if used[camp.ID] {
			continue
		}

		total := 0.0
		for _, child := range o.form.Children {
			total += Score(ScoreInput{
				Camp:      camp,
				Child:     child,
				Focus:     FocusBalanced,
				UsedCamps: used,
				Criteria:  &o.criteria,
			})
		}
		ranked = append(ranked, suggestion{camp: camp, score: total / float64(len(o.form.Children))})
	}

	slices.SortStableFunc(ranked, func(a, b suggestion) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	camps := make([]model.Camp, len(ranked))
	for i, s := range ranked {
		camps[i] = s.camp
	}
	return camps
}
