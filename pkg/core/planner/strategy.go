package planner

import (
	"slices"
)

// Strategy describes one way of building a schedule option.
// Every strategy shares the same week/child loop and differs only in the focus
// passed to scoring and in how the winner is chosen from a slot's ranked matches.
type Strategy struct {
	// Label is recorded as the option's optimization focus
	Label string

	// Focus is passed into scoring
	Focus Focus

	// Select picks the winning match from matches ranked by descending score
	// Returns nil when no match is acceptable
	Select func(ranked []*CampMatch) *CampMatch
}

// selectTop picks the highest-ranked match
func selectTop(ranked []*CampMatch) *CampMatch {
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}

// selectCheapest picks the lowest-priced match, keeping rank order among equal prices
func selectCheapest(ranked []*CampMatch) *CampMatch {
	if len(ranked) == 0 {
		return nil
	}
	sorted := slices.Clone(ranked)
	slices.SortStableFunc(sorted, func(a, b *CampMatch) int {
		switch {
		case a.Camp.Price < b.Camp.Price:
			return -1
		case a.Camp.Price > b.Camp.Price:
			return 1
		default:
			return 0
		}
	})
	return sorted[0]
}

// selectFirstWhere picks the highest-ranked match satisfying keep
func selectFirstWhere(keep func(*CampMatch) bool) func([]*CampMatch) *CampMatch {
	return func(ranked []*CampMatch) *CampMatch {
		for _, m := range ranked {
			if keep(m) {
				return m
			}
		}
		return nil
	}
}

// BalancedStrategy picks the best overall score
func BalancedStrategy() Strategy {
	return Strategy{Label: string(FocusBalanced), Focus: FocusBalanced, Select: selectTop}
}

// BudgetStrategy boosts cheap camps during scoring
func BudgetStrategy() Strategy {
	return Strategy{Label: string(FocusBudget), Focus: FocusBudget, Select: selectTop}
}

// ActivityStrategy boosts camps matching many interests during scoring
func ActivityStrategy() Strategy {
	return Strategy{Label: string(FocusActivity), Focus: FocusActivity, Select: selectTop}
}

// priorityLabels maps a priority key to its schedule label prefix
var priorityLabels = map[string]string{
	PriorityPrice:      "Budget",
	PriorityLocation:   "Location",
	PriorityActivities: "Activity",
	PrioritySchedule:   "Schedule",
}

// PriorityStrategy builds the strategy keyed to the family's top declared priority.
//
// Selection by top priority:
//   - price: cheapest match
//   - location: best match inside the travel radius
//   - activities: best match sharing at least one interest
//   - anything else: best score
func PriorityStrategy(topPriority string) Strategy {
	label, ok := priorityLabels[topPriority]
	if !ok {
		label = "Custom"
	}

	strategy := Strategy{
		Label:  label + "-Optimized",
		Focus:  FocusBalanced,
		Select: selectTop,
	}

	switch topPriority {
	case PriorityPrice:
		strategy.Focus = FocusBudget
		strategy.Select = selectCheapest
	case PriorityLocation:
		strategy.Focus = FocusLocation
		strategy.Select = selectFirstWhere(func(m *CampMatch) bool { return m.LocationMatch })
	case PriorityActivities:
		strategy.Focus = FocusActivity
		strategy.Select = selectFirstWhere(func(m *CampMatch) bool { return m.CategoryMatch })
	}

	return strategy
}

// focusFromLabel maps a schedule label back to the focus used to score it
func focusFromLabel(label string) Focus {
	switch Focus(label) {
	case FocusBudget, FocusActivity, FocusLocation:
		return Focus(label)
	}
	if label == "Budget-Optimized" {
		return FocusBudget
	}
	return FocusBalanced
}
