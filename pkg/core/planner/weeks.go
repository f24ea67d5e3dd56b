package planner

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

const (
	// DefaultWeeksRule describes the eight summer weeks starting Tuesday 3 June 2025
	DefaultWeeksRule = "DTSTART=20250603T000000Z;FREQ=WEEKLY;COUNT=8"

	dateLayout  = "2006-01-02"
	labelLayout = "January 2"
)

// BuildWeeks expands a weekly RRULE into the week calendar
// Each week spans seven days starting at an occurrence
func BuildWeeks(rule string) ([]model.Week, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week rule: %w", err)
	}

	starts := r.All()
	if len(starts) == 0 {
		return nil, fmt.Errorf("week rule %q produced no weeks", rule)
	}

	return weeksFromStarts(starts), nil
}

// DefaultWeeks returns the built-in summer calendar
func DefaultWeeks() []model.Week {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Count:   8,
		Dtstart: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		panic(fmt.Sprintf("invalid default week rule: %v", err))
	}
	return weeksFromStarts(r.All())
}

func weeksFromStarts(starts []time.Time) []model.Week {
	weeks := make([]model.Week, len(starts))
	for i, start := range starts {
		end := start.AddDate(0, 0, 6)
		weeks[i] = model.Week{
			ID:        i,
			Label:     fmt.Sprintf("%s - %s", start.Format(labelLayout), end.Format(labelLayout)),
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
		}
	}
	return weeks
}
