package planner

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/wolfxl/campbuddy/pkg/core/model"
)

const (
	// DefaultFallbackSessionCount is how many placeholder sessions a camp without sessions receives
	DefaultFallbackSessionCount = 3

	fallbackLocation  = "Location TBD"
	fallbackStartTime = "9:00 AM"
	fallbackEndTime   = "3:00 PM"
	fallbackDays      = "Mon-Fri"
)

// DatesOverlap reports whether [start1,end1] and [start2,end2] overlap, inclusive of boundaries.
// Unparsable dates count as overlapping.
func DatesOverlap(start1, end1, start2, end2 string) bool {
	s1, ok1 := parseDate(start1)
	e1, ok2 := parseDate(end1)
	s2, ok3 := parseDate(start2)
	e2, ok4 := parseDate(end2)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return true
	}

	return !s1.After(e2) && !s2.After(e1)
}

// parseDate accepts ISO dates and RFC3339 timestamps
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FindMatchingSession returns the first session overlapping the week.
//
// When nothing overlaps, lenient mode returns the first session regardless of dates
// and strict mode returns nil. The second return value reports whether the returned
// session actually overlaps the week.
func FindMatchingSession(sessions []model.Session, week model.Week, strict bool) (*model.Session, bool) {
	for i := range sessions {
		if DatesOverlap(sessions[i].StartDate, sessions[i].EndDate, week.StartDate, week.EndDate) {
			return &sessions[i], true
		}
	}

	if strict || len(sessions) == 0 {
		return nil, false
	}

	return &sessions[0], false
}

// FallbackSessions synthesizes weekly placeholder sessions for a camp with no session data.
// Sessions start on the first calendar week and repeat weekly; ids are campID*100+k.
func FallbackSessions(camp model.Camp, weeks []model.Week, count int) []model.Session {
	if count <= 0 || len(weeks) == 0 {
		return nil
	}

	start, ok := parseDate(weeks[0].StartDate)
	if !ok {
		return nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Count:   count,
		Dtstart: start,
	})
	if err != nil {
		return nil
	}

	location := fallbackLocation
	if len(camp.Locations) > 0 {
		location = camp.Locations[0]
	}

	starts := r.All()
	sessions := make([]model.Session, len(starts))
	for k, sessionStart := range starts {
		sessions[k] = model.Session{
			ID:        camp.ID*100 + int64(k+1),
			CampID:    camp.ID,
			StartDate: sessionStart.Format(dateLayout),
			EndDate:   sessionStart.AddDate(0, 0, 6).Format(dateLayout),
			StartTime: fallbackStartTime,
			EndTime:   fallbackEndTime,
			Days:      fallbackDays,
			Location:  location,
		}
	}
	return sessions
}

// WithFallbackSessions returns the camps with placeholder sessions attached to any camp lacking sessions.
// The input slice is not modified. The second return value counts camps that received placeholders.
func WithFallbackSessions(camps []model.Camp, weeks []model.Week, count int) ([]model.Camp, int) {
	result := make([]model.Camp, len(camps))
	synthesized := 0
	for i, camp := range camps {
		if len(camp.Sessions) == 0 {
			camp.Sessions = FallbackSessions(camp, weeks, count)
			if len(camp.Sessions) > 0 {
				synthesized++
			}
		}
		result[i] = camp
	}
	return result, synthesized
}
