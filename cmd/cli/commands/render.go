package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
)

// renderOption writes one schedule option as a heading plus a week-by-week table
func renderOption(w io.Writer, option planner.ScheduleOption) error {
	fmt.Fprintf(w, "\n%s (schedule %s)\n", option.OptimizationFocus, option.ScheduleID)
	fmt.Fprintf(w, "Total cost: $%.2f  Score: %.1f  Weeks covered: %d\n",
		option.TotalCost, option.TotalScore, option.MatchSummary.TotalWeeksCovered)

	table := tablewriter.NewWriter(w)
	table.Header("Week", "Child", "Camp", "Session", "Price", "Score", "Reasons")

	for _, week := range option.WeekSchedule {
		for _, child := range week.Children {
			row := []any{fmt.Sprintf("%d: %s", week.WeekID+1, week.Label), child.ChildName, "-", "-", "-", "-", "No camp found"}
			if match := child.CampMatch; match != nil {
				row[2] = fmt.Sprintf("%s (#%d)", match.Camp.Name, match.Camp.ID)
				row[3] = sessionLabel(match.Session)
				row[4] = fmt.Sprintf("$%.2f", match.Camp.Price)
				row[5] = fmt.Sprintf("%.1f", match.Score)
				row[6] = strings.Join(match.MatchReasons, "; ")
			}
			if err := table.Append(row...); err != nil {
				return fmt.Errorf("failed to render schedule: %w", err)
			}
		}
	}

	return table.Render()
}

// renderAlternatives writes ranked matches for one slot
func renderAlternatives(w io.Writer, matches []*planner.CampMatch) error {
	table := tablewriter.NewWriter(w)
	table.Header("Rank", "Camp", "Session", "Price", "Score", "Reasons")

	for i, match := range matches {
		err := table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%s (#%d)", match.Camp.Name, match.Camp.ID),
			sessionLabel(match.Session),
			fmt.Sprintf("$%.2f", match.Camp.Price),
			fmt.Sprintf("%.1f", match.Score),
			strings.Join(match.MatchReasons, "; "),
		)
		if err != nil {
			return fmt.Errorf("failed to render alternatives: %w", err)
		}
	}

	return table.Render()
}

// renderSuggestions writes the suggested camps
func renderSuggestions(w io.Writer, camps []model.Camp) error {
	table := tablewriter.NewWriter(w)
	table.Header("Camp", "Organization", "Grades", "Categories", "Price")

	for _, camp := range camps {
		err := table.Append(
			fmt.Sprintf("%s (#%d)", camp.Name, camp.ID),
			camp.Organization,
			fmt.Sprintf("%d-%d", camp.MinGrade, camp.MaxGrade),
			strings.Join(camp.Categories, ", "),
			fmt.Sprintf("$%.2f", camp.Price),
		)
		if err != nil {
			return fmt.Errorf("failed to render suggestions: %w", err)
		}
	}

	return table.Render()
}

func sessionLabel(session *model.Session) string {
	if session == nil {
		return "-"
	}
	label := fmt.Sprintf("%s to %s", session.StartDate, session.EndDate)
	if session.Location != "" {
		label += " @ " + session.Location
	}
	return label
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
