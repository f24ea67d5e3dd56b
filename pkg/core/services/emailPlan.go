package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/db"
)

// EmailPlanStore defines the database operations needed to email a plan
type EmailPlanStore interface {
	GetPlan(ctx context.Context, id string) (*db.Plan, error)
}

// EmailClient sends plain-text email
type EmailClient interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// EmailPlan sends a summary of a saved plan to a recipient
func EmailPlan(ctx context.Context, store EmailPlanStore, client EmailClient, planID, to string, logger *zap.Logger) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	plan, err := store.GetPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to fetch plan: %w", err)
	}

	subject, body := FormatPlanEmail(plan)
	if err := client.SendEmail(ctx, to, subject, body); err != nil {
		return fmt.Errorf("failed to email plan: %w", err)
	}

	logger.Info("Plan emailed", zap.String("plan_id", plan.ID), zap.String("to", to))

	return nil
}

// FormatPlanEmail renders a plan as an email subject and plain-text body
func FormatPlanEmail(plan *db.Plan) (string, string) {
	subject := fmt.Sprintf("Your summer camp plan (%d options)", len(plan.Options))

	var b strings.Builder
	b.WriteString("Here are your summer camp schedule options.\n")

	for _, option := range plan.Options {
		fmt.Fprintf(&b, "\n== %s ==\n", option.OptimizationFocus)
		fmt.Fprintf(&b, "Total cost: $%.2f | Score: %.1f | Weeks covered: %d\n",
			option.TotalCost, option.TotalScore, option.MatchSummary.TotalWeeksCovered)

		for _, week := range option.WeekSchedule {
			fmt.Fprintf(&b, "\n%s\n", week.Label)
			for _, child := range week.Children {
				if child.CampMatch == nil {
					fmt.Fprintf(&b, "  %s: no camp found\n", child.ChildName)
					continue
				}
				line := fmt.Sprintf("  %s: %s ($%.2f)", child.ChildName, child.CampMatch.Camp.Name, child.CampMatch.Camp.Price)
				if session := child.CampMatch.Session; session != nil && session.Location != "" {
					line += " at " + session.Location
				}
				b.WriteString(line + "\n")
			}
		}
	}

	if len(plan.Suggestions) > 0 {
		b.WriteString("\nYou might also like:\n")
		for _, camp := range plan.Suggestions {
			fmt.Fprintf(&b, "  - %s ($%.2f)\n", camp.Name, camp.Price)
		}
	}

	fmt.Fprintf(&b, "\nPlan ID: %s\n", plan.ID)

	return subject, b.String()
}
