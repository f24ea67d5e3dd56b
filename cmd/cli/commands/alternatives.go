package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wolfxl/campbuddy/pkg/core/services"
)

// AlternativesCmd creates the alternatives command
func AlternativesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alternatives <plan_id> <week> <child>",
		Short: "List the best camps for one child's week in a saved plan",
		Long: `List the best camps for one child's week in a saved plan.

Weeks and children are numbered from 1 as shown by the plan command.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			asJSON, _ := cmd.Flags().GetBool("json")

			weekID, childID, err := parseSlot(args[1], args[2])
			if err != nil {
				return err
			}

			env, err := app.PlannerEnv()
			if err != nil {
				return err
			}

			alternatives, err := services.FindAlternatives(app.Ctx, app.Database, env, args[0], weekID, childID, limit, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, alternatives)
			}

			if len(alternatives) == 0 {
				fmt.Fprintln(out, "No eligible camps for this slot.")
				return nil
			}

			fmt.Fprintf(out, "\nAlternatives for week %s, child %s:\n", args[1], args[2])
			return renderAlternatives(out, alternatives)
		},
	}

	cmd.Flags().Int("limit", 0, "Number of alternatives to show (default from config)")
	cmd.Flags().Bool("json", false, "Print the alternatives as JSON")

	return cmd
}

// parseSlot converts 1-based week and child numbers to ids
func parseSlot(week, child string) (int, int, error) {
	w, err := strconv.Atoi(week)
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("week must be a positive integer, got: %s", week)
	}
	c, err := strconv.Atoi(child)
	if err != nil || c < 1 {
		return 0, 0, fmt.Errorf("child must be a positive integer, got: %s", child)
	}
	return w - 1, c - 1, nil
}
