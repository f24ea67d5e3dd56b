package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/services"
	"github.com/wolfxl/campbuddy/pkg/formfile"
)

// PlanCmd creates the plan command
func PlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <form_file>",
		Short: "Build schedule options for a planner form (YAML or TOML) and save them as a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			form, err := formfile.Load(args[0])
			if err != nil {
				return err
			}
			if err := formfile.Validate(form); err != nil {
				return err
			}

			app.Logger.Debug("plan command",
				zap.String("form", args[0]),
				zap.Int("children", len(form.Children)))

			env, err := app.PlannerEnv()
			if err != nil {
				return err
			}

			plan, err := services.PlanSchedules(app.Ctx, app.Database, env, form, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, plan)
			}

			fmt.Fprintf(out, "\n✓ Plan created!\n\n")
			fmt.Fprintf(out, "Plan ID: %s\n", plan.ID)

			for _, option := range plan.Options {
				if err := renderOption(out, option); err != nil {
					return err
				}
			}

			if len(plan.Suggestions) > 0 {
				fmt.Fprintf(out, "\nYou might also like:\n")
				if err := renderSuggestions(out, plan.Suggestions); err != nil {
					return err
				}
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the plan as JSON")

	return cmd
}
