package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wolfxl/campbuddy/pkg/core/services"
)

// EmailPlanCmd creates the emailPlan command
func EmailPlanCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "emailPlan <plan_id> <email>",
		Short: "Email a summary of a saved plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gmail, err := app.GmailClient()
			if err != nil {
				return err
			}

			if err := services.EmailPlan(app.Ctx, app.Database, gmail, args[0], args[1], app.Logger); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Plan %s sent to %s\n\n", args[0], args[1])

			return nil
		},
	}
}
