package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/services"
)

// SwapCmd creates the swap command
func SwapCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <plan_id> <schedule_id> <week> <child> <camp_id>",
		Short: "Replace the camp for one child's week in a saved schedule",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekID, childID, err := parseSlot(args[2], args[3])
			if err != nil {
				return err
			}
			campID, err := strconv.ParseInt(args[4], 10, 64)
			if err != nil {
				return fmt.Errorf("camp_id must be a number: %w", err)
			}

			app.Logger.Debug("swap command",
				zap.String("plan_id", args[0]),
				zap.String("schedule_id", args[1]),
				zap.Int64("camp_id", campID))

			env, err := app.PlannerEnv()
			if err != nil {
				return err
			}

			slot := services.Slot{PlanID: args[0], ScheduleID: args[1], WeekID: weekID, ChildID: childID}
			updated, err := services.SwapCamp(app.Ctx, app.Database, env, slot, campID, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Camp swapped!\n")
			if err := renderOption(out, *updated); err != nil {
				return err
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
