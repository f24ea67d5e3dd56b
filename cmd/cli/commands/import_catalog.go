package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wolfxl/campbuddy/pkg/core/services"
)

// ImportCatalogCmd creates the importCatalog command
func ImportCatalogCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importCatalog",
		Short: "Import camps, locations and sessions from the catalog spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.ImportCatalog(app.Ctx, sheets, app.Database, app.Cfg.Catalog, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Catalog imported!\n\n")
			fmt.Fprintf(out, "Camps:     %d\n", result.Camps)
			fmt.Fprintf(out, "Locations: %d\n", result.Locations)
			fmt.Fprintf(out, "Sessions:  %d\n\n", result.Sessions)

			return nil
		},
	}
}
