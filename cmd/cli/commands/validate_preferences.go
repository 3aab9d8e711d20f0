package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/weekly-roster/pkg/core/services"
)

// ValidatePreferencesCmd creates the validatePreferences command
func ValidatePreferencesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validatePreferences",
		Short: "Check every employee's preferences without allocating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := app.PreferenceSource()
			if err != nil {
				return err
			}

			problems, err := services.ValidatePreferences(app.Ctx, source, app.Logger)
			if err != nil {
				return err
			}

			if len(problems) == 0 {
				fmt.Printf("\n✅ All preferences are valid\n\n")
				return nil
			}

			fmt.Printf("\n❌ Found problems for %d employees:\n\n", len(problems))
			for _, problem := range problems {
				fmt.Printf("%s:\n", problem.EmployeeID)
				for _, p := range problem.Problems {
					fmt.Printf("  - %s\n", p)
				}
			}
			fmt.Println()

			return fmt.Errorf("%d employees have invalid preferences", len(problems))
		},
	}
}
